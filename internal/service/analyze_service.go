package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"auditsystem/internal/config"
	"auditsystem/internal/infrastructure/lock"
	"auditsystem/internal/ingest"
	"auditsystem/internal/ledger"
	"auditsystem/internal/model"
	"auditsystem/internal/repository"
	"auditsystem/pkg/idgen"
	"auditsystem/pkg/logger"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrDuplicateRequest = errors.New("同一稽核档案的分析请求正在处理中")
	ErrAuditNotLoaded   = errors.New("稽核档案尚未载入账套数据")
)

// AnalyzeService 账套分析服务
//
// 【设计思考】为什么是"整体替换"而不是增量更新？
// 风险发现和科目汇总都是从全量分录推导出来的，增量修补旧结果
// 既难证明正确，也没有业务价值。每次分析在一个事务里删旧写新，
// 失败则整体回滚，库里永远只有一份自洽的结果。
type AnalyzeService struct {
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
	detector    *ledger.Detector
	auditRepo   *repository.AuditRepository
	journalRepo *repository.JournalRepository
	findingRepo *repository.FindingRepository
	summaryRepo *repository.SummaryRepository
	outboxRepo  *repository.OutboxRepository
}

func NewAnalyzeService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *AnalyzeService {
	return &AnalyzeService{
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
		detector:    ledger.NewDetector(RuleConfigFromSettings(&cfg.Rules)),
		auditRepo:   repository.NewAuditRepository(db),
		journalRepo: repository.NewJournalRepository(db),
		findingRepo: repository.NewFindingRepository(db),
		summaryRepo: repository.NewSummaryRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

// RuleConfigFromSettings 把配置文件里的规则参数转成检测器参数
func RuleConfigFromSettings(rules *config.RulesConfig) ledger.RuleConfig {
	return ledger.RuleConfig{
		CashAccount:         rules.CashAccount,
		RelatedPartyAccount: rules.RelatedPartyAccount,
		CashThreshold:       decimal.NewFromFloat(rules.CashThreshold),
		LargeCashThreshold:  decimal.NewFromFloat(rules.LargeCashThreshold),
	}
}

// AnalyzeResult 一次分析的结果概览
type AnalyzeResult struct {
	AuditNo          string          `json:"audit_no"`
	EntryCount       int             `json:"entry_count"`
	FindingCount     int             `json:"finding_count"`
	CriticalCount    int             `json:"critical_count"`
	WarningCount     int             `json:"warning_count"`
	InfoCount        int             `json:"info_count"`
	TotalPenaltyRisk decimal.Decimal `json:"total_penalty_risk"`
}

// AnalyzeDemo 用内置演示账套跑一次分析
func (s *AnalyzeService) AnalyzeDemo(ctx context.Context, auditNo, requestID string) (*AnalyzeResult, error) {
	return s.AnalyzeRecords(ctx, auditNo, requestID, ingest.DemoRecords())
}

// AnalyzeRecords 对一批原始分录记录执行完整分析流程
//
// 规范化 -> 风险检测 -> 科目汇总 -> 一个事务内替换旧结果并写变更事件
func (s *AnalyzeService) AnalyzeRecords(ctx context.Context, auditNo, requestID string, records []ledger.RawRecord) (*AnalyzeResult, error) {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return nil, err
	}

	// 同一档案的分析必须串行，拿不到锁直接拒绝
	analyzeLock := lock.NewAnalyzeLock(s.redisClient, auditNo, requestID)
	acquired, err := analyzeLock.TryLock(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取分析锁失败: %w", err)
	}
	if !acquired {
		return nil, ErrDuplicateRequest
	}
	defer analyzeLock.Unlock(ctx)

	// 规范化失败整批拒绝，库里的旧结果原样保留
	entries, err := ledger.Normalize(records)
	if err != nil {
		return nil, err
	}

	findings := s.detector.Detect(entries)
	summaries := ledger.Aggregate(entries)

	lines := make([]*model.JournalLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, &model.JournalLine{
			AuditID:     audit.ID,
			EntryDate:   e.Date,
			Description: e.Description,
			Reference:   e.Reference,
			AccountCode: e.AccountCode,
			AccountName: e.AccountName,
			Debit:       e.Debit,
			Credit:      e.Credit,
		})
	}

	result := &AnalyzeResult{
		AuditNo:      auditNo,
		EntryCount:   len(entries),
		FindingCount: len(findings),
	}

	findingRows := make([]*model.RiskFinding, 0, len(findings))
	for _, f := range findings {
		switch f.Severity {
		case ledger.SeverityCritical:
			result.CriticalCount++
		case ledger.SeverityWarning:
			result.WarningCount++
		case ledger.SeverityInfo:
			result.InfoCount++
		}
		result.TotalPenaltyRisk = result.TotalPenaltyRisk.Add(f.PenaltyRisk)

		findingRows = append(findingRows, &model.RiskFinding{
			FindingNo:   idgen.GenerateFindingNo(),
			AuditID:     audit.ID,
			Severity:    f.Severity,
			Category:    f.Category,
			Title:       f.Title,
			Description: f.Description,
			Detail:      f.Detail,
			Amount:      f.Amount,
			PenaltyRisk: f.PenaltyRisk,
			AccountCode: f.AccountCode,
			FindingDate: f.Date,
		})
	}

	summaryRows := make([]*model.AccountSummary, 0, len(summaries))
	for _, sm := range summaries {
		summaryRows = append(summaryRows, &model.AccountSummary{
			AuditID:     audit.ID,
			AccountCode: sm.AccountCode,
			AccountName: sm.AccountName,
			TotalDebit:  sm.TotalDebit,
			TotalCredit: sm.TotalCredit,
			Balance:     sm.Balance,
			EntryCount:  sm.EntryCount,
		})
	}

	// 删旧写新 + 变更事件，同一个事务
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.journalRepo.DeleteByAuditID(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("清除旧分录失败: %w", err)
		}
		if err := s.findingRepo.DeleteByAuditID(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("清除旧风险发现失败: %w", err)
		}
		if err := s.summaryRepo.DeleteByAuditID(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("清除旧科目汇总失败: %w", err)
		}

		if err := s.journalRepo.BatchCreate(ctx, tx, lines); err != nil {
			return fmt.Errorf("写入分录失败: %w", err)
		}
		if err := s.findingRepo.BatchCreate(ctx, tx, findingRows); err != nil {
			return fmt.Errorf("写入风险发现失败: %w", err)
		}
		if err := s.summaryRepo.BatchCreate(ctx, tx, summaryRows); err != nil {
			return fmt.Errorf("写入科目汇总失败: %w", err)
		}

		if err := s.auditRepo.MarkAnalyzed(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("更新档案状态失败: %w", err)
		}

		// 替换语义对订阅端表现为三张表的整体 INSERT，外加档案本身的 UPDATE
		events := []struct {
			table string
			event string
			count int
		}{
			{"journal_line", model.ChangeEventInsert, len(lines)},
			{"risk_finding", model.ChangeEventInsert, len(findingRows)},
			{"account_summary", model.ChangeEventInsert, len(summaryRows)},
			{"audit", model.ChangeEventUpdate, 1},
		}
		for _, ev := range events {
			if err := createChangeEvent(ctx, tx, s.outboxRepo, s.cfg.Kafka.Topic.AuditEvents, auditNo, ev.table, ev.event, ev.count); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("analyze").
		WithField("audit_no", auditNo).
		WithField("entries", result.EntryCount).
		WithField("findings", result.FindingCount).
		Info("分析完成")

	return result, nil
}

// createChangeEvent 在事务内写一条 outbox 变更事件
// 订阅端按 audit_no 分辨归属，按 table+event 决定刷新哪块数据
func createChangeEvent(ctx context.Context, tx *gorm.DB, outboxRepo *repository.OutboxRepository, topic, auditNo, table, event string, count int) error {
	payload, _ := json.Marshal(map[string]interface{}{
		"audit_no": auditNo,
		"table":    table,
		"event":    event,
		"count":    count,
	})

	msg := &model.OutboxMessage{
		MessageKey: auditNo,
		Topic:      topic,
		Payload:    string(payload),
		Status:     model.OutboxStatusPending,
	}
	if err := outboxRepo.Create(ctx, tx, msg); err != nil {
		return fmt.Errorf("写入变更事件失败: %w", err)
	}
	return nil
}
