package service

import (
	"context"
	"fmt"

	"auditsystem/internal/config"
	"auditsystem/internal/infrastructure/ai"
	"auditsystem/internal/infrastructure/lock"
	"auditsystem/internal/ledger"
	"auditsystem/internal/model"
	"auditsystem/internal/repository"
	"auditsystem/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// EnrichService 风险发现的 AI 解读服务
//
// 解读是补充性内容：生成失败不影响风险发现本身，重新生成会
// 覆盖旧解读
type EnrichService struct {
	db          *gorm.DB
	redisClient *redis.Client
	cfg         *config.Config
	aiClient    *ai.Client
	auditRepo   *repository.AuditRepository
	findingRepo *repository.FindingRepository
	outboxRepo  *repository.OutboxRepository
}

func NewEnrichService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, aiClient *ai.Client) *EnrichService {
	return &EnrichService{
		db:          db,
		redisClient: redisClient,
		cfg:         cfg,
		aiClient:    aiClient,
		auditRepo:   repository.NewAuditRepository(db),
		findingRepo: repository.NewFindingRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

// ExplainFinding 为一条风险发现生成通俗解读
//
// 【关键点】同一条风险同时只允许一个解读请求在途：AI 调用是秒级
// 操作，并发重复生成既浪费额度，结果还会互相覆盖
func (s *EnrichService) ExplainFinding(ctx context.Context, findingNo string) (*model.RiskFinding, error) {
	finding, err := s.findingRepo.GetByFindingNo(ctx, findingNo)
	if err != nil {
		return nil, err
	}
	audit, err := s.auditRepo.GetByID(ctx, finding.AuditID)
	if err != nil {
		return nil, err
	}

	enrichLock := lock.NewEnrichLock(s.redisClient, findingNo)
	acquired, err := enrichLock.TryLock(ctx)
	if err != nil {
		return nil, fmt.Errorf("获取解读锁失败: %w", err)
	}
	if !acquired {
		return nil, ErrDuplicateRequest
	}
	defer enrichLock.Unlock(ctx)

	prompt := buildExplainPrompt(finding)
	explanation, err := s.aiClient.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Model(&model.RiskFinding{}).
			Where("id = ?", finding.ID).
			Update("ai_explanation", explanation).Error; err != nil {
			return fmt.Errorf("保存解读失败: %w", err)
		}
		return createChangeEvent(ctx, tx, s.outboxRepo, s.cfg.Kafka.Topic.AuditEvents,
			audit.AuditNo, "risk_finding", model.ChangeEventUpdate, 1)
	})
	if err != nil {
		return nil, err
	}

	finding.AIExplanation = explanation
	logger.WithModule("enrich").WithField("finding_no", findingNo).Info("AI 解读已生成")
	return finding, nil
}

// buildExplainPrompt 用发现的结构化字段拼解读提示词
// 面向的读者是企业主而不是税务专家，要求用平实的土耳其语
func buildExplainPrompt(f *model.RiskFinding) string {
	return fmt.Sprintf(
		"Sen deneyimli bir Türk vergi denetçisisin. Aşağıdaki denetim bulgusunu "+
			"muhasebe bilgisi olmayan bir işletme sahibine sade bir Türkçeyle açıkla. "+
			"Riskin ne olduğunu, neden önemli olduğunu ve ne yapılması gerektiğini anlat. "+
			"Maksimum 150 kelime.\n\n"+
			"Bulgu: %s\nKategori: %s\nÖnem: %s\nAçıklama: %s\nTutar: %s TL\nCeza riski: %s TL",
		f.Title, f.Category, f.Severity, f.Description,
		ledger.FormatTL(f.Amount), ledger.FormatTL(f.PenaltyRisk),
	)
}
