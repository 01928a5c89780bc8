package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"auditsystem/internal/config"
	"auditsystem/internal/infrastructure/ai"
	"auditsystem/internal/ledger"
	"auditsystem/internal/model"
	"auditsystem/internal/repository"
	"auditsystem/pkg/idgen"
	"auditsystem/pkg/logger"

	"gorm.io/gorm"
)

var (
	ErrUnknownReportType = errors.New("未知的报告草稿类型")
	ErrReportEmpty       = errors.New("报告内容为空")
)

// ReportService 稽核报告服务
//
// 一个档案维护一份"当前报告"。AI 草稿（摘要/邮件/行动计划）生成后
// 追加到当前内容末尾，用户也可以整体覆盖保存自己编辑的版本
type ReportService struct {
	db          *gorm.DB
	cfg         *config.Config
	aiClient    *ai.Client
	auditRepo   *repository.AuditRepository
	findingRepo *repository.FindingRepository
	reportRepo  *repository.ReportRepository
	outboxRepo  *repository.OutboxRepository
}

func NewReportService(db *gorm.DB, cfg *config.Config, aiClient *ai.Client) *ReportService {
	return &ReportService{
		db:          db,
		cfg:         cfg,
		aiClient:    aiClient,
		auditRepo:   repository.NewAuditRepository(db),
		findingRepo: repository.NewFindingRepository(db),
		reportRepo:  repository.NewReportRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

// GenerateDraft 生成一段 AI 草稿并追加到当前报告
func (s *ReportService) GenerateDraft(ctx context.Context, auditNo, draftType string) (*model.ReportContent, error) {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return nil, err
	}

	prompt, err := s.buildDraftPrompt(ctx, audit, draftType)
	if err != nil {
		return nil, err
	}

	draft, err := s.aiClient.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	report, err := s.getOrCreate(ctx, audit)
	if err != nil {
		return nil, err
	}

	content := report.Content
	if content != "" {
		content += "\n\n"
	}
	content += draft

	if err := s.saveContent(ctx, auditNo, report, content); err != nil {
		return nil, err
	}

	logger.WithModule("report").
		WithField("audit_no", auditNo).
		WithField("draft_type", draftType).
		Info("报告草稿已生成")

	report.Content = content
	return report, nil
}

// GetCurrent 取档案当前报告，没有时返回空内容的新报告
func (s *ReportService) GetCurrent(ctx context.Context, auditNo string) (*model.ReportContent, error) {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return nil, err
	}
	return s.getOrCreate(ctx, audit)
}

// Save 用户整体覆盖保存编辑后的报告内容
func (s *ReportService) Save(ctx context.Context, auditNo, content string) (*model.ReportContent, error) {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return nil, err
	}

	report, err := s.getOrCreate(ctx, audit)
	if err != nil {
		return nil, err
	}

	if err := s.saveContent(ctx, auditNo, report, content); err != nil {
		return nil, err
	}

	report.Content = content
	return report, nil
}

// Speak 把当前报告内容转成语音
func (s *ReportService) Speak(ctx context.Context, auditNo string) ([]byte, error) {
	report, err := s.GetCurrent(ctx, auditNo)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(report.Content) == "" {
		return nil, ErrReportEmpty
	}
	return s.aiClient.SynthesizeSpeech(ctx, report.Content)
}

func (s *ReportService) getOrCreate(ctx context.Context, audit *model.Audit) (*model.ReportContent, error) {
	report, err := s.reportRepo.GetCurrent(ctx, audit.ID)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, repository.ErrReportNotFound) {
		return nil, err
	}

	report = &model.ReportContent{
		ReportNo:  idgen.GenerateReportNo(),
		AuditID:   audit.ID,
		IsCurrent: true,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, fmt.Errorf("创建报告失败: %w", err)
	}
	return report, nil
}

func (s *ReportService) saveContent(ctx context.Context, auditNo string, report *model.ReportContent, content string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Model(&model.ReportContent{}).
			Where("id = ?", report.ID).
			Update("content", content).Error; err != nil {
			return fmt.Errorf("保存报告失败: %w", err)
		}
		return createChangeEvent(ctx, tx, s.outboxRepo, s.cfg.Kafka.Topic.AuditEvents,
			auditNo, "report_content", model.ChangeEventUpdate, 1)
	})
}

// buildDraftPrompt 按草稿类型生成提示词，带上风险发现作为素材
func (s *ReportService) buildDraftPrompt(ctx context.Context, audit *model.Audit, draftType string) (string, error) {
	findings, err := s.findingRepo.ListByAuditID(ctx, audit.ID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Denetim adı: %s\n", audit.Name)
	if len(findings) > 0 {
		b.WriteString("\nBulgular:\n")
		for _, f := range findings {
			fmt.Fprintf(&b, "- [%s] %s (ceza riski %s TL)\n",
				f.Severity, f.Title, ledger.FormatTL(f.PenaltyRisk))
		}
	}

	switch draftType {
	case model.ReportTypeSummary:
		b.WriteString("\nYönetici özeti formatında profesyonel bir denetim raporu özeti yaz. Türkçe olmalı. Maksimum 300 kelime.")
	case model.ReportTypeEmail:
		b.WriteString("\nDenetim sonuçlarını bildiren profesyonel bir e-posta taslağı hazırla. Türkçe, resmi dil kullan.")
	case model.ReportTypeActionPlan:
		b.WriteString("\nDenetim bulgularına dayalı detaylı bir eylem planı oluştur. Türkçe, madde madde liste formatında.")
	default:
		return "", ErrUnknownReportType
	}

	return b.String(), nil
}
