package service

import (
	"context"
	"fmt"

	"auditsystem/internal/config"
	"auditsystem/internal/model"
	"auditsystem/internal/repository"
	"auditsystem/pkg/idgen"
	"auditsystem/pkg/logger"

	"gorm.io/gorm"
)

// AuditService 稽核档案管理服务
type AuditService struct {
	db          *gorm.DB
	cfg         *config.Config
	auditRepo   *repository.AuditRepository
	journalRepo *repository.JournalRepository
	findingRepo *repository.FindingRepository
	summaryRepo *repository.SummaryRepository
	chatRepo    *repository.ChatRepository
	reportRepo  *repository.ReportRepository
	outboxRepo  *repository.OutboxRepository
}

func NewAuditService(db *gorm.DB, cfg *config.Config) *AuditService {
	return &AuditService{
		db:          db,
		cfg:         cfg,
		auditRepo:   repository.NewAuditRepository(db),
		journalRepo: repository.NewJournalRepository(db),
		findingRepo: repository.NewFindingRepository(db),
		summaryRepo: repository.NewSummaryRepository(db),
		chatRepo:    repository.NewChatRepository(db),
		reportRepo:  repository.NewReportRepository(db),
		outboxRepo:  repository.NewOutboxRepository(db),
	}
}

type CreateAuditRequest struct {
	Name   string `json:"name" binding:"required"`
	Period string `json:"period"`
}

func (s *AuditService) Create(ctx context.Context, req *CreateAuditRequest) (*model.Audit, error) {
	audit := &model.Audit{
		AuditNo: idgen.GenerateAuditNo(),
		Name:    req.Name,
		Period:  req.Period,
		Status:  model.AuditStatusCreated,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Create(audit).Error; err != nil {
			return fmt.Errorf("创建稽核档案失败: %w", err)
		}
		return s.createAuditEvent(ctx, tx, audit.AuditNo, model.ChangeEventInsert)
	})
	if err != nil {
		return nil, err
	}

	logger.WithModule("audit").WithField("audit_no", audit.AuditNo).Info("稽核档案已创建")
	return audit, nil
}

func (s *AuditService) List(ctx context.Context) ([]*model.Audit, error) {
	return s.auditRepo.List(ctx)
}

func (s *AuditService) Get(ctx context.Context, auditNo string) (*model.Audit, error) {
	return s.auditRepo.GetByAuditNo(ctx, auditNo)
}

func (s *AuditService) Rename(ctx context.Context, auditNo, name string) (*model.Audit, error) {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).
			Model(&model.Audit{}).
			Where("id = ?", audit.ID).
			Update("name", name).Error; err != nil {
			return fmt.Errorf("更新档案名称失败: %w", err)
		}
		return s.createAuditEvent(ctx, tx, auditNo, model.ChangeEventUpdate)
	})
	if err != nil {
		return nil, err
	}

	audit.Name = name
	return audit, nil
}

// Delete 删除档案并级联删除其下所有数据
//
// 【关键点】分录、风险、汇总、对话、报告全部挂在 audit_id 下，
// 必须在同一个事务里一起删，否则会留下无主数据
func (s *AuditService) Delete(ctx context.Context, auditNo string) error {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.journalRepo.DeleteByAuditID(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("删除分录失败: %w", err)
		}
		if err := s.findingRepo.DeleteByAuditID(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("删除风险发现失败: %w", err)
		}
		if err := s.summaryRepo.DeleteByAuditID(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("删除科目汇总失败: %w", err)
		}
		if err := s.chatRepo.DeleteByAuditID(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("删除对话记录失败: %w", err)
		}
		if err := s.reportRepo.DeleteByAuditID(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("删除报告失败: %w", err)
		}
		if err := s.auditRepo.Delete(ctx, tx, audit.ID); err != nil {
			return fmt.Errorf("删除稽核档案失败: %w", err)
		}
		return s.createAuditEvent(ctx, tx, auditNo, model.ChangeEventDelete)
	})
	if err != nil {
		return err
	}

	logger.WithModule("audit").WithField("audit_no", auditNo).Info("稽核档案已删除")
	return nil
}

// ListEntries 返回档案的全部分录，未分析过的档案拒绝查询
func (s *AuditService) ListEntries(ctx context.Context, auditNo string) ([]*model.JournalLine, error) {
	audit, err := s.requireLoaded(ctx, auditNo)
	if err != nil {
		return nil, err
	}
	return s.journalRepo.ListByAuditID(ctx, audit.ID)
}

func (s *AuditService) ListFindings(ctx context.Context, auditNo string) ([]*model.RiskFinding, error) {
	audit, err := s.requireLoaded(ctx, auditNo)
	if err != nil {
		return nil, err
	}
	return s.findingRepo.ListByAuditID(ctx, audit.ID)
}

func (s *AuditService) ListSummaries(ctx context.Context, auditNo string) ([]*model.AccountSummary, error) {
	audit, err := s.requireLoaded(ctx, auditNo)
	if err != nil {
		return nil, err
	}
	return s.summaryRepo.ListByAuditID(ctx, audit.ID)
}

func (s *AuditService) requireLoaded(ctx context.Context, auditNo string) (*model.Audit, error) {
	audit, err := s.auditRepo.GetByAuditNo(ctx, auditNo)
	if err != nil {
		return nil, err
	}
	if !audit.DataLoaded {
		return nil, ErrAuditNotLoaded
	}
	return audit, nil
}

func (s *AuditService) createAuditEvent(ctx context.Context, tx *gorm.DB, auditNo, event string) error {
	return createChangeEvent(ctx, tx, s.outboxRepo, s.cfg.Kafka.Topic.AuditEvents, auditNo, "audit", event, 1)
}
