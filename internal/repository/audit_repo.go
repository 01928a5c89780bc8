package repository

import (
	"context"
	"errors"

	"auditsystem/internal/model"

	"gorm.io/gorm"
)

var (
	ErrAuditNotFound   = errors.New("稽核档案不存在")
	ErrFindingNotFound = errors.New("风险发现不存在")
	ErrReportNotFound  = errors.New("报告不存在")
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, audit *model.Audit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *AuditRepository) GetByAuditNo(ctx context.Context, auditNo string) (*model.Audit, error) {
	var audit model.Audit
	err := r.db.WithContext(ctx).Where("audit_no = ?", auditNo).First(&audit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}
	return &audit, nil
}

func (r *AuditRepository) GetByID(ctx context.Context, id int64) (*model.Audit, error) {
	var audit model.Audit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&audit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditNotFound
		}
		return nil, err
	}
	return &audit, nil
}

func (r *AuditRepository) List(ctx context.Context) ([]*model.Audit, error) {
	var audits []*model.Audit
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&audits).Error
	return audits, err
}

// MarkAnalyzed 在分析事务内更新档案状态
func (r *AuditRepository) MarkAnalyzed(ctx context.Context, tx *gorm.DB, id int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).
		Model(&model.Audit{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":      model.AuditStatusAnalyzed,
			"data_loaded": true,
		}).Error
}

func (r *AuditRepository) Delete(ctx context.Context, tx *gorm.DB, id int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Audit{}).Error
}
