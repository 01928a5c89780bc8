package repository

import (
	"context"
	"errors"

	"auditsystem/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, report *model.ReportContent) error {
	return r.db.WithContext(ctx).Create(report).Error
}

// GetCurrent 取档案的当前报告
func (r *ReportRepository) GetCurrent(ctx context.Context, auditID int64) (*model.ReportContent, error) {
	var report model.ReportContent
	err := r.db.WithContext(ctx).
		Where("audit_id = ? AND is_current = ?", auditID, true).
		Order("id DESC").
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *ReportRepository) DeleteByAuditID(ctx context.Context, tx *gorm.DB, auditID int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Where("audit_id = ?", auditID).Delete(&model.ReportContent{}).Error
}
