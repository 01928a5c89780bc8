package repository

import (
	"context"

	"auditsystem/internal/model"

	"gorm.io/gorm"
)

type SummaryRepository struct {
	db *gorm.DB
}

func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

func (r *SummaryRepository) BatchCreate(ctx context.Context, tx *gorm.DB, summaries []*model.AccountSummary) error {
	if tx == nil {
		tx = r.db
	}
	if len(summaries) == 0 {
		return nil
	}
	return tx.WithContext(ctx).CreateInBatches(summaries, 200).Error
}

// ListByAuditID 汇总行在写入时已按余额绝对值降序排好，按 id 取即可
func (r *SummaryRepository) ListByAuditID(ctx context.Context, auditID int64) ([]*model.AccountSummary, error) {
	var summaries []*model.AccountSummary
	err := r.db.WithContext(ctx).
		Where("audit_id = ?", auditID).
		Order("id ASC").
		Find(&summaries).Error
	return summaries, err
}

func (r *SummaryRepository) DeleteByAuditID(ctx context.Context, tx *gorm.DB, auditID int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Where("audit_id = ?", auditID).Delete(&model.AccountSummary{}).Error
}
