package repository

import (
	"context"

	"auditsystem/internal/model"

	"gorm.io/gorm"
)

type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// BatchCreate 整批写入分录，必须在分析事务内调用
func (r *JournalRepository) BatchCreate(ctx context.Context, tx *gorm.DB, lines []*model.JournalLine) error {
	if tx == nil {
		tx = r.db
	}
	if len(lines) == 0 {
		return nil
	}
	return tx.WithContext(ctx).CreateInBatches(lines, 200).Error
}

// ListByAuditID 按日期升序返回分录，同日分录保持写入顺序
func (r *JournalRepository) ListByAuditID(ctx context.Context, auditID int64) ([]*model.JournalLine, error) {
	var lines []*model.JournalLine
	err := r.db.WithContext(ctx).
		Where("audit_id = ?", auditID).
		Order("entry_date ASC, id ASC").
		Find(&lines).Error
	return lines, err
}

func (r *JournalRepository) DeleteByAuditID(ctx context.Context, tx *gorm.DB, auditID int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Where("audit_id = ?", auditID).Delete(&model.JournalLine{}).Error
}
