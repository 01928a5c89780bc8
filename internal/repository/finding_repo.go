package repository

import (
	"context"
	"errors"

	"auditsystem/internal/model"

	"gorm.io/gorm"
)

type FindingRepository struct {
	db *gorm.DB
}

func NewFindingRepository(db *gorm.DB) *FindingRepository {
	return &FindingRepository{db: db}
}

func (r *FindingRepository) BatchCreate(ctx context.Context, tx *gorm.DB, findings []*model.RiskFinding) error {
	if tx == nil {
		tx = r.db
	}
	if len(findings) == 0 {
		return nil
	}
	return tx.WithContext(ctx).CreateInBatches(findings, 200).Error
}

func (r *FindingRepository) GetByFindingNo(ctx context.Context, findingNo string) (*model.RiskFinding, error) {
	var finding model.RiskFinding
	err := r.db.WithContext(ctx).Where("finding_no = ?", findingNo).First(&finding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFindingNotFound
		}
		return nil, err
	}
	return &finding, nil
}

// ListByAuditID 按检测产出顺序返回风险发现
func (r *FindingRepository) ListByAuditID(ctx context.Context, auditID int64) ([]*model.RiskFinding, error) {
	var findings []*model.RiskFinding
	err := r.db.WithContext(ctx).
		Where("audit_id = ?", auditID).
		Order("id ASC").
		Find(&findings).Error
	return findings, err
}

func (r *FindingRepository) DeleteByAuditID(ctx context.Context, tx *gorm.DB, auditID int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Where("audit_id = ?", auditID).Delete(&model.RiskFinding{}).Error
}
