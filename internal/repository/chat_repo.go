package repository

import (
	"context"

	"auditsystem/internal/model"

	"gorm.io/gorm"
)

type ChatRepository struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, msg *model.ChatMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *ChatRepository) ListByAuditID(ctx context.Context, auditID int64) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	err := r.db.WithContext(ctx).
		Where("audit_id = ?", auditID).
		Order("id ASC").
		Find(&messages).Error
	return messages, err
}

func (r *ChatRepository) DeleteByAuditID(ctx context.Context, tx *gorm.DB, auditID int64) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Where("audit_id = ?", auditID).Delete(&model.ChatMessage{}).Error
}
