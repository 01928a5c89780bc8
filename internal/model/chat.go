package model

import (
	"time"
)

const (
	ChatRoleUser = "user"
	ChatRoleAI   = "ai"
)

// ChatMessage 稽核助手对话消息表
type ChatMessage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageNo string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"message_no"`
	AuditID   int64     `gorm:"index;not null" json:"audit_id"`
	Role      string    `gorm:"type:varchar(10);not null" json:"role"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_message"
}
