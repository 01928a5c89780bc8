package model

import (
	"time"
)

const (
	OutboxStatusPending = "PENDING"
	OutboxStatusSent    = "SENT"
	OutboxStatusFailed  = "FAILED"
)

// 变更事件类型，对齐前端订阅的 INSERT/UPDATE/DELETE 语义
const (
	ChangeEventInsert = "INSERT"
	ChangeEventUpdate = "UPDATE"
	ChangeEventDelete = "DELETE"
)

// OutboxMessage 事务性 outbox 消息表
//
// 分析结果落库和变更事件写入同一个事务，后台任务再把事件
// 推到 Kafka，前端按稽核编号订阅即可拿到实时变更
type OutboxMessage struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MessageKey string    `gorm:"type:varchar(64);not null" json:"message_key"` // 稽核编号，保证同档案事件有序
	Topic      string    `gorm:"type:varchar(64);not null" json:"topic"`
	Payload    string    `gorm:"type:text;not null" json:"payload"`
	Status     string    `gorm:"type:varchar(20);index;not null;default:PENDING" json:"status"`
	RetryCount int       `gorm:"not null;default:0" json:"retry_count"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OutboxMessage) TableName() string {
	return "outbox_message"
}
