package model

import (
	"time"
)

// 报告草稿类型
const (
	ReportTypeSummary    = "summary"     // 管理层摘要
	ReportTypeEmail      = "email"       // 结果通报邮件
	ReportTypeActionPlan = "action-plan" // 整改行动计划
)

// ReportContent 稽核报告内容表
// 一个稽核档案只有一份当前报告（is_current），生成新草稿时追加到当前内容
type ReportContent struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportNo  string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"report_no"`
	AuditID   int64     `gorm:"index;not null" json:"audit_id"`
	Content   string    `gorm:"type:longtext" json:"content"`
	IsCurrent bool      `gorm:"not null;default:true" json:"is_current"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ReportContent) TableName() string {
	return "report_content"
}
