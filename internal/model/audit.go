package model

import (
	"time"
)

const (
	AuditStatusCreated  = "CREATED"  // 刚建立，还没有账套数据
	AuditStatusAnalyzed = "ANALYZED" // 已完成一次分析
)

// Audit 稽核档案表
// 一个稽核档案独占其下的分录、风险、科目汇总、对话和报告，
// 删除档案时必须级联删除
type Audit struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	AuditNo    string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"audit_no"` // 稽核编号，对外标识
	Name       string    `gorm:"type:varchar(128);not null" json:"name"`                // 稽核名称
	Period     string    `gorm:"type:varchar(64)" json:"period"`                        // 稽核期间，如 2024-01
	Status     string    `gorm:"type:varchar(20);index;not null" json:"status"`
	DataLoaded bool      `gorm:"not null;default:false" json:"data_loaded"` // 是否已载入账套数据
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Audit) TableName() string {
	return "audit"
}
