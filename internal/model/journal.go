package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalLine 日记账分录行表
//
// 【重要】分录设计原则：
// 1. 一次分析整批替换，单行不做修改 —— 保证与风险结论一致
// 2. 借贷金额都是非负数，净影响 = 借方 − 贷方
// 3. 金额用 decimal 存储，绝不用浮点 —— 税务金额不允许精度误差
type JournalLine struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	AuditID     int64           `gorm:"index;not null" json:"audit_id"` // 归属稽核档案
	EntryDate   time.Time       `gorm:"not null;index" json:"entry_date"`
	Description string          `gorm:"type:varchar(256)" json:"description"`
	Reference   string          `gorm:"type:varchar(64)" json:"reference"` // 凭证号
	AccountCode string          `gorm:"type:varchar(16);index;not null" json:"account_code"`
	AccountName string          `gorm:"type:varchar(128)" json:"account_name"`
	Debit       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"debit"`
	Credit      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"credit"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (JournalLine) TableName() string {
	return "journal_line"
}
