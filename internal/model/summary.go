package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountSummary 科目汇总表
// 每次分析从分录整体重算，永远不做增量修补
type AccountSummary struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	AuditID     int64           `gorm:"index;not null" json:"audit_id"`
	AccountCode string          `gorm:"type:varchar(16);not null" json:"account_code"`
	AccountName string          `gorm:"type:varchar(128)" json:"account_name"`
	TotalDebit  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_debit"`
	TotalCredit decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"total_credit"`
	Balance     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance"` // 借方合计 − 贷方合计
	EntryCount  int             `gorm:"not null" json:"entry_count"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (AccountSummary) TableName() string {
	return "account_summary"
}
