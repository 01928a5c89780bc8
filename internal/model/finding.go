package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// RiskFinding 风险发现表
// 等级和类别的取值来自分析引擎（见 internal/ledger 的常量）
//
// 除 ai_explanation 外全部字段在分析时一次写入，之后不再修改；
// ai_explanation 由外部文本生成服务补充，可重复覆盖
type RiskFinding struct {
	ID            int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	FindingNo     string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"finding_no"`
	AuditID       int64           `gorm:"index;not null" json:"audit_id"`
	Severity      string          `gorm:"type:varchar(20);not null" json:"severity"`
	Category      string          `gorm:"type:varchar(64);not null" json:"category"`
	Title         string          `gorm:"type:varchar(256);not null" json:"title"`
	Description   string          `gorm:"type:text" json:"description"` // 含触发日期和金额的说明文字
	Detail        string          `gorm:"type:text" json:"detail"`      // 该类别的固定法规依据说明
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	PenaltyRisk   decimal.Decimal `gorm:"type:decimal(18,2)" json:"penalty_risk"`
	AccountCode   string          `gorm:"type:varchar(16)" json:"account_code"`
	FindingDate   *time.Time      `json:"finding_date"`
	AIExplanation string          `gorm:"type:text" json:"ai_explanation"` // 空串表示尚未生成
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (RiskFinding) TableName() string {
	return "risk_finding"
}
