package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================================
// 账套分析核心类型
// ============================================================================
//
// 这个包是整个系统唯一的领域算法所在：
//   Normalize  把来源各异的原始记录整理成按日期排序的规范分录
//   Detector   单趟扫描规范分录，按税务规则产出风险发现
//   Aggregate  按科目汇总借贷发生额和余额
//
// 三个入口都是纯函数：不碰数据库、不碰全局状态，传同样的输入
// 永远得到同样的输出。落库、事件推送全部由 service 层负责。
//
// ============================================================================

// DateLayout 分录日期的规范格式
const DateLayout = "2006-01-02"

// 风险等级，沿用产品面向用户的土耳其语词汇
const (
	SeverityCritical = "Kritik" // 结构性记账错误，稽查必查
	SeverityWarning  = "Uyarı"  // 合规违规，可能被剔除税前扣除
	SeverityInfo     = "Bilgi"  // 提示性风险
)

// 风险类别
const (
	CategoryCashReversed  = "Kasa Ters Bakiye"           // 现金账户出现负余额
	CategoryCashThreshold = "Tevsik Sınırı İhlali"       // 超过凭证限额的现金收付
	CategoryLargeCash     = "Büyük Nakit Hareketi"       // 大额现金变动
	CategoryMissingDoc    = "Eksik Belge"                // 凭证要素缺失
	CategoryRelatedParty  = "Ortaklar Cari Hesabı Riski" // 股东往来借方余额
)

// RawRecord 原始分录记录
// 来源可能是演示数据、e-Defter XML 或 Excel 上传，金额一律保留
// 文本形态，由 Normalize 统一解析，解析失败整批拒绝
type RawRecord struct {
	Date        string `json:"date"`
	Description string `json:"description"`
	Reference   string `json:"reference"`
	AccountCode string `json:"account_code"`
	AccountName string `json:"account_name"`
	Debit       string `json:"debit"`
	Credit      string `json:"credit"`
}

// Entry 规范化后的分录，借贷金额都是非负数
type Entry struct {
	Date        time.Time
	Description string
	Reference   string
	AccountCode string
	AccountName string
	Debit       decimal.Decimal
	Credit      decimal.Decimal
}

// Net 该分录对科目余额的净影响（借方 − 贷方）
func (e Entry) Net() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// Finding 一条风险发现
type Finding struct {
	Severity    string
	Category    string
	Title       string
	Description string          // 含触发日期、金额的说明
	Detail      string          // 该类别固定的法规依据
	Amount      decimal.Decimal // 触发规则的金额
	PenaltyRisk decimal.Decimal
	AccountCode string
	Date        *time.Time
}

// AccountSummary 一个科目的借贷汇总
type AccountSummary struct {
	AccountCode string
	AccountName string
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
	Balance     decimal.Decimal // TotalDebit − TotalCredit
	EntryCount  int
}

// RuleConfig 检测规则参数，由配置文件注入（见 config.RulesConfig）
type RuleConfig struct {
	CashAccount         string          // 现金科目编码，土耳其统一会计科目表里是 "100"
	RelatedPartyAccount string          // 股东往来科目编码，"131"
	CashThreshold       decimal.Decimal // 现金凭证限额，VUK tevsik 下限 7000 TL
	LargeCashThreshold  decimal.Decimal // 大额现金预警线
}

// ValidationError 原始记录缺少必填字段
// 策略是整批拒绝而不是丢掉坏行：缺行的账套会算出误导性的余额
type ValidationError struct {
	Index int    // 出错记录在原始批次里的下标
	Field string // 缺失的字段名
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("第 %d 条记录缺少必填字段 %s", e.Index, e.Field)
}

// MalformedEntryError 金额字段不是合法数字
// 绝不能静默按 0 处理：静默归零会扭曲余额追踪，把风险藏起来
type MalformedEntryError struct {
	Index int
	Field string
	Value string
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("第 %d 条记录的 %s 字段不是合法金额: %q", e.Index, e.Field, e.Value)
}

// FormatTL 按土耳其本地惯例格式化金额：千分位用点、小数位用逗号
// 例如 -1234567.8 -> "-1.234.567,80"
func FormatTL(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot+1:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(c)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
