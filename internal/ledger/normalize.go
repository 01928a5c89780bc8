package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Normalize 把原始记录整理成规范分录序列
//
// 输出保证：
//  1. 按日期升序排列
//  2. 同一天的分录保持输入顺序（稳定排序）
//
// 【关键点】第 2 条不是锦上添花：余额是按顺序累加的，顺序不同，
// 被标记为"导致负余额"的那条分录就不同。排序不确定 = 检测结果不确定。
//
// 任何一条记录不合法就拒绝整批（见 ValidationError 的注释）。
func Normalize(records []RawRecord) ([]Entry, error) {
	entries := make([]Entry, 0, len(records))

	for i, rec := range records {
		if rec.Date == "" {
			return nil, &ValidationError{Index: i, Field: "date"}
		}
		if rec.AccountCode == "" {
			return nil, &ValidationError{Index: i, Field: "account_code"}
		}

		date, err := time.Parse(DateLayout, rec.Date)
		if err != nil {
			return nil, &ValidationError{Index: i, Field: "date"}
		}

		debit, err := parseAmount(rec.Debit)
		if err != nil {
			return nil, &MalformedEntryError{Index: i, Field: "debit", Value: rec.Debit}
		}
		credit, err := parseAmount(rec.Credit)
		if err != nil {
			return nil, &MalformedEntryError{Index: i, Field: "credit", Value: rec.Credit}
		}

		entries = append(entries, Entry{
			Date:        date,
			Description: rec.Description,
			Reference:   rec.Reference,
			AccountCode: rec.AccountCode,
			AccountName: rec.AccountName,
			Debit:       debit,
			Credit:      credit,
		})
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Date.Before(entries[b].Date)
	})

	return entries, nil
}

// parseAmount 解析金额文本，空串按 0 处理（分录通常只填借贷一边）
func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		// 借贷金额必须非负，方向由借/贷字段本身表达
		return decimal.Zero, errNegativeAmount
	}
	return d, nil
}

type negativeAmountError struct{}

func (negativeAmountError) Error() string { return "金额不能为负数" }

var errNegativeAmount = negativeAmountError{}
