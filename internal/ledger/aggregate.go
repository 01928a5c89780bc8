package ledger

import (
	"sort"
)

// Aggregate 按科目汇总分录
//
// 对每个出现过的科目编码产出一行：借方合计、贷方合计、
// 余额（借−贷）、分录条数。结果按 |余额| 降序排列 ——
// 无论方向，敞口最大的科目排最前面。
//
// 求和满足交换律，所以这里不依赖日期顺序，和检测引擎不同。
func Aggregate(entries []Entry) []AccountSummary {
	index := make(map[string]int, 16)
	summaries := make([]AccountSummary, 0, 16)

	for _, e := range entries {
		i, ok := index[e.AccountCode]
		if !ok {
			i = len(summaries)
			index[e.AccountCode] = i
			summaries = append(summaries, AccountSummary{
				AccountCode: e.AccountCode,
				AccountName: e.AccountName,
			})
		}

		s := &summaries[i]
		if s.AccountName == "" {
			s.AccountName = e.AccountName
		}
		s.TotalDebit = s.TotalDebit.Add(e.Debit)
		s.TotalCredit = s.TotalCredit.Add(e.Credit)
		s.Balance = s.TotalDebit.Sub(s.TotalCredit)
		s.EntryCount++
	}

	// 稳定排序：|余额| 相同的科目保持首次出现的顺序
	sort.SliceStable(summaries, func(a, b int) bool {
		return summaries[a].Balance.Abs().GreaterThan(summaries[b].Balance.Abs())
	})

	return summaries
}
