package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// 100 借5000/贷9000，131 借150000/贷50000，
// 131（余额 100000）应排在 100（余额 -4000）前面
func TestAggregate_SortsByAbsoluteBalanceDescending(t *testing.T) {
	entries := []Entry{
		cashEntry("2024-01-01", "5000", "0"),
		cashEntry("2024-01-05", "0", "9000"),
		relatedEntry("2024-01-12", "150000", "0"),
		relatedEntry("2024-02-08", "0", "50000"),
	}

	summaries := Aggregate(entries)
	assert.Len(t, summaries, 2)

	assert.Equal(t, "131", summaries[0].AccountCode)
	assert.True(t, summaries[0].Balance.Equal(dec("100000")))
	assert.Equal(t, 2, summaries[0].EntryCount)

	assert.Equal(t, "100", summaries[1].AccountCode)
	assert.True(t, summaries[1].Balance.Equal(dec("-4000")))
	assert.True(t, summaries[1].TotalDebit.Equal(dec("5000")))
	assert.True(t, summaries[1].TotalCredit.Equal(dec("9000")))
}

// 守恒律：所有科目借方合计之和 == 所有分录借方之和，贷方同理
func TestAggregate_ConservationLaw(t *testing.T) {
	entries := []Entry{
		cashEntry("2024-01-01", "25000", "0"),
		cashEntry("2024-01-02", "0", "25000"),
		relatedEntry("2024-01-03", "150000", "0"),
		cashEntry("2024-01-04", "45000", "0"),
	}

	var wantDebit, wantCredit decimal.Decimal
	for _, e := range entries {
		wantDebit = wantDebit.Add(e.Debit)
		wantCredit = wantCredit.Add(e.Credit)
	}

	var gotDebit, gotCredit decimal.Decimal
	for _, s := range Aggregate(entries) {
		gotDebit = gotDebit.Add(s.TotalDebit)
		gotCredit = gotCredit.Add(s.TotalCredit)
	}

	assert.True(t, gotDebit.Equal(wantDebit))
	assert.True(t, gotCredit.Equal(wantCredit))
}

func TestAggregate_OneRowPerAccount(t *testing.T) {
	entries := []Entry{
		cashEntry("2024-01-01", "100", "0"),
		cashEntry("2024-01-02", "100", "0"),
		cashEntry("2024-01-03", "100", "0"),
	}

	summaries := Aggregate(entries)
	assert.Len(t, summaries, 1)
	assert.Equal(t, 3, summaries[0].EntryCount)
	assert.True(t, summaries[0].TotalDebit.Equal(dec("300")))
	assert.Equal(t, "Kasa", summaries[0].AccountName)
}

func TestAggregate_EmptyInput(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
}
