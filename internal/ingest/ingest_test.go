package ingest

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"auditsystem/internal/ledger"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<Defter>
  <Kayitlar>
    <JournalEntry>
      <Date>2024-01-05</Date>
      <Description>Kira ödemesi</Description>
      <Reference>MAK-001</Reference>
      <Line>
        <AccountID>770</AccountID>
        <AccountName>Genel Yönetim Giderleri</AccountName>
        <Description>Ocak ayı kira</Description>
        <DebitAmount>25000</DebitAmount>
        <CreditAmount>0</CreditAmount>
      </Line>
      <Line>
        <AccountID>100</AccountID>
        <AccountName>Kasa</AccountName>
        <DebitAmount>0</DebitAmount>
        <CreditAmount>25000</CreditAmount>
      </Line>
    </JournalEntry>
  </Kayitlar>
</Defter>`

func TestParseXML_FlattensEntriesToLines(t *testing.T) {
	records, err := ParseXML(strings.NewReader(sampleXML))
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	assert.Equal(t, "2024-01-05", records[0].Date)
	assert.Equal(t, "770", records[0].AccountCode)
	assert.Equal(t, "Ocak ayı kira", records[0].Description)
	assert.Equal(t, "MAK-001", records[0].Reference)
	assert.Equal(t, "25000", records[0].Debit)

	// 行没有自己的说明时退回分录级说明
	assert.Equal(t, "Kira ödemesi", records[1].Description)
	assert.Equal(t, "100", records[1].AccountCode)
	assert.Equal(t, "25000", records[1].Credit)
}

func TestParseXML_RejectsFileWithoutEntries(t *testing.T) {
	_, err := ParseXML(strings.NewReader(`<Defter></Defter>`))
	assert.Error(t, err)
}

func TestParseXML_RejectsBrokenXML(t *testing.T) {
	_, err := ParseXML(strings.NewReader(`<Defter><JournalEntry>`))
	assert.Error(t, err)
}

func TestDemoRecords_NormalizeCleanly(t *testing.T) {
	entries, err := ledger.Normalize(DemoRecords())
	assert.NoError(t, err)
	assert.Len(t, entries, len(DemoRecords()))
}

// 演示账套必须能演示出每一类风险
func TestDemoRecords_ProduceEveryFindingCategory(t *testing.T) {
	entries, err := ledger.Normalize(DemoRecords())
	assert.NoError(t, err)

	cfg := ledger.RuleConfig{
		CashAccount:         "100",
		RelatedPartyAccount: "131",
		CashThreshold:       decimal.NewFromInt(7000),
		LargeCashThreshold:  decimal.NewFromInt(200000),
	}
	findings := ledger.NewDetector(cfg).Detect(entries)

	seen := map[string]bool{}
	for _, f := range findings {
		seen[f.Category] = true
	}

	assert.True(t, seen[ledger.CategoryCashReversed])
	assert.True(t, seen[ledger.CategoryCashThreshold])
	assert.True(t, seen[ledger.CategoryLargeCash])
	assert.True(t, seen[ledger.CategoryMissingDoc])
	assert.True(t, seen[ledger.CategoryRelatedParty])
}

// 演示账套本身要符合复式记账：借贷总额必须相等
func TestDemoRecords_DebitsEqualCredits(t *testing.T) {
	entries, err := ledger.Normalize(DemoRecords())
	assert.NoError(t, err)

	summaries := ledger.Aggregate(entries)
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, s := range summaries {
		totalDebit = totalDebit.Add(s.TotalDebit)
		totalCredit = totalCredit.Add(s.TotalCredit)
	}
	assert.True(t, totalDebit.Equal(totalCredit),
		"借方合计 %s != 贷方合计 %s", totalDebit, totalCredit)
}
