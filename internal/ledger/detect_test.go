package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testRules() RuleConfig {
	return RuleConfig{
		CashAccount:         "100",
		RelatedPartyAccount: "131",
		CashThreshold:       dec("7000"),
		LargeCashThreshold:  dec("200000"),
	}
}

func cashEntry(date string, debit, credit string) Entry {
	d, _ := time.Parse(DateLayout, date)
	return Entry{
		Date: d, Description: "nakit işlem", Reference: "REF-1",
		AccountCode: "100", AccountName: "Kasa",
		Debit: dec(debit), Credit: dec(credit),
	}
}

func relatedEntry(date string, debit, credit string) Entry {
	d, _ := time.Parse(DateLayout, date)
	return Entry{
		Date: d, Description: "ortak cari", Reference: "REF-2",
		AccountCode: "131", AccountName: "Ortaklardan Alacaklar",
		Debit: dec(debit), Credit: dec(credit),
	}
}

func findByCategory(findings []Finding, category string) []Finding {
	out := []Finding{}
	for _, f := range findings {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// 先借 5000 再贷 9000，余额序列 5000、-4000
// 预期两条发现：一条负余额（-4000）、一条凭证限额（9000）
func TestDetect_CashReversedAndThresholdOnSameEntry(t *testing.T) {
	entries := []Entry{
		cashEntry("2024-01-01", "5000", "0"),
		cashEntry("2024-01-05", "0", "9000"),
	}

	findings := NewDetector(testRules()).Detect(entries)
	assert.Len(t, findings, 2)

	reversed := findByCategory(findings, CategoryCashReversed)
	assert.Len(t, reversed, 1)
	assert.Equal(t, SeverityCritical, reversed[0].Severity)
	assert.True(t, reversed[0].Amount.Equal(dec("-4000")))
	assert.Equal(t, "2024-01-05", reversed[0].Date.Format(DateLayout))

	threshold := findByCategory(findings, CategoryCashThreshold)
	assert.Len(t, threshold, 1)
	assert.Equal(t, SeverityWarning, threshold[0].Severity)
	assert.True(t, threshold[0].Amount.Equal(dec("9000")))
}

func TestDetect_NoReversedFindingWhenBalanceStaysNonNegative(t *testing.T) {
	entries := []Entry{
		cashEntry("2024-01-01", "5000", "0"),
		cashEntry("2024-01-05", "0", "5000"), // 余额正好归零
	}

	findings := NewDetector(testRules()).Detect(entries)
	assert.Empty(t, findByCategory(findings, CategoryCashReversed))
}

func TestDetect_ThresholdIsStrict(t *testing.T) {
	// 正好 7000 不触发，7000.01 触发
	atLimit := NewDetector(testRules()).Detect([]Entry{cashEntry("2024-01-01", "7000", "0")})
	assert.Empty(t, findByCategory(atLimit, CategoryCashThreshold))

	overLimit := NewDetector(testRules()).Detect([]Entry{cashEntry("2024-01-01", "7000.01", "0")})
	hits := findByCategory(overLimit, CategoryCashThreshold)
	assert.Len(t, hits, 1)
	assert.True(t, hits[0].Amount.Equal(dec("7000.01")))
}

func TestDetect_ThresholdUsesLargerSide(t *testing.T) {
	// 借贷同时有值时取大的那边作为"交易金额"
	findings := NewDetector(testRules()).Detect([]Entry{
		cashEntry("2024-01-01", "100", "8000"),
	})
	hits := findByCategory(findings, CategoryCashThreshold)
	assert.Len(t, hits, 1)
	assert.True(t, hits[0].Amount.Equal(dec("8000")))
}

func TestDetect_LargeCashMovementAlsoTriggersThreshold(t *testing.T) {
	// 两条规则独立：250000 同时命中限额和大额
	findings := NewDetector(testRules()).Detect([]Entry{
		cashEntry("2024-01-25", "250000", "0"),
	})

	assert.Len(t, findByCategory(findings, CategoryCashThreshold), 1)

	large := findByCategory(findings, CategoryLargeCash)
	assert.Len(t, large, 1)
	assert.True(t, large[0].Amount.Equal(dec("250000")))
}

// 131 借 150000、贷 50000，净额 100000，产出一条 Bilgi
func TestDetect_RelatedPartyPositiveNet(t *testing.T) {
	entries := []Entry{
		relatedEntry("2024-01-12", "150000", "0"),
		relatedEntry("2024-02-08", "0", "50000"),
	}

	findings := NewDetector(testRules()).Detect(entries)
	hits := findByCategory(findings, CategoryRelatedParty)
	assert.Len(t, hits, 1)
	assert.Equal(t, SeverityInfo, hits[0].Severity)
	assert.True(t, hits[0].Amount.Equal(dec("100000")))
}

func TestDetect_RelatedPartyNonPositiveNetEmitsNothing(t *testing.T) {
	entries := []Entry{
		relatedEntry("2024-01-12", "50000", "0"),
		relatedEntry("2024-02-08", "0", "50000"),
	}

	findings := NewDetector(testRules()).Detect(entries)
	assert.Empty(t, findByCategory(findings, CategoryRelatedParty))
}

func TestDetect_MissingDocumentationCountedOnce(t *testing.T) {
	d, _ := time.Parse(DateLayout, "2024-01-03")
	blank := Entry{Date: d, AccountCode: "770", Debit: dec("100")}

	findings := NewDetector(testRules()).Detect([]Entry{blank, blank, blank})
	hits := findByCategory(findings, CategoryMissingDoc)
	assert.Len(t, hits, 1)
	assert.True(t, hits[0].Amount.Equal(dec("3")))
}

func TestDetect_IsDeterministic(t *testing.T) {
	entries := []Entry{
		cashEntry("2024-01-01", "5000", "0"),
		cashEntry("2024-01-05", "0", "9000"),
		relatedEntry("2024-01-12", "150000", "0"),
	}

	d := NewDetector(testRules())
	first := d.Detect(entries)
	second := d.Detect(entries)
	assert.Equal(t, first, second)
}

func TestDetect_BalanceDoesNotLeakBetweenCalls(t *testing.T) {
	d := NewDetector(testRules())

	// 第一趟把现金打成负的
	d.Detect([]Entry{cashEntry("2024-01-01", "0", "1000")})

	// 第二趟余额必须从零开始
	findings := d.Detect([]Entry{cashEntry("2024-01-01", "1000", "0")})
	assert.Empty(t, findByCategory(findings, CategoryCashReversed))
}

func TestDetect_NonCashAccountsNeverUpdateCashBalance(t *testing.T) {
	d, _ := time.Parse(DateLayout, "2024-01-01")
	bank := Entry{
		Date: d, Description: "banka çıkışı", Reference: "BAN-1",
		AccountCode: "102", AccountName: "Bankalar",
		Debit: dec("0"), Credit: dec("500000"),
	}

	findings := NewDetector(testRules()).Detect([]Entry{bank})
	assert.Empty(t, findings)
}
