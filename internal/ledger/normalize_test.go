package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_SortsByDateKeepingInputOrderForTies(t *testing.T) {
	records := []RawRecord{
		{Date: "2024-01-05", Description: "b", AccountCode: "100", Debit: "10"},
		{Date: "2024-01-01", Description: "a", AccountCode: "100", Debit: "10"},
		{Date: "2024-01-05", Description: "c", AccountCode: "100", Credit: "5"},
		{Date: "2024-01-05", Description: "d", AccountCode: "102", Debit: "3"},
	}

	entries, err := Normalize(records)
	assert.NoError(t, err)
	assert.Len(t, entries, 4)

	assert.Equal(t, "a", entries[0].Description)
	// 2024-01-05 的三条保持输入相对顺序
	assert.Equal(t, "b", entries[1].Description)
	assert.Equal(t, "c", entries[2].Description)
	assert.Equal(t, "d", entries[3].Description)
}

func TestNormalize_EmptyAmountBecomesZero(t *testing.T) {
	entries, err := Normalize([]RawRecord{
		{Date: "2024-01-01", AccountCode: "100", Debit: "1500.50"},
	})
	assert.NoError(t, err)
	assert.True(t, entries[0].Credit.IsZero())
	assert.Equal(t, "1500.5", entries[0].Debit.String())
}

func TestNormalize_RejectsWholeBatchOnMissingField(t *testing.T) {
	records := []RawRecord{
		{Date: "2024-01-01", AccountCode: "100", Debit: "10"},
		{Date: "", AccountCode: "100", Debit: "10"},
	}

	entries, err := Normalize(records)
	assert.Nil(t, entries)

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, 1, verr.Index)
	assert.Equal(t, "date", verr.Field)
}

func TestNormalize_RejectsMissingAccountCode(t *testing.T) {
	_, err := Normalize([]RawRecord{{Date: "2024-01-01", Debit: "10"}})

	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "account_code", verr.Field)
}

func TestNormalize_FailsLoudlyOnMalformedAmount(t *testing.T) {
	_, err := Normalize([]RawRecord{
		{Date: "2024-01-01", AccountCode: "100", Debit: "abc"},
	})

	var merr *MalformedEntryError
	assert.ErrorAs(t, err, &merr)
	assert.Equal(t, 0, merr.Index)
	assert.Equal(t, "debit", merr.Field)
	assert.Equal(t, "abc", merr.Value)
}

func TestNormalize_RejectsNegativeAmount(t *testing.T) {
	_, err := Normalize([]RawRecord{
		{Date: "2024-01-01", AccountCode: "100", Credit: "-5"},
	})

	var merr *MalformedEntryError
	assert.ErrorAs(t, err, &merr)
	assert.Equal(t, "credit", merr.Field)
}

func TestFormatTL(t *testing.T) {
	assert.Equal(t, "1.234.567,80", FormatTL(dec("1234567.8")))
	assert.Equal(t, "-4.000,00", FormatTL(dec("-4000")))
	assert.Equal(t, "7.000,00", FormatTL(dec("7000")))
	assert.Equal(t, "0,00", FormatTL(dec("0")))
	assert.Equal(t, "999,99", FormatTL(dec("999.99")))
}
