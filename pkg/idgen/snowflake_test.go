package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBusinessNoPrefixes(t *testing.T) {
	Init(1)

	assert.True(t, strings.HasPrefix(GenerateAuditNo(), "AUD"))
	assert.True(t, strings.HasPrefix(GenerateFindingNo(), "RSK"))
	assert.True(t, strings.HasPrefix(GenerateMessageNo(), "MSG"))
	assert.True(t, strings.HasPrefix(GenerateReportNo(), "RPT"))
}

func TestNextIDUnique(t *testing.T) {
	Init(1)

	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		id := NextID()
		assert.False(t, seen[id], "重复ID: %d", id)
		seen[id] = true
	}
}
