package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocalDateTime(t *testing.T) {
	ms, ok := ParseLocalDateTime("2025-01-01T10:00")
	assert.True(t, ok)
	assert.Greater(t, ms, int64(0))

	ms, ok = ParseLocalDateTime("not-a-date")
	assert.False(t, ok)
	assert.Equal(t, int64(0), ms)
}

func TestIsValidDateString(t *testing.T) {
	assert.True(t, IsValidDateString("2025-06-15T09:30"))
	assert.True(t, IsValidDateString("2025-06-15"))
	assert.False(t, IsValidDateString(""))
	assert.False(t, IsValidDateString("15/06/2025"))
}

func TestIsValidRange(t *testing.T) {
	assert.True(t, IsValidRange("2025-01-01T09:00", "2025-01-01T10:00"))
	assert.False(t, IsValidRange("2025-01-01T10:00", "2025-01-01T09:00"))
	assert.False(t, IsValidRange("2025-01-01T10:00", "2025-01-01T10:00"))
	assert.False(t, IsValidRange("not-a-date", "2025-01-01T10:00"))
	assert.False(t, IsValidRange("2025-01-01T09:00", "nope"))
}

func TestIsValidRangeMs(t *testing.T) {
	assert.True(t, IsValidRangeMs(1000, 2000))
	assert.False(t, IsValidRangeMs(2000, 1000))
	assert.False(t, IsValidRangeMs(0, 2000))
	assert.False(t, IsValidRangeMs(1000, 0))
}

func TestToIsoFromMs(t *testing.T) {
	assert.Equal(t, "1970-01-01T00:00:00.000Z", ToIsoFromMs(0))
	assert.Equal(t, "2025-01-01T00:00:00.000Z", ToIsoFromMs(1735689600000))
}

func TestFormatRangeMs(t *testing.T) {
	// 2025-01-01 09:00 to 17:30 local time.
	start, ok := ParseLocalDateTime("2025-01-01T09:00")
	assert.True(t, ok)
	end, ok := ParseLocalDateTime("2025-01-01T17:30")
	assert.True(t, ok)
	assert.Equal(t, "Jan 1, 2025 09:00–17:30", FormatRangeMs(start, end))
}
