package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComplaintID(t *testing.T) {
	id := ComplaintID("GRV", "tx-abc-123")

	assert.Regexp(t, `^GRV-[0-9A-F]{8}$`, id)

	// Same transaction always yields the same ID; different transactions
	// yield different IDs.
	assert.Equal(t, id, ComplaintID("GRV", "tx-abc-123"))
	assert.NotEqual(t, id, ComplaintID("GRV", "tx-abc-124"))
}

func TestDerivedID(t *testing.T) {
	a := DerivedID("HIST", "tx-1", "GRV-00000001", "SUBMITTED")
	b := DerivedID("HIST", "tx-1", "GRV-00000001", "RESOLVED")
	c := DerivedID("HIST", "tx-2", "GRV-00000001", "SUBMITTED")

	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, DerivedID("HIST", "tx-1", "GRV-00000001", "SUBMITTED"))
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("GRV-4F2A91C3", "GRV"))
	assert.Error(t, ValidateID("GRV", "GRV"))
	assert.Error(t, ValidateID("CMP-4F2A91C3", "GRV"))
	assert.Error(t, ValidateID("", "GRV"))
}

func TestFormatAndParseTime(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

	formatted := FormatTime(at)
	parsed, err := ParseTime(formatted)

	require.NoError(t, err)
	assert.True(t, at.Equal(parsed))

	_, err = ParseTime("not a time")
	assert.Error(t, err)
}

func TestDaysBetween(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(start, start))
	assert.Equal(t, 0, DaysBetween(start, start.Add(23*time.Hour)))
	assert.Equal(t, 1, DaysBetween(start, start.Add(25*time.Hour)))
	assert.Equal(t, 3, DaysBetween(start, start.AddDate(0, 0, 3)))
	assert.Equal(t, 0, DaysBetween(start, start.Add(-time.Hour)))
	assert.Equal(t, 0, DaysBetween(time.Time{}, start))
}
