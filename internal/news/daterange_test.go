package news

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	r, err := ParseDateRange("2025-01-02", "2025-01-09")
	require.NoError(t, err)

	assert.Equal(t, "2025-01-02", r.StartString())
	assert.Equal(t, "2025-01-09", r.EndString())
	assert.Equal(t, time.Date(2025, 1, 9, 23, 59, 59, 0, time.UTC), r.EndOfRange())
	assert.Equal(t, "Jan 2 – Jan 9, 2025", r.Label())
}

func TestParseDateRange_Invalid(t *testing.T) {
	_, err := ParseDateRange("2025-13-01", "2025-01-09")
	assert.Error(t, err)

	_, err = ParseDateRange("2025-01-09", "2025-01-02")
	assert.ErrorContains(t, err, "before start")
}

func TestDateRange_LabelSingleDayAndAcrossYears(t *testing.T) {
	day, err := ParseDateRange("2025-03-01", "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, "Mar 1, 2025", day.Label())

	span, err := ParseDateRange("2024-12-30", "2025-01-02")
	require.NoError(t, err)
	assert.Equal(t, "Dec 30, 2024 – Jan 2, 2025", span.Label())
}
