package handler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelar/taskboard/internal/model"
)

func TestParseISOWeek(t *testing.T) {
	year, week, err := parseISOWeek("2025-W07")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 7, week)

	// Lowercase and unpadded forms are tolerated.
	year, week, err = parseISOWeek("2025-w07")
	require.NoError(t, err)
	assert.Equal(t, 7, week)

	year, week, err = parseISOWeek("2026-3")
	require.NoError(t, err)
	assert.Equal(t, 2026, year)
	assert.Equal(t, 3, week)
}

func TestParseISOWeekRejectsInvalid(t *testing.T) {
	for _, raw := range []string{"", "W07", "2025-W0", "2025-W54", "2025-W99", "banana"} {
		_, _, err := parseISOWeek(raw)
		assert.Error(t, err, "input %q", raw)
	}
}

func TestISOWeekStart(t *testing.T) {
	// 2026-W01 starts Monday 2025-12-29 (Jan 4th 2026 is a Sunday).
	start := isoWeekStart(2026, 1)
	assert.Equal(t, time.Date(2025, 12, 29, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Monday, start.Weekday())

	// Round trip through the standard library's ISOWeek.
	for _, tc := range []struct{ year, week int }{
		{2025, 7}, {2026, 35}, {2020, 53},
	} {
		start := isoWeekStart(tc.year, tc.week)
		y, w := start.ISOWeek()
		assert.Equal(t, tc.year, y)
		assert.Equal(t, tc.week, w)
		assert.Equal(t, time.Monday, start.Weekday())
	}
}

func TestSummarizeWorklogs(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 8, d, 0, 0, 0, 0, time.UTC)
	}
	logs := []*model.Worklog{
		{Date: day(24), Hours: 2},
		{Date: day(24), Hours: 1.5},
		{Date: day(26), Hours: 4},
	}

	daily, total := summarizeWorklogs(logs)
	assert.InDelta(t, 7.5, total, 1e-9)
	assert.Len(t, daily, 2)
	assert.InDelta(t, 3.5, daily["2026-08-24"], 1e-9)
	assert.InDelta(t, 4.0, daily["2026-08-26"], 1e-9)
}

func TestSummarizeWorklogsEmpty(t *testing.T) {
	daily, total := summarizeWorklogs(nil)
	assert.Zero(t, total)
	assert.Empty(t, daily)
}
