package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatActivityLine(t *testing.T) {
	ev := ActivityEvent{
		Action:     "card.created",
		UserID:     7,
		ListID:     3,
		CardID:     42,
		Title:      "write report",
		OccurredAt: "2026-08-29T10:00:00Z",
	}
	line := FormatActivityLine(ev)
	assert.Equal(t,
		`[2026-08-29T10:00:00Z] card.created | user_id=7 | card_id=42 | list_id=3 | title="write report"`,
		line)
}

func TestFormatActivityLineOmitsZeroFields(t *testing.T) {
	ev := ActivityEvent{
		Action:     "worklog.created",
		UserID:     1,
		CardID:     5,
		WorklogID:  9,
		Hours:      2.5,
		OccurredAt: "2026-08-29T10:00:00Z",
	}
	line := FormatActivityLine(ev)
	assert.Equal(t,
		"[2026-08-29T10:00:00Z] worklog.created | user_id=1 | card_id=5 | worklog_id=9 | hours=2.50",
		line)
	assert.NotContains(t, line, "list_id")
	assert.NotContains(t, line, "title")
}
