// Package queue defines message payloads exchanged over the message broker.
package queue

// ActivityEvent is published whenever a card or worklog is mutated. It
// carries enough information for downstream consumers to log or trigger
// analytics without querying the primary database. Optional ids are zero
// when they do not apply to the action.
type ActivityEvent struct {
	Action     string  `json:"action"` // card.created | card.updated | card.deleted | worklog.created | worklog.updated | worklog.deleted
	UserID     uint64  `json:"user_id"`
	ListID     uint64  `json:"list_id,omitempty"`
	CardID     uint64  `json:"card_id,omitempty"`
	WorklogID  uint64  `json:"worklog_id,omitempty"`
	Title      string  `json:"title,omitempty"`
	Hours      float64 `json:"hours,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
