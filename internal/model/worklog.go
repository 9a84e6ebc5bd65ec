package model

import "time"

// Worklog records hours spent on a card by a user on a given date.
// Date carries only the calendar day (DATE column); Hours must be
// positive and Note is optional, at most 200 characters.
//
// Fields:
//  ID        – primary key identifier.
//  CardID    – card the work was logged against.
//  UserID    – user who logged the work.
//  Date      – calendar day of the work, never in the future.
//  Hours     – hours worked, > 0.
//  Note      – optional free text, max 200 chars (nullable).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Worklog struct {
	ID        uint64    // worklogs.id
	CardID    uint64    // worklogs.card_id
	UserID    uint64    // worklogs.user_id
	Date      time.Time // worklogs.date
	Hours     float64   // worklogs.hours
	Note      *string   // worklogs.note (nullable)
	CreatedAt time.Time // worklogs.created_at
	UpdatedAt time.Time // worklogs.updated_at
}
