package model

import "time"

// List is a column on a board containing an ordered set of cards.
//
// Fields:
//  ID        – primary key identifier.
//  BoardID   – board to which this list belongs.
//  Title     – human readable list title.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type List struct {
	ID        uint64    // lists.id
	BoardID   uint64    // lists.board_id
	Title     string    // lists.title
	CreatedAt time.Time // lists.created_at
	UpdatedAt time.Time // lists.updated_at
}
