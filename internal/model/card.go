package model

import "time"

// Card is a task inside a list. Position holds the card's index
// within its list; after any reorder the positions of a list's
// cards form a dense 0..n-1 sequence. Status is a free-form string
// ("todo" on creation); no transition graph is enforced.
//
// Fields:
//  ID        – primary key identifier.
//  ListID    – list to which this card belongs.
//  Title     – card title.
//  Status    – workflow status string.
//  Position  – zero-based index inside the list (cards.position).
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Card struct {
	ID        uint64    // cards.id
	ListID    uint64    // cards.list_id
	Title     string    // cards.title
	Status    string    // cards.status
	Position  int       // cards.position
	CreatedAt time.Time // cards.created_at
	UpdatedAt time.Time // cards.updated_at
}
