package model

import "time"

// Board is a top level container of lists. Every board belongs to
// exactly one user; ownership of lists and cards is always derived
// by walking up to the board's UserID.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owning user.
//  Title     – human readable board title.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Board struct {
	ID        uint64    // boards.id
	UserID    uint64    // boards.user_id
	Title     string    // boards.title
	CreatedAt time.Time // boards.created_at
	UpdatedAt time.Time // boards.updated_at
}
