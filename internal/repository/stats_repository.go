package repository

import (
	"context"
	"database/sql"
)

// SystemCounts aggregates entity totals for the metrics endpoint.
type SystemCounts struct {
	Users  int64
	Boards int64
	Lists  int64
	Cards  int64
}

// StatsRepo answers aggregate count queries.
type StatsRepo struct {
	db *sql.DB
}

// NewStatsRepo constructs a StatsRepo with the given DB handle.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// Counts returns system-wide entity totals.
func (r *StatsRepo) Counts(ctx context.Context) (SystemCounts, error) {
	var c SystemCounts
	err := r.db.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM users),
		   (SELECT COUNT(*) FROM boards),
		   (SELECT COUNT(*) FROM lists),
		   (SELECT COUNT(*) FROM cards)`).
		Scan(&c.Users, &c.Boards, &c.Lists, &c.Cards)
	return c, err
}

// BoardCountByUser returns how many boards the user owns.
func (r *StatsRepo) BoardCountByUser(ctx context.Context, userID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM boards WHERE user_id = ?`, userID).Scan(&n)
	return n, err
}

// Ping verifies database connectivity for the health probe.
func (r *StatsRepo) Ping(ctx context.Context) error {
	var one int
	return r.db.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
}
