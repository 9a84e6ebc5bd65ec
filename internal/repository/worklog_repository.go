package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/avelar/taskboard/internal/model"
)

// WorklogRepo provides persistence for worklogs.
type WorklogRepo struct {
	db *sql.DB
}

// NewWorklogRepo constructs a WorklogRepo with the given DB handle.
func NewWorklogRepo(db *sql.DB) *WorklogRepo {
	return &WorklogRepo{db: db}
}

const worklogCols = "id, card_id, user_id, date, hours, note, created_at, updated_at"

func scanWorklog(scan func(dest ...interface{}) error) (*model.Worklog, error) {
	var (
		w    model.Worklog
		note sql.NullString
	)
	if err := scan(&w.ID, &w.CardID, &w.UserID, &w.Date, &w.Hours, &note, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	if note.Valid {
		w.Note = &note.String
	}
	return &w, nil
}

// Create inserts a worklog and reads the record back.
func (r *WorklogRepo) Create(ctx context.Context, cardID, userID uint64, date time.Time, hours float64, note *string) (*model.Worklog, error) {
	var noteVal sql.NullString
	if note != nil {
		noteVal = sql.NullString{String: *note, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO worklogs (card_id, user_id, date, hours, note) VALUES (?, ?, ?, ?, ?)`,
		cardID, userID, date.Format("2006-01-02"), hours, noteVal)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID retrieves a worklog. Returns ErrWorklogNotFound when no row is
// found.
func (r *WorklogRepo) GetByID(ctx context.Context, id uint64) (*model.Worklog, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+worklogCols+` FROM worklogs WHERE id = ?`, id)
	w, err := scanWorklog(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrWorklogNotFound
		}
		return nil, err
	}
	return w, nil
}

// ListByCard returns all worklogs of a card, oldest date first.
func (r *WorklogRepo) ListByCard(ctx context.Context, cardID uint64) ([]*model.Worklog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+worklogCols+` FROM worklogs WHERE card_id = ? ORDER BY date, id`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorklogs(rows)
}

// ListByUserBetween returns the user's worklogs with from <= date <= to,
// across all of their cards. Used by the weekly report.
func (r *WorklogRepo) ListByUserBetween(ctx context.Context, userID uint64, from, to time.Time) ([]*model.Worklog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+worklogCols+` FROM worklogs WHERE user_id = ? AND date BETWEEN ? AND ? ORDER BY date, id`,
		userID, from.Format("2006-01-02"), to.Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectWorklogs(rows)
}

func collectWorklogs(rows *sql.Rows) ([]*model.Worklog, error) {
	var out []*model.Worklog
	for rows.Next() {
		w, err := scanWorklog(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes hours and note; only those two fields are mutable.
func (r *WorklogRepo) Update(ctx context.Context, id uint64, hours float64, note *string) error {
	var noteVal sql.NullString
	if note != nil {
		noteVal = sql.NullString{String: *note, Valid: true}
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE worklogs SET hours = ?, note = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		hours, noteVal, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWorklogNotFound
	}
	return nil
}

// Delete removes a worklog.
func (r *WorklogRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM worklogs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrWorklogNotFound
	}
	return nil
}
