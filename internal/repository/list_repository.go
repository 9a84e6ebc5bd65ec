package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/taskboard/internal/model"
)

// ListRepo provides methods to create and retrieve lists (board columns).
type ListRepo struct {
	db *sql.DB
}

// NewListRepo constructs a ListRepo with the given DB handle.
func NewListRepo(db *sql.DB) *ListRepo {
	return &ListRepo{db: db}
}

const listCols = "id, board_id, title, created_at, updated_at"

// Create inserts a list into a board and reads the record back.
func (r *ListRepo) Create(ctx context.Context, boardID uint64, title string) (*model.List, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO lists (board_id, title) VALUES (?, ?)`, boardID, title)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID retrieves a list by its ID. It returns ErrListNotFound when no
// row is found.
func (r *ListRepo) GetByID(ctx context.Context, id uint64) (*model.List, error) {
	var l model.List
	err := r.db.QueryRowContext(ctx,
		`SELECT `+listCols+` FROM lists WHERE id = ?`, id).
		Scan(&l.ID, &l.BoardID, &l.Title, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrListNotFound
		}
		return nil, err
	}
	return &l, nil
}

// ListByBoard returns all lists of a board, oldest first.
func (r *ListRepo) ListByBoard(ctx context.Context, boardID uint64) ([]*model.List, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+listCols+` FROM lists WHERE board_id = ? ORDER BY id`, boardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.List
	for rows.Next() {
		l := new(model.List)
		if err := rows.Scan(&l.ID, &l.BoardID, &l.Title, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTitle renames a list. Returns ErrListNotFound when the row is gone.
func (r *ListRepo) UpdateTitle(ctx context.Context, id uint64, title string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE lists SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, title, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrListNotFound
	}
	return nil
}

// Delete removes a list together with its cards and their worklogs inside
// a transaction.
func (r *ListRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()
	if _, err = tx.ExecContext(ctx,
		`DELETE w FROM worklogs w
		 JOIN cards c ON c.id = w.card_id
		 WHERE c.list_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM cards WHERE list_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrListNotFound
		return err
	}
	return nil
}
