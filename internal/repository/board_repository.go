package repository // repository holds data access logic for domain entities

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/taskboard/internal/model"
)

// BoardRepo provides methods to create and retrieve boards. It embeds a
// database handle to perform queries and commands.
type BoardRepo struct {
	db *sql.DB
}

// NewBoardRepo constructs a BoardRepo with the given DB handle.
func NewBoardRepo(db *sql.DB) *BoardRepo {
	return &BoardRepo{db: db}
}

const boardCols = "id, user_id, title, created_at, updated_at"

func scanBoard(row *sql.Row) (*model.Board, error) {
	var b model.Board
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBoardNotFound
		}
		return nil, err
	}
	return &b, nil
}

// Create inserts a board for the given user and reads the record back so
// the timestamp fields are populated.
func (r *BoardRepo) Create(ctx context.Context, userID uint64, title string) (*model.Board, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO boards (user_id, title) VALUES (?, ?)`, userID, title)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID retrieves a board regardless of owner. Ownership is enforced by
// the resolver, not here.
func (r *BoardRepo) GetByID(ctx context.Context, id uint64) (*model.Board, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+boardCols+` FROM boards WHERE id = ?`, id)
	return scanBoard(row)
}

// ListByOwner returns all boards belonging to a user, oldest first.
func (r *BoardRepo) ListByOwner(ctx context.Context, userID uint64) ([]*model.Board, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+boardCols+` FROM boards WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Board
	for rows.Next() {
		b := new(model.Board)
		if err := rows.Scan(&b.ID, &b.UserID, &b.Title, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateTitle renames a board. The caller must have resolved ownership
// first; ErrBoardNotFound is returned when the row is gone.
func (r *BoardRepo) UpdateTitle(ctx context.Context, id uint64, title string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE boards SET title = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, title, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrBoardNotFound
	}
	return nil
}

// Delete removes a board and all dependent records (lists, cards and
// worklogs) inside a transaction to maintain integrity.
func (r *BoardRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	// Delete worklogs for cards in lists of this board
	if _, err = tx.ExecContext(ctx,
		`DELETE w FROM worklogs w
		 JOIN cards c ON c.id = w.card_id
		 JOIN lists l ON l.id = c.list_id
		 WHERE l.board_id = ?`, id); err != nil {
		return err
	}
	// Delete cards in lists of this board
	if _, err = tx.ExecContext(ctx,
		`DELETE c FROM cards c
		 JOIN lists l ON l.id = c.list_id
		 WHERE l.board_id = ?`, id); err != nil {
		return err
	}
	// Delete the board's lists
	if _, err = tx.ExecContext(ctx, `DELETE FROM lists WHERE board_id = ?`, id); err != nil {
		return err
	}
	// Finally delete the board itself
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM boards WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrBoardNotFound
		return err
	}
	return nil
}
