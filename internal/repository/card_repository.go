package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/taskboard/internal/model"
)

// CardRepo provides persistence for cards, including the dense reorder
// operation inside a list.
type CardRepo struct {
	db *sql.DB
}

// NewCardRepo constructs a CardRepo with the given DB handle.
func NewCardRepo(db *sql.DB) *CardRepo {
	return &CardRepo{db: db}
}

const cardCols = "id, list_id, title, status, position, created_at, updated_at"

// CardFilter narrows ListByOwner. Nil fields mean "no filter".
type CardFilter struct {
	Status *string
	ListID *uint64
}

// Create inserts a card with status "todo" appended at the end of the
// list, keeping positions dense.
func (r *CardRepo) Create(ctx context.Context, listID uint64, title string) (*model.Card, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO cards (list_id, title, status, position)
		 SELECT ?, ?, 'todo', COUNT(*) FROM cards WHERE list_id = ?`,
		listID, title, listID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID retrieves a card by its ID. Returns ErrCardNotFound when no row
// is found.
func (r *CardRepo) GetByID(ctx context.Context, id uint64) (*model.Card, error) {
	var c model.Card
	err := r.db.QueryRowContext(ctx,
		`SELECT `+cardCols+` FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.ListID, &c.Title, &c.Status, &c.Position, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByOwner returns every card under boards owned by the user, walking
// card -> list -> board. Optional status/list filters narrow the result.
func (r *CardRepo) ListByOwner(ctx context.Context, userID uint64, f CardFilter) ([]*model.Card, error) {
	q := `SELECT c.id, c.list_id, c.title, c.status, c.position, c.created_at, c.updated_at
	      FROM cards c
	      JOIN lists l ON l.id = c.list_id
	      JOIN boards b ON b.id = l.board_id
	      WHERE b.user_id = ?`
	args := []interface{}{userID}
	if f.Status != nil {
		q += ` AND c.status = ?`
		args = append(args, *f.Status)
	}
	if f.ListID != nil {
		q += ` AND c.list_id = ?`
		args = append(args, *f.ListID)
	}
	q += ` ORDER BY c.list_id, c.position, c.id`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Card
	for rows.Next() {
		c := new(model.Card)
		if err := rows.Scan(&c.ID, &c.ListID, &c.Title, &c.Status, &c.Position, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the card's mutable fields (title, status, list).
func (r *CardRepo) Update(ctx context.Context, c *model.Card) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE cards SET title = ?, status = ?, list_id = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		c.Title, c.Status, c.ListID, c.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCardNotFound
	}
	return nil
}

// Reorder moves a card to the requested index within its list and
// renumbers every card in that list to a dense 0..n-1 sequence. The whole
// read-renumber-write cycle runs in one transaction with the list's rows
// locked, so two concurrent reorders on the same list serialize instead of
// clobbering each other.
func (r *CardRepo) Reorder(ctx context.Context, listID, cardID uint64, newIndex int) (err error) {
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

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM cards WHERE list_id = ? ORDER BY position, id FOR UPDATE`, listID)
	if err != nil {
		return err
	}
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return err
	}

	reordered, ok := renumber(ids, cardID, newIndex)
	if !ok {
		err = ErrCardNotFound
		return err
	}
	for pos, id := range reordered {
		if _, err = tx.ExecContext(ctx,
			`UPDATE cards SET position = ? WHERE id = ?`, pos, id); err != nil {
			return err
		}
	}
	return nil
}

// Compact renumbers a list's cards to a dense 0..n-1 sequence, preserving
// their current order. Called for the source list after a card moves out
// of it, which otherwise leaves a gap.
func (r *CardRepo) Compact(ctx context.Context, listID uint64) (err error) {
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

	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM cards WHERE list_id = ? ORDER BY position, id FOR UPDATE`, listID)
	if err != nil {
		return err
	}
	var ids []uint64
	for rows.Next() {
		var id uint64
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return err
	}

	for pos, id := range ids {
		if _, err = tx.ExecContext(ctx,
			`UPDATE cards SET position = ? WHERE id = ?`, pos, id); err != nil {
			return err
		}
	}
	return nil
}

// renumber removes cardID from the ordered id sequence, reinserts it at
// newIndex (clamped to the valid range) and returns the new order. The
// relative order of the remaining cards is preserved. ok is false when
// cardID is not in ids.
func renumber(ids []uint64, cardID uint64, newIndex int) (out []uint64, ok bool) {
	rest := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == cardID {
			ok = true
			continue
		}
		rest = append(rest, id)
	}
	if !ok {
		return nil, false
	}
	if newIndex < 0 {
		newIndex = 0
	}
	if newIndex > len(rest) {
		newIndex = len(rest)
	}
	out = make([]uint64, 0, len(ids))
	out = append(out, rest[:newIndex]...)
	out = append(out, cardID)
	out = append(out, rest[newIndex:]...)
	return out, true
}

// Delete removes a card together with its worklogs inside a transaction.
func (r *CardRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if _, err = tx.ExecContext(ctx, `DELETE FROM worklogs WHERE card_id = ?`, id); err != nil {
		return err
	}
	var res sql.Result
	if res, err = tx.ExecContext(ctx, `DELETE FROM cards WHERE id = ?`, id); err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		err = ErrCardNotFound
		return err
	}
	return nil
}
