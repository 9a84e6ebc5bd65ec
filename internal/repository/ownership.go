package repository

// ownership.go implements explicit parent-chain ownership resolution,
// independent of any single entity repository. Every mutation on a card,
// list or worklog goes through one of these functions first. The outcome
// is a three-way result expressed through sentinels: the entity on
// success, a not-found sentinel when the chain is broken, ErrForbidden
// when the chain resolves to a board owned by someone else.

import (
	"context"

	"github.com/avelar/taskboard/internal/model"
)

// OwnershipResolver walks card -> list -> board -> user.
type OwnershipResolver struct {
	Boards *BoardRepo
	Lists  *ListRepo
	Cards  *CardRepo
}

// NewOwnershipResolver constructs a resolver over the entity repositories.
func NewOwnershipResolver(boards *BoardRepo, lists *ListRepo, cards *CardRepo) *OwnershipResolver {
	return &OwnershipResolver{Boards: boards, Lists: lists, Cards: cards}
}

// ResolveBoard returns the board when it belongs to userID, ErrBoardNotFound
// when it does not exist and ErrForbidden when it is owned by someone else.
func (o *OwnershipResolver) ResolveBoard(ctx context.Context, boardID, userID uint64) (*model.Board, error) {
	b, err := o.Boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}

// ResolveList returns the list when its board belongs to userID. A missing
// list yields ErrListNotFound; a missing or foreign board yields
// ErrForbidden.
func (o *OwnershipResolver) ResolveList(ctx context.Context, listID, userID uint64) (*model.List, error) {
	l, err := o.Lists.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	b, err := o.Boards.GetByID(ctx, l.BoardID)
	if err != nil {
		if err == ErrBoardNotFound {
			// A list whose board vanished is unreachable for everyone.
			return nil, ErrForbidden
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return l, nil
}

// ResolveCard walks card -> list -> board and returns the card when the
// board belongs to userID. A missing card or list yields the respective
// not-found sentinel; a missing or foreign board yields ErrForbidden.
func (o *OwnershipResolver) ResolveCard(ctx context.Context, cardID, userID uint64) (*model.Card, error) {
	c, err := o.Cards.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	l, err := o.Lists.GetByID(ctx, c.ListID)
	if err != nil {
		return nil, err
	}
	b, err := o.Boards.GetByID(ctx, l.BoardID)
	if err != nil {
		if err == ErrBoardNotFound {
			return nil, ErrForbidden
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return c, nil
}
