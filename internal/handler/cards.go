package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelar/taskboard/internal/model"
	"github.com/avelar/taskboard/internal/queue"
	"github.com/avelar/taskboard/internal/repository"
)

// CardHandler serves card CRUD including the dense reorder operation.
type CardHandler struct {
	Cards *repository.CardRepo
	Owner *repository.OwnershipResolver
}

func NewCardHandler(cards *repository.CardRepo, o *repository.OwnershipResolver) *CardHandler {
	return &CardHandler{Cards: cards, Owner: o}
}

type cardCreateReq struct {
	Title  string `json:"title"`
	ListID uint64 `json:"list_id"`
}

func (r *cardCreateReq) validate() []fieldError {
	var errs []fieldError
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs = append(errs, fieldError{"title", "must not be empty"})
	} else if len(r.Title) > 100 {
		errs = append(errs, fieldError{"title", "must be at most 100 characters"})
	}
	if r.ListID == 0 {
		errs = append(errs, fieldError{"list_id", "is required"})
	}
	return errs
}

type cardUpdateReq struct {
	Title  *string `json:"title"`
	Status *string `json:"status"`
	ListID *uint64 `json:"list_id"`
	Order  *int    `json:"order"`
}

func (r *cardUpdateReq) validate() []fieldError {
	var errs []fieldError
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if *r.Title == "" {
			errs = append(errs, fieldError{"title", "must not be empty"})
		} else if len(*r.Title) > 100 {
			errs = append(errs, fieldError{"title", "must be at most 100 characters"})
		}
	}
	if r.Status != nil && strings.TrimSpace(*r.Status) == "" {
		errs = append(errs, fieldError{"status", "must not be empty"})
	}
	if r.ListID != nil && *r.ListID == 0 {
		errs = append(errs, fieldError{"list_id", "must be a positive id"})
	}
	if r.Order != nil && *r.Order < 0 {
		errs = append(errs, fieldError{"order", "must be zero or positive"})
	}
	return errs
}

type cardResp struct {
	ID        uint64    `json:"id"`
	ListID    uint64    `json:"list_id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func cardJSON(card *model.Card) cardResp {
	return cardResp{
		ID:        card.ID,
		ListID:    card.ListID,
		Title:     card.Title,
		Status:    card.Status,
		Order:     card.Position,
		CreatedAt: card.CreatedAt,
		UpdatedAt: card.UpdatedAt,
	}
}

func cardError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrCardNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "card not found"})
	case errors.Is(err, repository.ErrListNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "list not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "card operation failed"})
	}
}

// Create handles POST /cards. The target list's board must belong to the
// caller. New cards start as status "todo" at the end of the list.
func (h *CardHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req cardCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	if _, err := h.Owner.ResolveList(c.Request().Context(), req.ListID, uid); err != nil {
		return cardError(c, err)
	}
	card, err := h.Cards.Create(c.Request().Context(), req.ListID, req.Title)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create card failed"})
	}
	logResourceAccess(uid, "card", card.ID, "create")
	publishActivity(queue.ActivityEvent{
		Action: "card.created",
		UserID: uid,
		ListID: card.ListID,
		CardID: card.ID,
		Title:  card.Title,
	})
	return c.JSON(http.StatusCreated, cardJSON(card))
}

// List handles GET /cards, returning every card under the caller's boards.
// Optional status and list_id query parameters narrow the result.
func (h *CardHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var filter repository.CardFilter
	if s := strings.TrimSpace(c.QueryParam("status")); s != "" {
		filter.Status = &s
	}
	if raw := c.QueryParam("list_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid list_id"})
		}
		filter.ListID = &id
	}
	cards, err := h.Cards.ListByOwner(c.Request().Context(), uid, filter)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list cards failed"})
	}
	out := make([]cardResp, 0, len(cards))
	for _, card := range cards {
		out = append(out, cardJSON(card))
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /cards/:id. Ownership is resolved through the card's
// current chain; when the card moves to another list, the destination
// list's chain is resolved as well before anything is written. When an
// order index is supplied the card's list is renumbered densely.
func (h *CardHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req cardUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx := c.Request().Context()
	card, err := h.Owner.ResolveCard(ctx, id, uid)
	if err != nil {
		return cardError(c, err)
	}

	oldListID := card.ListID
	moved := req.ListID != nil && *req.ListID != oldListID
	if moved {
		if _, err := h.Owner.ResolveList(ctx, *req.ListID, uid); err != nil {
			return cardError(c, err)
		}
		card.ListID = *req.ListID
	}
	if req.Title != nil {
		card.Title = *req.Title
	}
	if req.Status != nil {
		card.Status = *req.Status
	}
	if err := h.Cards.Update(ctx, card); err != nil {
		return cardError(c, err)
	}

	// Both lists must stay densely numbered 0..n-1. A moved card lands at
	// the requested index, or at the end when none was given; the list it
	// left is compacted to close the gap.
	switch {
	case moved:
		idx := 1 << 30 // clamped to the list's tail
		if req.Order != nil {
			idx = *req.Order
		}
		if err := h.Cards.Reorder(ctx, card.ListID, card.ID, idx); err != nil {
			return cardError(c, err)
		}
		if err := h.Cards.Compact(ctx, oldListID); err != nil {
			return cardError(c, err)
		}
	case req.Order != nil:
		if err := h.Cards.Reorder(ctx, card.ListID, card.ID, *req.Order); err != nil {
			return cardError(c, err)
		}
	}

	card, err = h.Cards.GetByID(ctx, id)
	if err != nil {
		return cardError(c, err)
	}
	logResourceAccess(uid, "card", id, "update")
	publishActivity(queue.ActivityEvent{
		Action: "card.updated",
		UserID: uid,
		ListID: card.ListID,
		CardID: card.ID,
		Title:  card.Title,
	})
	return c.JSON(http.StatusOK, cardJSON(card))
}

// Delete handles DELETE /cards/:id, cascading the card's worklogs.
func (h *CardHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	card, err := h.Owner.ResolveCard(c.Request().Context(), id, uid)
	if err != nil {
		return cardError(c, err)
	}
	if err := h.Cards.Delete(c.Request().Context(), id); err != nil {
		return cardError(c, err)
	}
	logResourceAccess(uid, "card", id, "delete")
	publishActivity(queue.ActivityEvent{
		Action: "card.deleted",
		UserID: uid,
		ListID: card.ListID,
		CardID: card.ID,
		Title:  card.Title,
	})
	return c.JSON(http.StatusOK, echo.Map{"detail": "card deleted"})
}
