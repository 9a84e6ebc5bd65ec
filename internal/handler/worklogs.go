package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelar/taskboard/internal/model"
	"github.com/avelar/taskboard/internal/queue"
	"github.com/avelar/taskboard/internal/repository"
)

const dateLayout = "2006-01-02"

// WorklogHandler serves worklog CRUD nested under cards.
type WorklogHandler struct {
	Worklogs *repository.WorklogRepo
	Owner    *repository.OwnershipResolver
}

func NewWorklogHandler(w *repository.WorklogRepo, o *repository.OwnershipResolver) *WorklogHandler {
	return &WorklogHandler{Worklogs: w, Owner: o}
}

type worklogCreateReq struct {
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
	Note  *string `json:"note"`
}

// validate parses and checks all fields against a reference time, so the
// "not in the future" rule is deterministic in tests. The returned date is
// only meaningful when no errors are reported.
func (r *worklogCreateReq) validate(now time.Time) (time.Time, []fieldError) {
	var errs []fieldError
	date, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
	if err != nil {
		errs = append(errs, fieldError{"date", "must be a date in YYYY-MM-DD format"})
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if date.After(today) {
			errs = append(errs, fieldError{"date", "cannot be in the future"})
		}
	}
	if r.Hours <= 0 {
		errs = append(errs, fieldError{"hours", "must be greater than 0"})
	}
	if r.Note != nil && len(*r.Note) > 200 {
		errs = append(errs, fieldError{"note", "must be at most 200 characters"})
	}
	return date, errs
}

type worklogUpdateReq struct {
	Hours *float64 `json:"hours"`
	Note  *string  `json:"note"`
}

func (r *worklogUpdateReq) validate() []fieldError {
	var errs []fieldError
	if r.Hours != nil && *r.Hours <= 0 {
		errs = append(errs, fieldError{"hours", "must be greater than 0"})
	}
	if r.Note != nil && len(*r.Note) > 200 {
		errs = append(errs, fieldError{"note", "must be at most 200 characters"})
	}
	return errs
}

type worklogResp struct {
	ID        uint64    `json:"id"`
	CardID    uint64    `json:"card_id"`
	UserID    uint64    `json:"user_id"`
	Date      string    `json:"date"`
	Hours     float64   `json:"hours"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func worklogJSON(w *model.Worklog) worklogResp {
	return worklogResp{
		ID:        w.ID,
		CardID:    w.CardID,
		UserID:    w.UserID,
		Date:      w.Date.Format(dateLayout),
		Hours:     w.Hours,
		Note:      w.Note,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

func worklogError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrWorklogNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "worklog not found"})
	case errors.Is(err, repository.ErrCardNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "card not found"})
	case errors.Is(err, repository.ErrListNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "list not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "worklog operation failed"})
	}
}

// Create handles POST /cards/:id/worklogs. Validation rejects future
// dates, non-positive hours and oversized notes before anything persists.
func (h *WorklogHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req worklogCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	date, errs := req.validate(time.Now().UTC())
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}
	if _, err := h.Owner.ResolveCard(c.Request().Context(), cardID, uid); err != nil {
		return worklogError(c, err)
	}
	w, err := h.Worklogs.Create(c.Request().Context(), cardID, uid, date, req.Hours, req.Note)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create worklog failed"})
	}
	logResourceAccess(uid, "worklog", w.ID, "create")
	publishActivity(queue.ActivityEvent{
		Action:    "worklog.created",
		UserID:    uid,
		CardID:    cardID,
		WorklogID: w.ID,
		Hours:     w.Hours,
	})
	return c.JSON(http.StatusCreated, worklogJSON(w))
}

// ListByCard handles GET /cards/:id/worklogs.
func (h *WorklogHandler) ListByCard(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	cardID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Owner.ResolveCard(c.Request().Context(), cardID, uid); err != nil {
		return worklogError(c, err)
	}
	logs, err := h.Worklogs.ListByCard(c.Request().Context(), cardID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list worklogs failed"})
	}
	out := make([]worklogResp, 0, len(logs))
	for _, w := range logs {
		out = append(out, worklogJSON(w))
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /worklogs/:id. Only hours and note are mutable.
func (h *WorklogHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req worklogUpdateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx := c.Request().Context()
	w, err := h.Worklogs.GetByID(ctx, id)
	if err != nil {
		return worklogError(c, err)
	}
	if _, err := h.Owner.ResolveCard(ctx, w.CardID, uid); err != nil {
		return worklogError(c, err)
	}

	hours := w.Hours
	if req.Hours != nil {
		hours = *req.Hours
	}
	note := w.Note
	if req.Note != nil {
		note = req.Note
	}
	if err := h.Worklogs.Update(ctx, id, hours, note); err != nil {
		return worklogError(c, err)
	}
	w, err = h.Worklogs.GetByID(ctx, id)
	if err != nil {
		return worklogError(c, err)
	}
	logResourceAccess(uid, "worklog", id, "update")
	publishActivity(queue.ActivityEvent{
		Action:    "worklog.updated",
		UserID:    uid,
		CardID:    w.CardID,
		WorklogID: w.ID,
		Hours:     w.Hours,
	})
	return c.JSON(http.StatusOK, worklogJSON(w))
}

// Delete handles DELETE /worklogs/:id.
func (h *WorklogHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx := c.Request().Context()
	w, err := h.Worklogs.GetByID(ctx, id)
	if err != nil {
		return worklogError(c, err)
	}
	if _, err := h.Owner.ResolveCard(ctx, w.CardID, uid); err != nil {
		return worklogError(c, err)
	}
	if err := h.Worklogs.Delete(ctx, id); err != nil {
		return worklogError(c, err)
	}
	logResourceAccess(uid, "worklog", id, "delete")
	publishActivity(queue.ActivityEvent{
		Action:    "worklog.deleted",
		UserID:    uid,
		CardID:    w.CardID,
		WorklogID: w.ID,
	})
	return c.JSON(http.StatusOK, echo.Map{"detail": "worklog deleted"})
}
