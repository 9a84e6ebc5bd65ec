package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelar/taskboard/internal/model"
	"github.com/avelar/taskboard/internal/repository"
)

// ListHandler serves list CRUD scoped by board ownership.
type ListHandler struct {
	Lists *repository.ListRepo
	Owner *repository.OwnershipResolver
}

func NewListHandler(l *repository.ListRepo, o *repository.OwnershipResolver) *ListHandler {
	return &ListHandler{Lists: l, Owner: o}
}

type listCreateReq struct {
	Title   string `json:"title"`
	BoardID uint64 `json:"board_id"`
}

func (r *listCreateReq) validate() []fieldError {
	var errs []fieldError
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs = append(errs, fieldError{"title", "must not be empty"})
	} else if len(r.Title) > 100 {
		errs = append(errs, fieldError{"title", "must be at most 100 characters"})
	}
	if r.BoardID == 0 {
		errs = append(errs, fieldError{"board_id", "is required"})
	}
	return errs
}

type listResp struct {
	ID        uint64    `json:"id"`
	BoardID   uint64    `json:"board_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func listJSON(l *model.List) listResp {
	return listResp{ID: l.ID, BoardID: l.BoardID, Title: l.Title, CreatedAt: l.CreatedAt, UpdatedAt: l.UpdatedAt}
}

func listError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrListNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "list not found"})
	case errors.Is(err, repository.ErrBoardNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "board not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list operation failed"})
	}
}

// Create handles POST /lists. The target board must belong to the caller.
func (h *ListHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req listCreateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	if _, err := h.Owner.ResolveBoard(c.Request().Context(), req.BoardID, uid); err != nil {
		return listError(c, err)
	}
	l, err := h.Lists.Create(c.Request().Context(), req.BoardID, req.Title)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create list failed"})
	}
	logResourceAccess(uid, "list", l.ID, "create")
	return c.JSON(http.StatusCreated, listJSON(l))
}

// List handles GET /lists?board_id= and returns the board's lists.
func (h *ListHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	boardID, err := strconv.ParseUint(c.QueryParam("board_id"), 10, 64)
	if err != nil || boardID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "board_id query parameter required"})
	}
	if _, err := h.Owner.ResolveBoard(c.Request().Context(), boardID, uid); err != nil {
		return listError(c, err)
	}
	lists, err := h.Lists.ListByBoard(c.Request().Context(), boardID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list lists failed"})
	}
	out := make([]listResp, 0, len(lists))
	for _, l := range lists {
		out = append(out, listJSON(l))
	}
	return c.JSON(http.StatusOK, out)
}

// Update handles PUT /lists/:id.
func (h *ListHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req struct {
		Title string `json:"title"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return validationFailed(c, []fieldError{{"title", "must not be empty"}})
	}
	if _, err := h.Owner.ResolveList(c.Request().Context(), id, uid); err != nil {
		return listError(c, err)
	}
	if err := h.Lists.UpdateTitle(c.Request().Context(), id, req.Title); err != nil {
		return listError(c, err)
	}
	l, err := h.Lists.GetByID(c.Request().Context(), id)
	if err != nil {
		return listError(c, err)
	}
	logResourceAccess(uid, "list", id, "update")
	return c.JSON(http.StatusOK, listJSON(l))
}

// Delete handles DELETE /lists/:id, cascading cards and worklogs.
func (h *ListHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Owner.ResolveList(c.Request().Context(), id, uid); err != nil {
		return listError(c, err)
	}
	if err := h.Lists.Delete(c.Request().Context(), id); err != nil {
		return listError(c, err)
	}
	logResourceAccess(uid, "list", id, "delete")
	return c.JSON(http.StatusOK, echo.Map{"detail": "list deleted"})
}
