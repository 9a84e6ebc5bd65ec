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

// BoardHandler serves board CRUD for the authenticated user.
type BoardHandler struct {
	Boards *repository.BoardRepo
	Owner  *repository.OwnershipResolver
}

func NewBoardHandler(b *repository.BoardRepo, o *repository.OwnershipResolver) *BoardHandler {
	return &BoardHandler{Boards: b, Owner: o}
}

type boardReq struct {
	Title string `json:"title"`
}

func (r *boardReq) validate() []fieldError {
	var errs []fieldError
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs = append(errs, fieldError{"title", "must not be empty"})
	} else if len(r.Title) > 100 {
		errs = append(errs, fieldError{"title", "must be at most 100 characters"})
	}
	return errs
}

type boardResp struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func boardJSON(b *model.Board) boardResp {
	return boardResp{ID: b.ID, UserID: b.UserID, Title: b.Title, CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt}
}

// boardError maps resolver sentinels to HTTP responses.
func boardError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrBoardNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "board not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "board operation failed"})
	}
}

// Create handles POST /boards.
func (h *BoardHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req boardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	b, err := h.Boards.Create(c.Request().Context(), uid, req.Title)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create board failed"})
	}
	logResourceAccess(uid, "board", b.ID, "create")
	return c.JSON(http.StatusCreated, boardJSON(b))
}

// List handles GET /boards.
func (h *BoardHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	boards, err := h.Boards.ListByOwner(c.Request().Context(), uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list boards failed"})
	}
	out := make([]boardResp, 0, len(boards))
	for _, b := range boards {
		out = append(out, boardJSON(b))
	}
	return c.JSON(http.StatusOK, out)
}

// Get handles GET /boards/:id.
func (h *BoardHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	b, err := h.Owner.ResolveBoard(c.Request().Context(), id, uid)
	if err != nil {
		return boardError(c, err)
	}
	return c.JSON(http.StatusOK, boardJSON(b))
}

// Update handles PUT /boards/:id.
func (h *BoardHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req boardReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if errs := req.validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}
	if _, err := h.Owner.ResolveBoard(c.Request().Context(), id, uid); err != nil {
		return boardError(c, err)
	}
	if err := h.Boards.UpdateTitle(c.Request().Context(), id, req.Title); err != nil {
		return boardError(c, err)
	}
	b, err := h.Boards.GetByID(c.Request().Context(), id)
	if err != nil {
		return boardError(c, err)
	}
	logResourceAccess(uid, "board", id, "update")
	return c.JSON(http.StatusOK, boardJSON(b))
}

// Delete handles DELETE /boards/:id, cascading lists, cards and worklogs.
func (h *BoardHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if _, err := h.Owner.ResolveBoard(c.Request().Context(), id, uid); err != nil {
		return boardError(c, err)
	}
	if err := h.Boards.Delete(c.Request().Context(), id); err != nil {
		return boardError(c, err)
	}
	logResourceAccess(uid, "board", id, "delete")
	return c.JSON(http.StatusOK, echo.Map{"detail": "board deleted"})
}
