package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/avelar/taskboard/internal/repository"
)

// HealthHandler exposes liveness, a database readiness probe and a small
// authenticated metrics endpoint.
type HealthHandler struct {
	Env   string
	Stats *repository.StatsRepo
}

func NewHealthHandler(env string, s *repository.StatsRepo) *HealthHandler {
	return &HealthHandler{Env: env, Stats: s}
}

// Live handles GET /health. Public; used by load balancers.
func (h *HealthHandler) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "healthy",
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
		"environment": h.Env,
	})
}

// DB handles GET /health/db. Public; answers 503 when the database does
// not respond to a trivial query.
func (h *HealthHandler) DB(c echo.Context) error {
	if err := h.Stats.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{
			"error": fmt.Sprintf("database unhealthy: %v", err),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Metrics handles GET /health/metrics. Requires a bearer token and
// reports system totals plus the caller's own board count.
func (h *HealthHandler) Metrics(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	counts, err := h.Stats.Counts(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load metrics failed"})
	}
	own, err := h.Stats.BoardCountByUser(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load metrics failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"system": echo.Map{
			"total_users":  counts.Users,
			"total_boards": counts.Boards,
			"total_lists":  counts.Lists,
			"total_cards":  counts.Cards,
		},
		"user": echo.Map{
			"id":           uid,
			"boards_count": own,
		},
	})
}
