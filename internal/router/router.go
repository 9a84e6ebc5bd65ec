package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework used for routing

	"github.com/avelar/taskboard/internal/config"
	"github.com/avelar/taskboard/internal/handler"
	"github.com/avelar/taskboard/internal/middleware"
	"github.com/avelar/taskboard/internal/repository"
)

// Handlers bundles every handler the router mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Boards   *handler.BoardHandler
	Lists    *handler.ListHandler
	Cards    *handler.CardHandler
	Worklogs *handler.WorklogHandler
	Reports  *handler.ReportHandler
	Health   *handler.HealthHandler
}

// Register mounts all routes. Unauthenticated surface: health liveness and
// readiness plus the register/login/refresh token flows. Everything else
// sits behind the JWT access-token middleware; cache (when non-nil) wraps
// the protected group so GET responses are served from Redis per user.
func Register(e *echo.Echo, cfg config.Config, users *repository.UserRepo, h Handlers, cache echo.MiddlewareFunc) {
	jwt := middleware.JWTAuth(cfg.JWTSecret, users)

	// Public health endpoints for load balancers and probes.
	e.GET("/health", h.Health.Live)
	e.GET("/health/db", h.Health.DB)
	// Metrics are aggregate counts and require authentication.
	e.GET("/health/metrics", h.Health.Metrics, jwt)

	// Token flows do not require an existing session.
	auth := e.Group("/auth")
	auth.POST("/register", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	// Profile and logout need a valid access token. Logout is stateless:
	// the handler only acknowledges; no token store is consulted.
	auth.GET("/me", h.Auth.Me, jwt)
	auth.POST("/logout", h.Auth.Logout, jwt)

	// All resource routes require authentication.
	api := e.Group("", jwt)
	if cache != nil {
		api.Use(cache)
	}

	api.POST("/boards", h.Boards.Create)
	api.GET("/boards", h.Boards.List)
	api.GET("/boards/:id", h.Boards.Get)
	api.PUT("/boards/:id", h.Boards.Update)
	api.DELETE("/boards/:id", h.Boards.Delete)

	api.POST("/lists", h.Lists.Create)
	api.GET("/lists", h.Lists.List)
	api.PUT("/lists/:id", h.Lists.Update)
	api.DELETE("/lists/:id", h.Lists.Delete)

	api.POST("/cards", h.Cards.Create)
	api.GET("/cards", h.Cards.List)
	api.PUT("/cards/:id", h.Cards.Update)
	api.DELETE("/cards/:id", h.Cards.Delete)

	api.POST("/cards/:id/worklogs", h.Worklogs.Create)
	api.GET("/cards/:id/worklogs", h.Worklogs.ListByCard)
	api.PUT("/worklogs/:id", h.Worklogs.Update)
	api.DELETE("/worklogs/:id", h.Worklogs.Delete)

	api.GET("/reports/weekly", h.Reports.Weekly)
}
