package main // Entry point package

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/avelar/taskboard/internal/config"
	"github.com/avelar/taskboard/internal/database"
	"github.com/avelar/taskboard/internal/handler"
	"github.com/avelar/taskboard/internal/middleware"
	"github.com/avelar/taskboard/internal/queue"
	"github.com/avelar/taskboard/internal/repository"
	"github.com/avelar/taskboard/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connect failed: %v", err)
	}

	users := repository.NewUserRepo(db)
	boards := repository.NewBoardRepo(db)
	lists := repository.NewListRepo(db)
	cards := repository.NewCardRepo(db)
	worklogs := repository.NewWorklogRepo(db)
	stats := repository.NewStatsRepo(db)
	owner := repository.NewOwnershipResolver(boards, lists, cards)

	h := router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users, boards),
		Boards:   handler.NewBoardHandler(boards, owner),
		Lists:    handler.NewListHandler(lists, owner),
		Cards:    handler.NewCardHandler(cards, owner),
		Worklogs: handler.NewWorklogHandler(worklogs, owner),
		Reports:  handler.NewReportHandler(worklogs),
		Health:   handler.NewHealthHandler(cfg.Env, stats),
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{AllowOrigins: cfg.CORSOrigins}))

	stop := make(chan struct{})
	defer close(stop)
	e.Use(middleware.NewSlidingWindow(config.LoadRateLimitConfig(), stop))

	// Redis-backed response cache; nil client disables it gracefully.
	var cache echo.MiddlewareFunc
	if rdb := config.NewRedisClient(); rdb != nil {
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	} else {
		log.Println("redis unavailable; response cache disabled")
	}

	// Background consumer turns broker events into logs/activity.log lines.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	router.Register(e, cfg, users, h, cache)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
