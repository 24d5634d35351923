package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/driftboard/driftboard-go/internal/config"
	"github.com/driftboard/driftboard-go/internal/db"
	"github.com/driftboard/driftboard-go/internal/handler"
	"github.com/driftboard/driftboard-go/internal/metrics"
	"github.com/driftboard/driftboard-go/internal/middleware"
	"github.com/driftboard/driftboard-go/internal/repository"
	"github.com/driftboard/driftboard-go/internal/router"
	"github.com/driftboard/driftboard-go/internal/service"
	"github.com/driftboard/driftboard-go/internal/voters"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg := config.Load()

	middleware.InitLogger(cfg.LogLevel, "driftboard-api")

	overrides, err := voters.ParseOverrides(cfg.WeightOverrides)
	if err != nil {
		log.Fatalf("invalid VOTER_WEIGHT_OVERRIDES: %v", err)
	}
	weights := voters.New(overrides)

	ctx := context.Background()

	var (
		pool       *pgxpool.Pool
		feedStore  service.FeedStore
		voteLedger service.VoteLedger
		itemStore  service.ItemStore
	)

	if cfg.DatabaseURL == "" || cfg.DatabaseURL == "memory" {
		// Local development mode: everything in process, nothing durable.
		log.Println("no database configured, using in-memory store")
		mem := repository.NewMemStore(weights, cfg.DailyVoteQuota)
		feedStore, voteLedger, itemStore = mem, mem, mem
	} else {
		pool, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Fatalf("failed to apply schema: %v", err)
		}

		feedStore = repository.NewFeedRepo(pool)
		voteLedger = repository.NewVoteRepo(pool, weights, cfg.DailyVoteQuota)
		itemStore = repository.NewItemRepo(pool)
	}

	metrics.Init(pool)

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	feedSvc := service.NewFeedService(feedStore, cache)
	voteSvc := service.NewVoteService(voteLedger, cache)
	itemSvc := service.NewItemService(itemStore, cache)

	app := fiber.New(fiber.Config{
		AppName:      "Driftboard API",
		ServerHeader: "Driftboard",
	})

	router.Setup(app, &router.Handlers{
		Feed:   handler.NewFeedHandler(feedSvc),
		Vote:   handler.NewVoteHandler(voteSvc),
		Item:   handler.NewItemHandler(itemSvc),
		Stats:  handler.NewStatsHandler(itemSvc),
		Health: handler.NewHealthHandler(pool, cache.Client()),
	}, cfg.CORSOrigins)

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
