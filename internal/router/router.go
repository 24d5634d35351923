package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/driftboard/driftboard-go/internal/handler"
	"github.com/driftboard/driftboard-go/internal/metrics"
	"github.com/driftboard/driftboard-go/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Feed   *handler.FeedHandler
	Vote   *handler.VoteHandler
	Item   *handler.ItemHandler
	Stats  *handler.StatsHandler
	Health *handler.HealthHandler
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
func Setup(app *fiber.App, h *Handlers, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(metrics.Middleware())
	app.Use(middleware.NewCORS(corsOrigins))

	// Probes and metrics, outside the API group
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")

	// Feed routes
	api.Get("/feed", h.Feed.List, middleware.NewFeedRateLimiter().Handler())

	// Vote routes
	api.Post("/votes", h.Vote.Cast, middleware.NewVoteCastRateLimiter().Handler())
	api.Delete("/votes", h.Vote.Undo, middleware.NewVoteUndoRateLimiter().Handler())

	// Item lifecycle routes
	api.Post("/items", h.Item.Create, middleware.NewItemSubmitRateLimiter().Handler())
	api.Get("/items/:itemId", h.Item.Get)
	api.Post("/items/:itemId/hide", h.Item.Hide)

	// Stats routes
	api.Get("/stats", h.Stats.GetStats, middleware.NewStatsRateLimiter().Handler())
}
