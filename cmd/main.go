package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/recover"

	"tmdb-movie-explorer/internal/cache"
	"tmdb-movie-explorer/internal/config"
	"tmdb-movie-explorer/internal/database"
	"tmdb-movie-explorer/internal/handler"
	"tmdb-movie-explorer/internal/service"
	"tmdb-movie-explorer/internal/session"
	"tmdb-movie-explorer/internal/tmdb"
)

func main() {
	// Structured logging
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if cfg.TMDB.APIKey == "" {
		slog.Warn("no TMDB API key configured, every upstream call will fail until TMDB_V3_KEY is set")
	}

	// Connect to Redis; fall back to the in-process cache if unavailable
	rdb, err := database.NewRedis(cfg.Redis)
	if err != nil {
		slog.Warn("Redis unavailable, using in-process response cache", "error", err)
	}
	responseCache := cache.New(rdb)

	// Initialize TMDB client
	tmdbClient := tmdb.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL)

	// Initialize layers
	sessions := session.NewStore(cfg.Session.IdleTTL)
	svc := service.NewBrowseService(tmdbClient, responseCache, cfg.Cache, cfg.Browse.PageSize())
	h := handler.NewMovieHandler(svc, sessions)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Movie Explorer",
		ServerHeader: "Movie-Explorer",
		ErrorHandler: func(c fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("unhandled error", "error", err, "status", code)
			return c.Status(code).JSON(handler.ErrorResponse{Error: err.Error()})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// API routes
	api := app.Group("/api/v1", h.WithSession)
	api.Get("/health", h.Health)
	api.Get("/movies", h.BrowseMovies)
	api.Get("/movies/:id", h.GetMovieDetail)
	api.Get("/movies/:id/providers", h.GetWatchProviders)
	api.Get("/genres", h.GetGenres)
	api.Get("/regions", h.GetRegions)
	api.Get("/favorites", h.ListFavorites)
	api.Put("/favorites/:id", h.AddFavorite)
	api.Delete("/favorites/:id", h.RemoveFavorite)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		slog.Info("shutting down movie explorer...")
		_ = app.Shutdown()
	}()

	// Start server
	addr := ":" + cfg.Port
	slog.Info("starting movie explorer", "addr", addr, "grid", cfg.Browse.PageSize())
	if err := app.Listen(addr); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
