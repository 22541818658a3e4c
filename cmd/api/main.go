package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"threadsum/db"
	"threadsum/internal/config"
	"threadsum/internal/handler"
	"threadsum/internal/repository"
	"threadsum/internal/service"
	"threadsum/pkg/llm"
	"threadsum/pkg/neynar"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	slog.SetDefault(config.NewLogger(os.Stdout, cfg.LogLevel))

	ctx := context.Background()

	err = db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.Migrate(ctx, db.DB)
	if err != nil {
		log.Fatalf("error migrating DB: %v", err)
	}

	completer, err := llm.NewCompleter(ctx, cfg.LLM.Provider, cfg.LLM.APIKey, cfg.LLM.Model)
	if err != nil {
		log.Fatalf("error creating llm client: %v", err)
	}

	summaryRepo := repository.NewThreadSummaryRepository(db.DB)

	var opts []service.Option
	redisEnabled, err := db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	if redisEnabled {
		defer db.CloseRedis()
		opts = append(opts, service.WithLocker(db.NewRedisLocker(db.Redis, cfg.LockTTL)))
	}

	summaryService := service.NewThreadSummaryService(summaryRepo, neynar.NewClient(cfg.NeynarAPIKey), completer, opts...)
	summaryHandler := handler.NewThreadSummaryHandler(summaryService)
	healthHandler := handler.NewHealthHandler(summaryRepo)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("starting thread summary api", "port", cfg.Port, "llm_provider", cfg.LLM.Provider, "model", completer.ModelName(), "redis_lock", redisEnabled, "allowed_origins", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	v1 := r.Group("/v1")
	v1.GET("/thread_summary", summaryHandler.GetThreadSummary)

	r.GET("/health", healthHandler.GetHealth)

	err = r.Run(fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
