package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shocktheblock/atom/internal/api"
	"github.com/shocktheblock/atom/internal/auth"
	"github.com/shocktheblock/atom/internal/config"
	"github.com/shocktheblock/atom/internal/database"
	"github.com/shocktheblock/atom/internal/migrations"
	"github.com/shocktheblock/atom/internal/redis"
	"github.com/shocktheblock/atom/internal/scores"
	"github.com/shocktheblock/atom/internal/ws"
)

func main() {
	// Initialize configuration (loads .env when present)
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations on start if requested
	if cfg.MigrateOnStart {
		dir := os.Getenv("MIGRATIONS_DIR")
		if dir == "" {
			dir = "migrations"
		}
		log.Printf("[MIGRATE] Running DB migrations from %s on startup...", dir)
		if err := migrations.RunMigrations(cfg.DatabaseURL, dir); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	}

	// Redis is optional: without it the leaderboard is read from Postgres
	// and live updates are local to this instance.
	rdb, err := redis.Connect(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("[REDIS] Unavailable, continuing without cache: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
	}

	receipts := auth.NewIssuer(cfg.ReceiptSecret, time.Duration(cfg.ReceiptTTLMinutes)*time.Minute)
	cache := scores.NewCache(rdb, time.Duration(cfg.LeaderboardCacheSeconds)*time.Second)
	svc := scores.NewService(scores.NewRepository(db), cache, receipts, cfg.LeaderboardSize)

	scores.StartRefresher(ctx, svc, time.Duration(cfg.LeaderboardRefreshSeconds)*time.Second)

	hub := ws.NewHub()
	go hub.Run(ctx)
	ws.StartScoreSubscriber(ctx, rdb, hub, svc)

	// Set up Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	api.SetupRoutes(router, api.Deps{
		Scores: svc,
		Hub:    hub,
		Play: ws.PlayOptions{
			DefaultVariant: cfg.GameVariant,
			TickRate:       cfg.TickRate,
			FrameEvery:     2,
			Receipts:       receipts,
		},
	}, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting ShockTheBlock server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
