package main

import (
	"context"
	"log"
	"os"
	"strconv"

	"github.com/shocktheblock/atom/internal/config"
	"github.com/shocktheblock/atom/internal/database"
	"github.com/shocktheblock/atom/internal/models"
	"github.com/shocktheblock/atom/internal/scores"
)

var demoScores = []models.NewScore{
	{PlayerName: "Nova", Score: 4820, LevelReached: 9, Variant: "arcade"},
	{PlayerName: "Pixel", Score: 3910, LevelReached: 7, Variant: "arcade"},
	{PlayerName: "Tesla", Score: 3150, LevelReached: 8, Variant: "classic"},
	{PlayerName: "Volt", Score: 2480, LevelReached: 5, Variant: "arcade"},
	{PlayerName: "Arc", Score: 1760, LevelReached: 4, Variant: "classic"},
	{PlayerName: "Spark", Score: 990, LevelReached: 3, Variant: "arcade"},
	{PlayerName: "Ohm", Score: 420, LevelReached: 2, Variant: "classic"},
}

func main() {
	// Initialize configuration (loads .env when present)
	cfg := config.Load()

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	count := len(demoScores)
	if v := os.Getenv("SEED_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < count {
			count = n
		}
	}

	repo := scores.NewRepository(db)
	ctx := context.Background()
	for _, s := range demoScores[:count] {
		if err := scores.Validate(s); err != nil {
			log.Fatalf("Invalid demo score %+v: %v", s, err)
		}
		row, err := repo.Insert(ctx, s)
		if err != nil {
			log.Fatalf("Failed to insert score for %s: %v", s.PlayerName, err)
		}
		log.Printf("✓ Seeded %-8s %5d (level %d, %s) id=%d", row.PlayerName, row.Score, row.LevelReached, row.Variant, row.ID)
	}

	log.Printf("Seeded %d demo scores. The cached leaderboard refreshes within %ds.", count, cfg.LeaderboardRefreshSeconds)
}
