package scores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/shocktheblock/atom/internal/models"
)

// ErrPlayerNotFound is returned when a player has no stored scores.
var ErrPlayerNotFound = errors.New("player not found")

// Store is the persistence the score service needs.
type Store interface {
	Top(ctx context.Context, limit int) ([]models.PlayerScore, error)
	Insert(ctx context.Context, s models.NewScore) (*models.PlayerScore, error)
	PlayerStats(ctx context.Context, name string) (*models.PlayerStats, error)
}

// Repository is the Postgres-backed Store.
type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

const scoreColumns = `id, player_name, score, level_reached, variant, verified, created_at`

// Top returns the highest scores, best first. Ties go to the earlier game.
func (r *Repository) Top(ctx context.Context, limit int) ([]models.PlayerScore, error) {
	rows := []models.PlayerScore{}
	err := r.db.SelectContext(ctx, &rows,
		`SELECT `+scoreColumns+` FROM player_scores ORDER BY score DESC, created_at ASC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load top scores: %w", err)
	}
	return rows, nil
}

// Insert stores a finished game and returns the stored row.
func (r *Repository) Insert(ctx context.Context, s models.NewScore) (*models.PlayerScore, error) {
	var row models.PlayerScore
	err := r.db.GetContext(ctx, &row,
		`INSERT INTO player_scores (player_name, score, level_reached, variant, verified, created_at)
		 VALUES ($1, $2, $3, $4, $5, NOW())
		 RETURNING `+scoreColumns,
		s.PlayerName, s.Score, s.LevelReached, s.Variant, s.Verified)
	if err != nil {
		return nil, fmt.Errorf("failed to insert score: %w", err)
	}
	return &row, nil
}

// PlayerStats aggregates a player's scores.
func (r *Repository) PlayerStats(ctx context.Context, name string) (*models.PlayerStats, error) {
	var stats models.PlayerStats
	err := r.db.GetContext(ctx, &stats,
		`SELECT player_name,
		        MAX(score) AS high_score,
		        AVG(score)::float8 AS avg_score,
		        COUNT(*) AS games_played
		 FROM player_scores
		 WHERE player_name = $1
		 GROUP BY player_name`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load player stats: %w", err)
	}
	return &stats, nil
}
