package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shocktheblock/atom/internal/auth"
	"github.com/shocktheblock/atom/internal/models"
	"github.com/shocktheblock/atom/internal/scores"
)

// ScoreService is what the score handlers need from scores.Service.
type ScoreService interface {
	Leaderboard(ctx context.Context) ([]models.PlayerScore, error)
	Submit(ctx context.Context, in models.NewScore, receipt string) (*models.PlayerScore, error)
	PlayerStats(ctx context.Context, name string) (*models.PlayerStats, error)
}

type submitScoreRequest struct {
	PlayerName   string `json:"player_name"`
	Score        *int   `json:"score"`
	LevelReached int    `json:"level_reached"`
	Variant      string `json:"variant"`
	Receipt      string `json:"receipt"`
}

// GetScores returns the top scores in descending order.
func GetScores(svc ScoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.Leaderboard(c.Request.Context())
		if err != nil {
			log.Printf("[SCORES] Failed to load leaderboard: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load scores"})
			return
		}
		if rows == nil {
			rows = []models.PlayerScore{}
		}
		c.JSON(http.StatusOK, rows)
	}
}

// PostScore stores a finished game's score.
func PostScore(svc ScoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitScoreRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		if req.Score == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "score is required"})
			return
		}

		row, err := svc.Submit(c.Request.Context(), models.NewScore{
			PlayerName:   req.PlayerName,
			Score:        *req.Score,
			LevelReached: req.LevelReached,
			Variant:      req.Variant,
		}, req.Receipt)
		if err != nil {
			switch {
			case errors.Is(err, scores.ErrNameRequired),
				errors.Is(err, scores.ErrNameTooLong),
				errors.Is(err, scores.ErrInvalidScore),
				errors.Is(err, auth.ErrInvalidReceipt):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Printf("[SCORES] Failed to save score for %q: %v", req.PlayerName, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save score"})
			}
			return
		}

		c.JSON(http.StatusCreated, row)
	}
}

// GetPlayer returns a player's aggregate stats.
func GetPlayer(svc ScoreService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := svc.PlayerStats(c.Request.Context(), c.Param("name"))
		if err != nil {
			if errors.Is(err, scores.ErrPlayerNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Player not found"})
				return
			}
			log.Printf("[SCORES] Failed to load stats for %q: %v", c.Param("name"), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load player"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
