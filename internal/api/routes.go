package api

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/shocktheblock/atom/internal/api/handlers"
	"github.com/shocktheblock/atom/internal/config"
	"github.com/shocktheblock/atom/internal/middleware"
	"github.com/shocktheblock/atom/internal/ws"
)

// Deps are the services the routes are wired to.
type Deps struct {
	Scores handlers.ScoreService
	Hub    *ws.Hub
	Play   ws.PlayOptions
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, deps Deps, cfg *config.Config) {
	router.Use(middleware.CORSMiddleware(cfg))

	if cfg.Environment != "production" {
		router.Use(middleware.NoCache())
		log.Println("[DEV MODE] No-cache headers enabled for all routes")
	}

	api := router.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		scores := api.Group("/scores")
		{
			scores.GET("", handlers.GetScores(deps.Scores))
			scores.POST("", handlers.PostScore(deps.Scores))
			scores.GET("/live", middleware.WebSocketCORSCheck(cfg), ws.HandleLeaderboard(deps.Hub, deps.Scores))
		}

		api.GET("/players/:name", handlers.GetPlayer(deps.Scores))
		api.GET("/play", middleware.WebSocketCORSCheck(cfg), ws.HandlePlay(deps.Hub, deps.Play))
	}
}
