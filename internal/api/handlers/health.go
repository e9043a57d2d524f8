package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Version identifies the build. Release builds set it with
// -ldflags "-X github.com/shocktheblock/atom/internal/api/handlers.Version=v0.3.1".
var Version = "dev"

var startedAt = time.Now()

// HealthCheck reports liveness, the build and how long the API has been up.
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "shocktheblock-api",
		"version": Version,
		"uptime":  time.Since(startedAt).Round(time.Second).String(),
	})
}
