package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shocktheblock/atom/internal/models"
	"github.com/shocktheblock/atom/internal/scores"
)

// LeaderboardRoom holds clients watching the live leaderboard.
const LeaderboardRoom = "leaderboard"

// LeaderboardSource provides the current top scores.
type LeaderboardSource interface {
	Leaderboard(ctx context.Context) ([]models.PlayerScore, error)
}

type leaderboardMessage struct {
	Type   string               `json:"type"`
	Scores []models.PlayerScore `json:"scores"`
	Latest *models.PlayerScore  `json:"latest,omitempty"`
}

// HandleLeaderboard upgrades the connection, sends the current leaderboard
// and keeps the client in LeaderboardRoom until it disconnects.
func HandleLeaderboard(hub *Hub, src LeaderboardSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] WebSocket upgrade failed: %v", err)
			return
		}

		client := newClient(conn, nextClientID("lb"), "", LeaderboardRoom)
		if !hub.Join(client) {
			conn.Close()
			return
		}
		go client.writePump()

		if rows, err := src.Leaderboard(c.Request.Context()); err != nil {
			log.Printf("[WS] Failed to load leaderboard for client %s: %v", client.id, err)
			client.sendError("Leaderboard unavailable")
		} else {
			client.sendJSON(leaderboardMessage{Type: "leaderboard", Scores: rows})
		}

		// Watchers only listen; incoming messages keep the connection alive.
		client.readPump(nil)
		hub.Leave(client)
	}
}

// PushLeaderboard broadcasts the current leaderboard after a score event.
func PushLeaderboard(ctx context.Context, hub *Hub, src LeaderboardSource, payload []byte) {
	var ev models.ScoreEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Printf("[WS] invalid score event payload: %v", err)
		return
	}
	if ev.Type != "score_saved" {
		return
	}
	if hub.RoomSize(LeaderboardRoom) == 0 {
		return
	}
	rows, err := src.Leaderboard(ctx)
	if err != nil {
		log.Printf("[WS] leaderboard reload failed: %v", err)
		return
	}
	latest := ev.Score
	hub.Broadcast(LeaderboardRoom, leaderboardMessage{Type: "leaderboard", Scores: rows, Latest: &latest})
}

// StartScoreSubscriber relays score events from Redis to leaderboard
// watchers. Every API instance publishes there, so watchers on any instance
// see every new score.
func StartScoreSubscriber(ctx context.Context, rdb *redis.Client, hub *Hub, src LeaderboardSource) {
	if rdb == nil {
		log.Println("[WS] Redis client not set; score subscriber not started")
		return
	}

	pubsub := rdb.Subscribe(ctx, scores.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", scores.EventsChannel)
		for msg := range ch {
			PushLeaderboard(ctx, hub, src, []byte(msg.Payload))
		}
		log.Printf("[WS] %s subscriber stopped", scores.EventsChannel)
	}()
}
