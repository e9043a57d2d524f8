package ws

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shocktheblock/atom/internal/auth"
	"github.com/shocktheblock/atom/internal/game"
)

// PlayRoom holds every server-hosted game session.
const PlayRoom = "play"

var clientSeq atomic.Uint64

func nextClientID(prefix string) string {
	return fmt.Sprintf("%s_%d_%d", prefix, time.Now().Unix(), clientSeq.Add(1))
}

// PlayOptions configures server-hosted sessions.
type PlayOptions struct {
	DefaultVariant string
	TickRate       int
	// FrameEvery sends one frame per this many ticks. Frames carrying events
	// are always sent.
	FrameEvery int
	Receipts   *auth.Issuer
}

// frameMessage is sent to the client after a tick.
type frameMessage struct {
	Type   string        `json:"type"`
	State  game.Snapshot `json:"state"`
	Events []game.Event  `json:"events,omitempty"`
}

// gameOverMessage carries the final result and, for named players, a signed
// receipt the client can attach when submitting the score.
type gameOverMessage struct {
	Type    string `json:"type"`
	Score   int    `json:"score"`
	Level   int    `json:"level"`
	Variant string `json:"variant"`
	Receipt string `json:"receipt,omitempty"`
}

// decodeInput turns an "input" message into a game input.
func decodeInput(msg WSMessage) (game.Input, error) {
	if msg.Type != "input" {
		return game.Input{}, fmt.Errorf("unknown message type: %s", msg.Type)
	}
	var in game.Input
	if err := json.Unmarshal(msg.Data, &in); err != nil {
		return game.Input{}, fmt.Errorf("invalid input payload: %w", err)
	}
	if in.Kind == "" {
		return game.Input{}, game.ErrUnknownInput
	}
	return in, nil
}

// playSession couples a game loop with the client watching it.
type playSession struct {
	client  *Client
	session *game.Session
	opts    PlayOptions
	ticks   int
}

func (p *playSession) onFrame(snap game.Snapshot, events []game.Event) {
	p.ticks++
	if len(events) == 0 && p.opts.FrameEvery > 1 && p.ticks%p.opts.FrameEvery != 0 {
		return
	}
	if !p.client.sendJSON(frameMessage{Type: "frame", State: snap, Events: events}) {
		log.Printf("[PLAY] Dropped frame %d for client %s", snap.Tick, p.client.id)
	}
	for _, e := range events {
		if e.Type == game.EventGameOver {
			p.finish(snap)
		}
	}
}

func (p *playSession) finish(snap game.Snapshot) {
	msg := gameOverMessage{Type: "game_over", Score: snap.Score, Level: snap.Level, Variant: snap.Variant}
	if p.client.player != "" && p.opts.Receipts != nil {
		receipt, err := p.opts.Receipts.Issue(auth.Receipt{
			Player:  p.client.player,
			Score:   snap.Score,
			Level:   snap.Level,
			Variant: snap.Variant,
		})
		if err != nil {
			log.Printf("[PLAY] Failed to issue receipt for %s: %v", p.client.player, err)
		} else {
			msg.Receipt = receipt
		}
	}
	log.Printf("[PLAY] Game over for client %s: score=%d level=%d", p.client.id, snap.Score, snap.Level)
	p.client.sendJSON(msg)
}

func (p *playSession) onReject(in game.Input, err error) {
	p.client.sendJSON(map[string]interface{}{
		"type":    "rejected",
		"input":   in.Kind,
		"message": err.Error(),
	})
}

// HandlePlay upgrades the connection and runs a game session for it.
// Query parameters: variant (classic|arcade) and player (optional, required
// for a score receipt).
func HandlePlay(hub *Hub, opts PlayOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		variant := c.DefaultQuery("variant", opts.DefaultVariant)
		cfg, err := game.ConfigByName(variant)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		player := c.Query("player")
		if len([]rune(player)) > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player must be at most 50 characters"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[PLAY] WebSocket upgrade failed: %v", err)
			return
		}

		client := newClient(conn, nextClientID("play"), player, PlayRoom)
		if !hub.Join(client) {
			conn.Close()
			return
		}

		ps := &playSession{
			client:  client,
			session: game.NewSession(cfg, uint64(time.Now().UnixNano())),
			opts:    opts,
		}
		inputs := make(chan game.Input, 32)
		loop := game.NewLoop(ps.session, opts.TickRate, inputs)
		loop.OnFrame = ps.onFrame
		loop.OnReject = ps.onReject

		ctx, cancel := context.WithCancel(context.Background())
		loopDone := make(chan struct{})
		go func() {
			defer close(loopDone)
			if err := loop.Run(ctx); err != nil && err != context.Canceled {
				log.Printf("[PLAY] Loop for client %s stopped: %v", client.id, err)
			}
		}()
		go client.writePump()

		client.readPump(func(msg WSMessage) {
			in, err := decodeInput(msg)
			if err != nil {
				client.sendError(err.Error())
				return
			}
			select {
			case inputs <- in:
			default:
				client.sendError("Too many inputs")
			}
		})

		// The loop sends frames; it must be gone before send is closed.
		cancel()
		<-loopDone
		hub.Leave(client)
	}
}
