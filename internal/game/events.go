package game

// EventType names something that happened during a tick or input.
type EventType string

const (
	EventLaunch         EventType = "launch"
	EventWallBounce     EventType = "wall_bounce"
	EventBlockHit       EventType = "block_hit"
	EventBlockDestroyed EventType = "block_destroyed"
	EventAreaBlast      EventType = "area_blast"
	EventBallLost       EventType = "ball_lost"
	EventLevelComplete  EventType = "level_complete"
	EventGameOver       EventType = "game_over"
)

// Event is queued by the session and drained by whoever drives it (audio,
// network, score submission). Fields not relevant to Type are zero.
type Event struct {
	Type      EventType `json:"type"`
	Tick      uint64    `json:"tick"`
	Row       int       `json:"row,omitempty"`
	Col       int       `json:"col,omitempty"`
	Count     int       `json:"count,omitempty"`
	Points    int       `json:"points,omitempty"`
	Tier      int       `json:"tier,omitempty"`
	AngleDeg  float64   `json:"angle,omitempty"`
	Message   string    `json:"message,omitempty"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	BallsLeft int       `json:"balls_left"`
}
