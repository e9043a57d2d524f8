package models

import "time"

// PlayerScore is one finished game as stored in player_scores.
type PlayerScore struct {
	ID           int       `db:"id" json:"id"`
	PlayerName   string    `db:"player_name" json:"player_name"`
	Score        int       `db:"score" json:"score"`
	LevelReached int       `db:"level_reached" json:"level_reached"`
	Variant      string    `db:"variant" json:"variant"`
	Verified     bool      `db:"verified" json:"verified"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// PlayerStats aggregates every stored score for one player.
type PlayerStats struct {
	PlayerName  string  `db:"player_name" json:"player_name"`
	HighScore   int     `db:"high_score" json:"high_score"`
	AvgScore    float64 `db:"avg_score" json:"avg_score"`
	GamesPlayed int     `db:"games_played" json:"games_played"`
}

// NewScore is a score submission before it is stored.
type NewScore struct {
	PlayerName   string `json:"player_name"`
	Score        int    `json:"score"`
	LevelReached int    `json:"level_reached"`
	Variant      string `json:"variant"`
	Verified     bool   `json:"-"`
}

// ScoreEvent is published on the score_events channel whenever a score is
// stored.
type ScoreEvent struct {
	Type  string      `json:"type"`
	Score PlayerScore `json:"score"`
}
