package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shocktheblock/atom/internal/models"
	"github.com/shocktheblock/atom/internal/scores"
)

type fakeScores struct {
	rows      []models.PlayerScore
	submitted []models.NewScore
	receipt   string
	fail      error
}

func (f *fakeScores) Leaderboard(context.Context) ([]models.PlayerScore, error) {
	return f.rows, f.fail
}

func (f *fakeScores) Submit(_ context.Context, in models.NewScore, receipt string) (*models.PlayerScore, error) {
	if f.fail != nil {
		return nil, f.fail
	}
	if err := scores.Validate(in); err != nil {
		return nil, err
	}
	if receipt == "forged" {
		return nil, scores.ErrReceiptDiffer
	}
	f.submitted = append(f.submitted, in)
	f.receipt = receipt
	return &models.PlayerScore{ID: len(f.submitted), PlayerName: in.PlayerName, Score: in.Score, LevelReached: in.LevelReached}, nil
}

func (f *fakeScores) PlayerStats(_ context.Context, name string) (*models.PlayerStats, error) {
	if name != "ada" {
		return nil, scores.ErrPlayerNotFound
	}
	return &models.PlayerStats{PlayerName: "ada", HighScore: 90, AvgScore: 45, GamesPlayed: 2}, nil
}

func newRouter(svc ScoreService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/health", HealthCheck)
	r.GET("/api/scores", GetScores(svc))
	r.POST("/api/scores", PostScore(svc))
	r.GET("/api/players/:name", GetPlayer(svc))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := do(newRouter(&fakeScores{}), http.MethodGet, "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var body map[string]string
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["status"] != "ok" || body["service"] != "shocktheblock-api" || body["version"] != Version || body["uptime"] == "" {
		t.Errorf("body %v", body)
	}
}

func TestGetScores(t *testing.T) {
	svc := &fakeScores{rows: []models.PlayerScore{{ID: 2, PlayerName: "bo", Score: 70}, {ID: 1, PlayerName: "ada", Score: 40}}}
	w := do(newRouter(svc), http.MethodGet, "/api/scores", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var rows []models.PlayerScore
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 || rows[0].PlayerName != "bo" {
		t.Errorf("rows %+v", rows)
	}
}

func TestGetScoresEmptyIsArray(t *testing.T) {
	w := do(newRouter(&fakeScores{}), http.MethodGet, "/api/scores", "")
	if got := w.Body.String(); got != "[]" {
		t.Errorf("body %q", got)
	}
}

func TestGetScoresStoreFailure(t *testing.T) {
	w := do(newRouter(&fakeScores{fail: errors.New("db down")}), http.MethodGet, "/api/scores", "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status %d", w.Code)
	}
}

func TestPostScore(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid", `{"player_name":"ada","score":120,"level_reached":3}`, http.StatusCreated},
		{"zero score", `{"player_name":"ada","score":0}`, http.StatusCreated},
		{"missing score", `{"player_name":"ada"}`, http.StatusBadRequest},
		{"negative score", `{"player_name":"ada","score":-5}`, http.StatusBadRequest},
		{"missing name", `{"score":10}`, http.StatusBadRequest},
		{"long name", `{"player_name":"` + string(bytes.Repeat([]byte("x"), 51)) + `","score":10}`, http.StatusBadRequest},
		{"bad receipt", `{"player_name":"ada","score":10,"receipt":"forged"}`, http.StatusBadRequest},
		{"malformed", `{"player_name":`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(newRouter(&fakeScores{}), http.MethodPost, "/api/scores", tt.body)
			if w.Code != tt.want {
				t.Errorf("status %d want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestPostScorePassesReceipt(t *testing.T) {
	svc := &fakeScores{}
	w := do(newRouter(svc), http.MethodPost, "/api/scores", `{"player_name":"ada","score":10,"variant":"classic","receipt":"tok"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status %d", w.Code)
	}
	if svc.receipt != "tok" || svc.submitted[0].Variant != "classic" {
		t.Errorf("submitted %+v receipt %q", svc.submitted, svc.receipt)
	}
}

func TestPostScoreInternalError(t *testing.T) {
	w := do(newRouter(&fakeScores{fail: errors.New("insert failed")}), http.MethodPost, "/api/scores", `{"player_name":"ada","score":1}`)
	if w.Code != http.StatusInternalServerError {
		t.Errorf("status %d", w.Code)
	}
}

func TestGetPlayer(t *testing.T) {
	r := newRouter(&fakeScores{})

	w := do(r, http.MethodGet, "/api/players/ada", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status %d", w.Code)
	}
	var stats models.PlayerStats
	json.Unmarshal(w.Body.Bytes(), &stats)
	if stats.HighScore != 90 || stats.GamesPlayed != 2 {
		t.Errorf("stats %+v", stats)
	}

	if w := do(r, http.MethodGet, "/api/players/nobody", ""); w.Code != http.StatusNotFound {
		t.Errorf("unknown player status %d", w.Code)
	}
}
