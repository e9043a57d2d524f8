package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/shocktheblock/atom/internal/models"
)

// ErrRejected wraps a 4xx answer; retrying will not help.
var ErrRejected = errors.New("score rejected")

// Submission is the body of POST /api/scores.
type Submission struct {
	PlayerName   string `json:"player_name"`
	Score        int    `json:"score"`
	LevelReached int    `json:"level_reached"`
	Variant      string `json:"variant,omitempty"`
	Receipt      string `json:"receipt,omitempty"`
}

// Client talks to the score API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   int
	backoff    time.Duration
}

// NewClient constructs a score client. Returns nil if baseURL is empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		return nil
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
		attempts:   3,
		backoff:    200 * time.Millisecond,
	}
}

// Submit posts a score, retrying transient failures.
func (c *Client) Submit(ctx context.Context, s Submission) (*models.PlayerScore, error) {
	if c == nil {
		return nil, errors.New("score client not configured")
	}

	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * c.backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/scores", bytes.NewReader(b))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusCreated:
			var row models.PlayerScore
			if err := json.Unmarshal(body, &row); err != nil {
				return nil, fmt.Errorf("invalid score response: %w", err)
			}
			return &row, nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return nil, fmt.Errorf("%w: %s", ErrRejected, errorMessage(body, resp.Status))
		default:
			lastErr = fmt.Errorf("score API returned %s", resp.Status)
		}
	}
	return nil, fmt.Errorf("submit score failed after %d attempts: %w", c.attempts, lastErr)
}

// SubmitAsync posts a score in the background. The returned channel
// receives the result once and is then closed.
func (c *Client) SubmitAsync(s Submission) <-chan error {
	done := make(chan error, 1)
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		row, err := c.Submit(ctx, s)
		if err != nil {
			log.Printf("[CLIENT] Score submission for %s failed: %v", s.PlayerName, err)
			done <- err
			return
		}
		log.Printf("[CLIENT] Score %d saved for %s (id=%d, verified=%v)", row.Score, row.PlayerName, row.ID, row.Verified)
		done <- nil
	}()
	return done
}

// Leaderboard fetches the current top scores.
func (c *Client) Leaderboard(ctx context.Context) ([]models.PlayerScore, error) {
	if c == nil {
		return nil, errors.New("score client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/scores", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("leaderboard request failed: %s", errorMessage(body, resp.Status))
	}
	var rows []models.PlayerScore
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, fmt.Errorf("invalid leaderboard response: %w", err)
	}
	return rows, nil
}

func errorMessage(body []byte, status string) string {
	var parsed struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Error != "" {
		return parsed.Error
	}
	return status
}
