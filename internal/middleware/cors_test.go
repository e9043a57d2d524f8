package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shocktheblock/atom/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func wsRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(WebSocketCORSCheck(cfg))
	r.GET("/ws", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func upgradeRequest(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Connection", "keep-alive, Upgrade")
	req.Header.Set("Upgrade", "websocket")
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestWebSocketCORSCheck(t *testing.T) {
	prod := &config.Config{Environment: "production", FrontendURL: "https://shocktheblock.example"}
	dev := &config.Config{Environment: "development"}

	tests := []struct {
		name   string
		cfg    *config.Config
		origin string
		want   int
	}{
		{"frontend origin", prod, "https://shocktheblock.example", http.StatusOK},
		{"foreign origin", prod, "https://evil.example", http.StatusForbidden},
		{"no origin", prod, "", http.StatusOK},
		{"dev localhost", dev, "http://localhost:8080", http.StatusOK},
		{"dev foreign", dev, "https://evil.example", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			wsRouter(tt.cfg).ServeHTTP(w, upgradeRequest(tt.origin))
			if w.Code != tt.want {
				t.Errorf("status %d want %d", w.Code, tt.want)
			}
		})
	}
}

func TestPlainRequestsSkipOriginCheck(t *testing.T) {
	cfg := &config.Config{Environment: "production"}
	req := httptest.NewRequest(http.MethodGet, "/ws", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	wsRouter(cfg).ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("status %d", w.Code)
	}
}

func TestAllowedOriginsPrefersExplicitList(t *testing.T) {
	cfg := &config.Config{
		Environment:    "development",
		FrontendURL:    "https://a.example",
		AllowedOrigins: []string{"https://b.example"},
	}
	got := AllowedOrigins(cfg)
	if len(got) != 1 || got[0] != "https://b.example" {
		t.Errorf("got %v", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := &config.Config{Environment: "production", FrontendURL: "https://shocktheblock.example"}
	r := gin.New()
	r.Use(CORSMiddleware(cfg))
	r.POST("/api/scores", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodOptions, "/api/scores", nil)
	req.Header.Set("Origin", "https://shocktheblock.example")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://shocktheblock.example" {
		t.Errorf("allow origin %q", got)
	}
}
