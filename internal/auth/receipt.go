package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidReceipt is returned for receipts that are malformed, expired,
// signed with another key, or whose claims do not match the submission.
var ErrInvalidReceipt = errors.New("invalid score receipt")

// Receipt is the game result a server-hosted session vouches for.
type Receipt struct {
	ID      string
	Player  string
	Score   int
	Level   int
	Variant string
	// Expires is set by Verify.
	Expires time.Time
}

// Issuer signs and verifies score receipts with HS256.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a receipt for a finished game.
func (i *Issuer) Issue(r Receipt) (string, error) {
	if r.ID == "" {
		r.ID = "RCPT_" + generateID(10)
	}
	claims := jwt.MapClaims{
		"jti":     r.ID,
		"player":  r.Player,
		"score":   r.Score,
		"level":   r.Level,
		"variant": r.Variant,
		"iat":     i.now().Unix(),
		"exp":     i.now().Add(i.ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign receipt: %w", err)
	}
	return signed, nil
}

// Verify parses a receipt and returns its contents.
func (i *Issuer) Verify(token string) (*Receipt, error) {
	parser := jwt.Parser{}
	parsed, err := parser.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidReceipt, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidReceipt
	}
	exp, ok := claims["exp"].(float64)
	if !ok || i.now().Unix() > int64(exp) {
		return nil, fmt.Errorf("%w: expired", ErrInvalidReceipt)
	}

	r := &Receipt{}
	r.ID, _ = claims["jti"].(string)
	r.Player, _ = claims["player"].(string)
	r.Variant, _ = claims["variant"].(string)
	score, ok1 := claims["score"].(float64)
	level, ok2 := claims["level"].(float64)
	if r.ID == "" || r.Player == "" || !ok1 || !ok2 {
		return nil, fmt.Errorf("%w: missing claims", ErrInvalidReceipt)
	}
	r.Score, r.Level = int(score), int(level)
	r.Expires = time.Unix(int64(exp), 0)
	return r, nil
}

// Matches reports whether the receipt vouches for exactly this result.
func (r *Receipt) Matches(player string, score, level int) bool {
	return r.Player == player && r.Score == score && r.Level == level
}

// generateID generates a random alphanumeric ID
func generateID(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		result[i] = charset[n.Int64()]
	}
	return string(result)
}
