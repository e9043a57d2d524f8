package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

func TestIssueAndVerify(t *testing.T) {
	iss := NewIssuer("secret", 30*time.Minute)

	token, err := iss.Issue(Receipt{Player: "ada", Score: 420, Level: 3, Variant: "arcade"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	r, err := iss.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !r.Matches("ada", 420, 3) || r.Variant != "arcade" {
		t.Errorf("receipt: %+v", r)
	}
	if !strings.HasPrefix(r.ID, "RCPT_") {
		t.Errorf("receipt id: %q", r.ID)
	}
	if r.Matches("ada", 421, 3) || r.Matches("bob", 420, 3) {
		t.Error("Matches accepted a different result")
	}
}

func TestVerifyRejectsOtherKey(t *testing.T) {
	token, _ := NewIssuer("one", time.Minute).Issue(Receipt{Player: "ada", Score: 1, Level: 1})

	if _, err := NewIssuer("two", time.Minute).Verify(token); !errors.Is(err, ErrInvalidReceipt) {
		t.Errorf("expected ErrInvalidReceipt, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	iss := NewIssuer("secret", 30*time.Minute)
	iss.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, _ := iss.Issue(Receipt{Player: "ada", Score: 1, Level: 1})

	if _, err := NewIssuer("secret", time.Minute).Verify(token); !errors.Is(err, ErrInvalidReceipt) {
		t.Errorf("expected ErrInvalidReceipt, got %v", err)
	}
}

func TestVerifyRejectsOtherAlgorithm(t *testing.T) {
	claims := jwt.MapClaims{"player": "ada", "score": 1, "level": 1, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewIssuer("secret", time.Minute).Verify(token); !errors.Is(err, ErrInvalidReceipt) {
		t.Errorf("expected ErrInvalidReceipt, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	if _, err := NewIssuer("secret", time.Minute).Verify("not-a-token"); !errors.Is(err, ErrInvalidReceipt) {
		t.Errorf("expected ErrInvalidReceipt, got %v", err)
	}
}

func TestVerifyRequiresID(t *testing.T) {
	claims := jwt.MapClaims{"player": "ada", "score": 1, "level": 1, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewIssuer("secret", time.Minute).Verify(token); !errors.Is(err, ErrInvalidReceipt) {
		t.Errorf("receipt without id accepted: %v", err)
	}
}

func TestVerifyReportsExpiry(t *testing.T) {
	iss := NewIssuer("secret", 10*time.Minute)
	token, _ := iss.Issue(Receipt{Player: "ada", Score: 1, Level: 1})

	r, err := iss.Verify(token)
	if err != nil {
		t.Fatal(err)
	}
	if left := time.Until(r.Expires); left <= 9*time.Minute || left > 10*time.Minute {
		t.Errorf("expires in %v", left)
	}
}
