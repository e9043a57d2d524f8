package scores

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shocktheblock/atom/internal/auth"
	"github.com/shocktheblock/atom/internal/models"
)

// MaxNameLength is the longest accepted player name.
const MaxNameLength = 50

var (
	ErrNameRequired  = errors.New("player_name is required")
	ErrNameTooLong   = fmt.Errorf("player_name must be at most %d characters", MaxNameLength)
	ErrInvalidScore  = errors.New("score must be zero or positive")
	ErrReceiptDiffer = fmt.Errorf("%w: receipt does not match the submitted result", auth.ErrInvalidReceipt)
	ErrReceiptUsed   = fmt.Errorf("%w: receipt was already used", auth.ErrInvalidReceipt)
)

// receiptLedger remembers which receipts already backed a stored score.
type receiptLedger interface {
	ClaimReceipt(ctx context.Context, id string, ttl time.Duration) (bool, error)
	ReleaseReceipt(ctx context.Context, id string)
}

// Service is the score API: leaderboard reads go through the cache,
// submissions are validated, optionally verified against a receipt, stored,
// and announced.
type Service struct {
	store    Store
	cache    *Cache
	receipts *auth.Issuer
	ledger   receiptLedger
	size     int
}

func NewService(store Store, cache *Cache, receipts *auth.Issuer, size int) *Service {
	if size <= 0 {
		size = 10
	}
	return &Service{store: store, cache: cache, receipts: receipts, ledger: cache, size: size}
}

// Leaderboard returns the top scores, from the cache when warm.
func (s *Service) Leaderboard(ctx context.Context) ([]models.PlayerScore, error) {
	if rows, ok := s.cache.Get(ctx); ok {
		return rows, nil
	}
	return s.Refresh(ctx)
}

// Refresh reloads the leaderboard from the store into the cache.
func (s *Service) Refresh(ctx context.Context) ([]models.PlayerScore, error) {
	rows, err := s.store.Top(ctx, s.size)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, rows); err != nil {
		log.Printf("[SCORES] %v", err)
	}
	return rows, nil
}

// Submit validates and stores a score. A non-empty receipt must verify,
// match the submission and not have backed an earlier score; the stored row
// is then marked verified.
func (s *Service) Submit(ctx context.Context, in models.NewScore, receipt string) (*models.PlayerScore, error) {
	in.PlayerName = strings.TrimSpace(in.PlayerName)
	if err := Validate(in); err != nil {
		return nil, err
	}
	if in.LevelReached <= 0 {
		in.LevelReached = 1
	}

	var claimedID string
	if receipt != "" {
		if s.receipts == nil {
			return nil, fmt.Errorf("%w: receipts are not enabled", auth.ErrInvalidReceipt)
		}
		r, err := s.receipts.Verify(receipt)
		if err != nil {
			return nil, err
		}
		if !r.Matches(in.PlayerName, in.Score, in.LevelReached) {
			return nil, ErrReceiptDiffer
		}
		claimed, err := s.ledger.ClaimReceipt(ctx, r.ID, time.Until(r.Expires))
		switch {
		case err != nil:
			// the score is kept; the receipt stays reusable
			log.Printf("[SCORES] %v", err)
		case !claimed:
			return nil, ErrReceiptUsed
		default:
			claimedID = r.ID
		}
		in.Verified = true
		if in.Variant == "" {
			in.Variant = r.Variant
		}
	}
	if in.Variant == "" {
		in.Variant = "arcade"
	}

	row, err := s.store.Insert(ctx, in)
	if err != nil {
		if claimedID != "" {
			s.ledger.ReleaseReceipt(ctx, claimedID)
		}
		return nil, err
	}
	log.Printf("[SCORES] Saved score %d for %s (level %d, verified=%v)", row.Score, row.PlayerName, row.LevelReached, row.Verified)

	s.cache.Invalidate(ctx)
	if _, err := s.Refresh(ctx); err != nil {
		log.Printf("[SCORES] leaderboard refresh after insert failed: %v", err)
	}
	s.cache.Publish(ctx, *row)
	return row, nil
}

// PlayerStats returns a player's aggregates or ErrPlayerNotFound.
func (s *Service) PlayerStats(ctx context.Context, name string) (*models.PlayerStats, error) {
	return s.store.PlayerStats(ctx, strings.TrimSpace(name))
}

// Validate checks a submission's name and score.
func Validate(in models.NewScore) error {
	switch {
	case in.PlayerName == "":
		return ErrNameRequired
	case len([]rune(in.PlayerName)) > MaxNameLength:
		return ErrNameTooLong
	case in.Score < 0:
		return ErrInvalidScore
	}
	return nil
}
