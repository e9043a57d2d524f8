package scores

import (
	"context"
	"log"
	"time"
)

// StartRefresher keeps the cached leaderboard warm by reloading it from the
// store every interval until ctx is cancelled.
func StartRefresher(ctx context.Context, svc *Service, interval time.Duration) {
	if svc == nil || svc.cache == nil || svc.cache.rdb == nil || interval <= 0 {
		log.Println("[SCORES] Redis or interval missing; leaderboard refresher not started")
		return
	}

	log.Println("[SCORES] Leaderboard refresher started")
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Println("[SCORES] Leaderboard refresher stopping")
				return
			case <-ticker.C:
				rows, err := svc.Refresh(ctx)
				if err != nil {
					log.Printf("[SCORES] Failed to refresh leaderboard: %v", err)
					continue
				}
				log.Printf("[SCORES] Leaderboard refreshed (%d entries)", len(rows))
			}
		}
	}()
}
