package authsvc

import (
	"context"
	"log"
	"time"
)

// StartSweeper runs the store's Cleanup every period until ctx is
// cancelled. A period that is not positive falls back to 5 minutes,
// which is also the configured default (TOKEN_CLEANUP_PERIOD).
func (s *Service) StartSweeper(ctx context.Context, period time.Duration) {
	if period <= 0 {
		period = 5 * time.Minute
	}

	ticker := time.NewTicker(period)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Println("authsvc: sweeper stopped")
				return
			case <-ticker.C:
				if err := s.store.Cleanup(ctx); err != nil {
					log.Printf("authsvc: sweeper cleanup failed: %v", err)
				}
			}
		}
	}()
}
