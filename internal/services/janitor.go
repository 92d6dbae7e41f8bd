package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-sports-backend/internal/repo"
)

// RunIdempotencyJanitor deletes expired comment idempotency records every
// interval until ctx is cancelled. Lookups already ignore expired rows; this
// only keeps the table from growing without bound.
func RunIdempotencyJanitor(ctx context.Context, db *gorm.DB, every time.Duration) {
	if every <= 0 {
		return
	}
	lg := zerolog.Ctx(ctx)
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			n, err := repo.PurgeExpiredIdempotency(ctx, db, now.UTC())
			switch {
			case err != nil && ctx.Err() == nil:
				lg.Warn().Err(err).Msg("purge idempotency keys")
			case n > 0:
				lg.Debug().Int64("deleted", n).Msg("purged expired idempotency keys")
			}
		}
	}
}
