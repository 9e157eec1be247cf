package interfaces

import (
	"context"
	"time"
)

// LeadTotalCacheInterface is the slice of the redis adapter the projection
// service uses for its list totals.
type LeadTotalCacheInterface interface {
	CachedLeadTotal(ctx context.Context, key string) (int64, error)
	CacheLeadTotal(ctx context.Context, key string, total int64, ttl time.Duration) error
}

// LeadTotalInvalidatorInterface drops the cached totals after a write that
// may move a record between the active and closed views.
type LeadTotalInvalidatorInterface interface {
	InvalidateLeadTotals(ctx context.Context) error
}
