package repository

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"collections-service/internal/pkg/consts"
)

func TestCacheLeadTotalRoundTrip(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)
	ctx := context.Background()

	mock.ExpectSet(consts.ActiveLeadsTotalCacheKey, "42", 30*time.Second).SetVal("OK")
	mock.ExpectGet(consts.ActiveLeadsTotalCacheKey).SetVal("42")

	require.NoError(t, adapter.CacheLeadTotal(ctx, consts.ActiveLeadsTotalCacheKey, 42, 30*time.Second))

	total, err := adapter.CachedLeadTotal(ctx, consts.ActiveLeadsTotalCacheKey)
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedLeadTotalColdKey(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)

	mock.ExpectGet(consts.ClosedLeadsTotalCacheKey).RedisNil()

	_, err := adapter.CachedLeadTotal(context.Background(), consts.ClosedLeadsTotalCacheKey)
	assert.ErrorIs(t, err, redis.Nil)
}

func TestInvalidateLeadTotalsDropsBothKeys(t *testing.T) {
	db, mock := redismock.NewClientMock()
	adapter := NewRedisStoreAdapter(db)

	mock.ExpectDel(consts.ActiveLeadsTotalCacheKey).SetVal(1)
	mock.ExpectDel(consts.ClosedLeadsTotalCacheKey).SetVal(1)

	require.NoError(t, adapter.InvalidateLeadTotals(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
