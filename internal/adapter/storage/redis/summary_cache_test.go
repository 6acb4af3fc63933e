package redis

import (
	"context"
	"testing"
	"time"

	"wallet-ledger/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSummary() *ports.WalletSummary {
	return &ports.WalletSummary{
		ID:               uuid.New(),
		Name:             "alice",
		Balance:          decimal.RequireFromString("70"),
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
		TransactionCount: 2,
	}
}

func TestSummaryCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewSummaryCache(client)
	ctx := context.Background()

	summary := newTestSummary()

	// Get before set => nil
	result, err := cache.Get(ctx, summary.ID)
	assert.NoError(t, err)
	assert.Nil(t, result)

	// Set
	require.NoError(t, cache.Set(ctx, summary, time.Minute))

	// Get after set
	result, err = cache.Get(ctx, summary.ID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, summary.ID, result.ID)
	assert.Equal(t, summary.Name, result.Name)
	assert.True(t, summary.Balance.Equal(result.Balance))
	assert.Equal(t, summary.TransactionCount, result.TransactionCount)
}

func TestSummaryCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewSummaryCache(client)
	ctx := context.Background()

	summary := newTestSummary()
	require.NoError(t, cache.Set(ctx, summary, time.Second))

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	result, err := cache.Get(ctx, summary.ID)
	assert.NoError(t, err)
	assert.Nil(t, result, "expired key should return nil")
}

func TestSummaryCache_Invalidate(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewSummaryCache(client)
	ctx := context.Background()

	summary := newTestSummary()
	require.NoError(t, cache.Set(ctx, summary, time.Hour))

	require.NoError(t, cache.Invalidate(ctx, summary.ID))

	result, err := cache.Get(ctx, summary.ID)
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestSummaryCache_InvalidateMissingKeyIsNoop(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewSummaryCache(client)

	assert.NoError(t, cache.Invalidate(context.Background(), uuid.New()))
}

func TestHealthCheck_Ping(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})

	hc := NewHealthCheck(client)
	assert.NoError(t, hc.Ping(context.Background()))
	assert.Equal(t, "redis", hc.Name())
}
