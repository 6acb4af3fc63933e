package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"wallet-ledger/internal/core/ports"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// SummaryCache implements ports.SummaryCache using Redis. It shields the
// store from repeated summary reads; entries are short-lived and invalidated
// whenever the wallet mutates.
type SummaryCache struct {
	client *goredis.Client
	prefix string
}

// NewSummaryCache creates a new Redis-backed summary cache.
func NewSummaryCache(client *goredis.Client) *SummaryCache {
	return &SummaryCache{
		client: client,
		prefix: "wallet:summary:",
	}
}

// Get retrieves a cached summary by wallet id.
// Returns nil, nil if the key does not exist.
func (c *SummaryCache) Get(ctx context.Context, walletID uuid.UUID) (*ports.WalletSummary, error) {
	val, err := c.client.Get(ctx, c.prefix+walletID.String()).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis summary get: %w", err)
	}

	summary := &ports.WalletSummary{}
	if err := json.Unmarshal(val, summary); err != nil {
		return nil, fmt.Errorf("unmarshal cached summary: %w", err)
	}
	return summary, nil
}

// Set stores a summary with TTL.
func (c *SummaryCache) Set(ctx context.Context, summary *ports.WalletSummary, ttl time.Duration) error {
	val, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if err := c.client.Set(ctx, c.prefix+summary.ID.String(), val, ttl).Err(); err != nil {
		return fmt.Errorf("redis summary set: %w", err)
	}
	return nil
}

// Invalidate drops a wallet's cached summary.
func (c *SummaryCache) Invalidate(ctx context.Context, walletID uuid.UUID) error {
	if err := c.client.Del(ctx, c.prefix+walletID.String()).Err(); err != nil {
		return fmt.Errorf("redis summary del: %w", err)
	}
	return nil
}
