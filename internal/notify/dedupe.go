package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupeKeyPrefix = "notified:"

// Deduper suppresses repeat notifications for the same order number within a
// TTL window. The claim is a redis SET NX, so concurrent dispatchers agree
// on exactly one winner.
type Deduper struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewDeduper(client redis.UniversalClient, ttl time.Duration) *Deduper {
	return &Deduper{client: client, ttl: ttl}
}

// Claim returns true when this caller is the first to notify the order
// within the window.
func (d *Deduper) Claim(ctx context.Context, orderNumber string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupeKeyPrefix+orderNumber, time.Now().Format(time.RFC3339), d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedupe claim %q: %w", orderNumber, err)
	}
	return ok, nil
}

// Release drops the claim so the order can be notified again, used when
// every channel failed and the order should be retried on the next run.
func (d *Deduper) Release(ctx context.Context, orderNumber string) error {
	if err := d.client.Del(ctx, dedupeKeyPrefix+orderNumber).Err(); err != nil {
		return fmt.Errorf("dedupe release %q: %w", orderNumber, err)
	}
	return nil
}
