package notify

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestDeduper(t *testing.T, ttl time.Duration) (*Deduper, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewDeduper(client, ttl), mr
}

func TestDeduper_FirstClaimWinsSecondLoses(t *testing.T) {
	d, _ := newTestDeduper(t, time.Hour)
	ctx := context.Background()

	first, err := d.Claim(ctx, "MA-280706178")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first {
		t.Fatal("expected first claim to win")
	}

	second, err := d.Claim(ctx, "MA-280706178")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second {
		t.Fatal("expected second claim to lose")
	}
}

func TestDeduper_DifferentOrdersIndependent(t *testing.T) {
	d, _ := newTestDeduper(t, time.Hour)
	ctx := context.Background()

	if ok, _ := d.Claim(ctx, "1111111"); !ok {
		t.Fatal("expected claim on first order")
	}
	if ok, _ := d.Claim(ctx, "2222222"); !ok {
		t.Fatal("expected claim on second order")
	}
}

func TestDeduper_ClaimExpiresAfterTTL(t *testing.T) {
	d, mr := newTestDeduper(t, time.Minute)
	ctx := context.Background()

	if ok, _ := d.Claim(ctx, "3333333"); !ok {
		t.Fatal("expected initial claim to win")
	}

	mr.FastForward(2 * time.Minute)

	if ok, _ := d.Claim(ctx, "3333333"); !ok {
		t.Fatal("expected claim after TTL expiry to win again")
	}
}

func TestDeduper_ReleaseAllowsRetry(t *testing.T) {
	d, _ := newTestDeduper(t, time.Hour)
	ctx := context.Background()

	if ok, _ := d.Claim(ctx, "4444444"); !ok {
		t.Fatal("expected initial claim to win")
	}
	if err := d.Release(ctx, "4444444"); err != nil {
		t.Fatalf("unexpected release error: %v", err)
	}
	if ok, _ := d.Claim(ctx, "4444444"); !ok {
		t.Fatal("expected claim after release to win")
	}
}
