package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/JeanneDioso/storefront/internal/models"
	"github.com/go-redis/redis/v8"
)

// ThrottleRepository stores login attempt counters as keyed, TTL-bound redis
// records, so the throttle holds across multiple server instances. Counter
// and lock share the decay window: inactivity expires both.
type ThrottleRepository struct {
	client *redis.Client
}

func NewThrottleRepository(client *redis.Client) *ThrottleRepository {
	return &ThrottleRepository{client: client}
}

func attemptsKey(fingerprint string) string {
	return "login_attempts:" + fingerprint
}

func lockKey(fingerprint string) string {
	return "login_attempts:" + fingerprint + ":lock"
}

// LockRemaining returns the time left on an identity's lockout, or zero if
// the identity is not locked.
func (r *ThrottleRepository) LockRemaining(ctx context.Context, fingerprint string) (time.Duration, error) {
	ttl, err := r.client.TTL(ctx, lockKey(fingerprint)).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	// TTL is negative when the key is missing or has no expiry
	if ttl <= 0 {
		return 0, nil
	}

	return ttl, nil
}

// Increment bumps the failed-attempt counter, starting the decay window on
// the first failure, and returns the post-increment count. SETNX and INCR run
// in one MULTI/EXEC so the counter can never exist without its TTL; a counter
// that never decays would re-lock the identity on every failure forever.
func (r *ThrottleRepository) Increment(ctx context.Context, fingerprint string, decay time.Duration) (int64, error) {
	pipe := r.client.TxPipeline()
	pipe.SetNX(ctx, attemptsKey(fingerprint), 0, decay)
	incr := pipe.Incr(ctx, attemptsKey(fingerprint))

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("%w: %v", models.ErrStorage, err)
	}

	return incr.Val(), nil
}

// Lock marks an identity as locked out for the decay window.
func (r *ThrottleRepository) Lock(ctx context.Context, fingerprint string, decay time.Duration) error {
	if err := r.client.Set(ctx, lockKey(fingerprint), 1, decay).Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return nil
}

// Reset clears the counter and any lock for an identity.
func (r *ThrottleRepository) Reset(ctx context.Context, fingerprint string) error {
	if err := r.client.Del(ctx, attemptsKey(fingerprint), lockKey(fingerprint)).Err(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrStorage, err)
	}
	return nil
}
