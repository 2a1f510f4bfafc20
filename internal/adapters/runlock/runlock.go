// Package runlock serializes ingestion runs with a Redis lock.
//
// Two ingestion runs racing against the same store are only protected by
// the UNIQUE constraints on companies.name and job_postings.external_id;
// the lock keeps them from overlapping in the first place.
package runlock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when another run already holds the lock.
var ErrHeld = errors.New("ingestion lock already held")

// releaseScript deletes the lock only when this run still owns it, so a
// run that outlived its TTL cannot release a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Lock is a single-holder Redis lock with a TTL bounding how long a
// crashed run can keep it.
type Lock struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
	token  string
}

// New creates a run lock on the given key.
func New(client redis.UniversalClient, key string, ttl time.Duration) *Lock {
	return &Lock{
		client: client,
		key:    key,
		ttl:    ttl,
		token:  uuid.NewString(),
	}
}

// Acquire takes the lock, or reports ErrHeld when another run has it.
func (l *Lock) Acquire(ctx context.Context) error {
	ok, err := l.client.SetNX(ctx, l.key, l.token, l.ttl).Result()
	if err != nil {
		return fmt.Errorf("acquire ingestion lock: %w", err)
	}
	if !ok {
		return ErrHeld
	}
	return nil
}

// Release drops the lock if this run still owns it.
func (l *Lock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Err(); err != nil &&
		!errors.Is(err, redis.Nil) {
		return fmt.Errorf("release ingestion lock: %w", err)
	}
	return nil
}
