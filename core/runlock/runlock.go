package runlock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// ErrHeld is returned when the named lease is already held by another run.
var ErrHeld = errors.New("run lease already held")

// Lease guards a named job against overlapping runs.
// Acquire returns a release function which must be called unconditionally,
// or ErrHeld when another run currently owns the name.
type Lease interface {
	Acquire(ctx context.Context, name string) (func(), error)
}

// New returns a redis-backed lease when an address is configured, otherwise
// an in-process lease. The in-process variant only guards a single process,
// which matches a deployment where one instance hosts the scheduler.
func New(cfg Config) (Lease, error) {
	if cfg.Addr == "" {
		return NewMemoryLease(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	return &redisLease{client: client, ttl: ttl}, nil
}

type redisLease struct {
	client *redis.Client
	ttl    time.Duration
}

func (l *redisLease) Acquire(ctx context.Context, name string) (func(), error) {
	key := "runlock:" + name
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}

	release := func() {
		// Delete only our own token; the TTL covers a crashed holder.
		// Best effort: a failure here just leaves the lease to expire.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		val, err := l.client.Get(ctx, key).Result()
		if err == nil && val == token {
			l.client.Del(ctx, key)
		}
	}
	return release, nil
}

// memoryLease guards runs within a single process.
type memoryLease struct {
	mu   sync.Mutex
	held map[string]bool
}

// NewMemoryLease creates an in-process Lease.
func NewMemoryLease() Lease {
	return &memoryLease{held: make(map[string]bool)}
}

func (l *memoryLease) Acquire(ctx context.Context, name string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.held[name] {
		return nil, ErrHeld
	}
	l.held[name] = true

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.held, name)
		})
	}
	return release, nil
}
