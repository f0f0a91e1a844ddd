package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions as JSON values with a native TTL, so sessions
// survive restarts and are shared between replicas.
type RedisStore struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
	now    func() time.Time
}

// NewRedisStore uses rdb for storage. Keys are prefix+id.
func NewRedisStore(rdb *goredis.Client, prefix string, ttl time.Duration) *RedisStore {
	if prefix == "" {
		prefix = "tooley:session:"
	}
	return &RedisStore{rdb: rdb, prefix: prefix, ttl: ttl, now: time.Now}
}

// DialRedis connects and pings the server.
func DialRedis(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	return getOrCreate(ctx, r, id)
}

func (r *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	raw, err := r.rdb.Get(ctx, r.prefix+id).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %w: %v", ErrCorrupt, err)
	}
	return &s, nil
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	s.UpdatedAt = r.now()
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.rdb.Set(ctx, r.prefix+s.ID, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Evict is a no-op: redis expires keys itself.
func (r *RedisStore) Evict(context.Context, time.Duration) (int, error) {
	return 0, nil
}
