package session

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/tooley/tooley/internal/logger"
	"github.com/tooley/tooley/internal/store"
)

// Config selects the session backend.
type Config struct {
	// Backend is memory, redis or sqlite.
	Backend      string        `yaml:"backend"`
	TTL          time.Duration `yaml:"ttl"`
	JanitorEvery time.Duration `yaml:"janitor_every"`
	Redis        RedisConfig   `yaml:"redis"`
}

// RedisConfig locates the redis server.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// DefaultConfig keeps sessions in memory for a day.
func DefaultConfig() Config {
	return Config{
		Backend:      "memory",
		TTL:          24 * time.Hour,
		JanitorEvery: 10 * time.Minute,
		Redis:        RedisConfig{Addr: "localhost:6379", Prefix: "tooley:session:"},
	}
}

// Validate checks the backend name.
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "", "memory", "sqlite":
		return nil
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("session: redis backend needs an address")
		}
		return nil
	}
	return fmt.Errorf("session: unknown backend %q", c.Backend)
}

// Open builds the configured Store. The memory backend starts its janitor
// on ctx. The closer is nil when nothing needs closing.
func Open(ctx context.Context, cfg Config, db *store.Store, log *logger.Logger) (Store, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	switch strings.ToLower(cfg.Backend) {
	case "redis":
		rdb, err := DialRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		return NewRedisStore(rdb, cfg.Redis.Prefix, cfg.TTL), rdb, nil
	case "sqlite":
		if db == nil {
			return nil, nil, fmt.Errorf("session: sqlite backend needs a database")
		}
		return NewSQLStore(db.SnapshotRepo(), cfg.TTL), nil, nil
	}
	m := NewMemoryStore(cfg.TTL, log)
	if cfg.JanitorEvery > 0 {
		m.StartJanitor(ctx, cfg.JanitorEvery)
	}
	return m, nil, nil
}
