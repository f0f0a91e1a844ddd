package session

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooley/tooley/internal/store"
)

func TestOpenBackends(t *testing.T) {
	ctx := t.Context()

	st, closer, err := Open(ctx, DefaultConfig(), nil, nil)
	require.NoError(t, err)
	assert.Nil(t, closer)
	assert.IsType(t, &MemoryStore{}, st)

	mr := miniredis.RunT(t)
	cfg := DefaultConfig()
	cfg.Backend = "redis"
	cfg.Redis.Addr = mr.Addr()
	st, closer, err = Open(ctx, cfg, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, closer)
	t.Cleanup(func() { closer.Close() })
	assert.IsType(t, &RedisStore{}, st)

	cfg.Backend = "sqlite"
	_, _, err = Open(ctx, cfg, nil, nil)
	assert.Error(t, err, "sqlite needs a database")

	db, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	st, _, err = Open(ctx, cfg, db, nil)
	require.NoError(t, err)
	assert.IsType(t, &SQLStore{}, st)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
	assert.Error(t, Config{Backend: "etcd"}.Validate())
	assert.Error(t, Config{Backend: "redis"}.Validate())
}
