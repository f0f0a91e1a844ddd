package session

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tooley/tooley/internal/store"
)

func newTestSQLStore(t *testing.T, ttl time.Duration) (*SQLStore, *fakeClock) {
	t.Helper()
	db, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	clock := &fakeClock{t: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)}
	st := NewSQLStore(db.SnapshotRepo(), ttl)
	st.now = clock.now
	return st, clock
}

func TestSQLStore_RoundTrip(t *testing.T) {
	st, _ := newTestSQLStore(t, time.Hour)
	s := New("local")
	s.State = StateAwaitingCountry
	s.Params.Topic = "Maps"
	require.NoError(t, st.Save(t.Context(), s))

	got, err := st.Get(t.Context(), "local")
	require.NoError(t, err)
	assert.Equal(t, StateAwaitingCountry, got.State)
	assert.Equal(t, "Maps", got.Params.Topic)
}

func TestSQLStore_ExpiryAndEvict(t *testing.T) {
	st, clock := newTestSQLStore(t, time.Hour)
	require.NoError(t, st.Save(t.Context(), New("a")))
	clock.advance(30 * time.Minute)
	require.NoError(t, st.Save(t.Context(), New("b")))

	n, err := st.Evict(t.Context(), 20*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = st.Load(t.Context(), "a")
	assert.True(t, errors.Is(err, ErrNotFound))

	clock.advance(2 * time.Hour)
	_, err = st.Load(t.Context(), "b")
	assert.True(t, errors.Is(err, ErrNotFound))
}
