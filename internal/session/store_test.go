package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comp2537/web-portal/internal/users"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStore(client, time.Hour), mr
}

func TestSaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := Session{
		ID:        NewToken(),
		Name:      "Alice",
		Email:     "a@x.com",
		Role:      users.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Equal(t, users.RoleUser, got.Role)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestGetMissing(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Get(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveRejectsExpired(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Save(context.Background(), Session{
		ID:        NewToken(),
		ExpiresAt: time.Now().Add(-time.Minute),
	})
	assert.Error(t, err)
}

func TestSaveRequiresID(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.Save(context.Background(), Session{
		ExpiresAt: time.Now().Add(time.Hour),
	})
	assert.Error(t, err)
}

func TestTTLExpiryRemovesSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := Session{ID: NewToken(), Email: "a@x.com", Role: users.RoleUser,
		ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Save(ctx, sess))

	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStaleExpiresAtRejectedOnRead(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	// A blob whose embedded expiry already passed, even though the redis
	// key still exists.
	mr.Set("session:stale", `{"name":"Alice","email":"a@x.com","role":"user","expires_at":"2000-01-01T00:00:00Z"}`)

	_, err := store.Get(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists("session:stale"), "stale session should be cleaned up")
}

func TestDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := Session{ID: NewToken(), Email: "a@x.com", Role: users.RoleUser,
		ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Save(ctx, sess))

	require.NoError(t, store.Delete(ctx, sess.ID))
	_, err := store.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting again, or deleting something that never existed, is fine.
	assert.NoError(t, store.Delete(ctx, sess.ID))
	assert.NoError(t, store.Delete(ctx, "never-existed"))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestCounter(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	id := NewToken()

	n, err := store.Counter(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n, "counter starts at zero")

	n, err = store.IncrCounter(ctx, id, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = store.IncrCounter(ctx, id, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	// No floor: the counter may go negative.
	n, err = store.IncrCounter(ctx, id, -1)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), n)
}

func TestCounterScopedPerSession(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	_, err := store.IncrCounter(ctx, "one", 5)
	require.NoError(t, err)

	n, err := store.Counter(ctx, "two")
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestStyles(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	id := NewToken()

	styles, err := store.Styles(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, styles.Color)
	assert.Empty(t, styles.Bg)

	require.NoError(t, store.SaveStyles(ctx, id, Styles{Color: "teal", Bg: "ivory"}))

	styles, err = store.Styles(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "teal", styles.Color)
	assert.Equal(t, "ivory", styles.Bg)
}

func TestDeleteClearsScratchState(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	id := NewToken()

	_, err := store.IncrCounter(ctx, id, 3)
	require.NoError(t, err)
	require.NoError(t, store.SaveStyles(ctx, id, Styles{Color: "red", Bg: "black"}))

	require.NoError(t, store.Delete(ctx, id))

	n, err := store.Counter(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
	styles, err := store.Styles(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, styles.Color)
}

func TestNewTokenUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok := NewToken()
		assert.False(t, seen[tok])
		seen[tok] = true
	}
}
