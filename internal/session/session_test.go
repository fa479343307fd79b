package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueResolveRevoke(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour, 30*24*time.Hour)

	raw, err := m.Issue(ctx, 42, false)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	id, err := m.Resolve(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), id)

	require.NoError(t, m.Revoke(ctx, raw))
	_, err = m.Resolve(ctx, raw)
	assert.ErrorIs(t, err, ErrNoSession)

	// Revoking again is a no-op, not an error.
	assert.NoError(t, m.Revoke(ctx, raw))
}

func TestTokensAreUniqueAndOpaque(t *testing.T) {
	ctx := context.Background()
	m := NewManager(NewMemoryStore(), time.Hour, time.Hour)

	a, err := m.Issue(ctx, 1, false)
	require.NoError(t, err)
	b, err := m.Issue(ctx, 1, false)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, a, 96, "48 random bytes hex encoded")
	assert.Regexp(t, "^[0-9a-f]+$", a)
}

func TestResolveUnknownToken(t *testing.T) {
	m := NewManager(NewMemoryStore(), time.Hour, time.Hour)
	_, err := m.Resolve(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	require.NoError(t, store.Put(ctx, "abc", 7, time.Hour))

	id, err := store.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	now = now.Add(2 * time.Hour)
	_, err = store.Get(ctx, "abc")
	assert.ErrorIs(t, err, ErrNoSession)

	// Lazy expiry removed the entry.
	store.mu.Lock()
	_, ok := store.entries["abc"]
	store.mu.Unlock()
	assert.False(t, ok)
}

func TestRememberExtendsTTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	m := NewManager(store, time.Hour, 48*time.Hour)

	short, err := m.Issue(ctx, 1, false)
	require.NoError(t, err)
	long, err := m.Issue(ctx, 1, true)
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = m.Resolve(ctx, short)
	assert.ErrorIs(t, err, ErrNoSession)
	id, err := m.Resolve(ctx, long)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)
}
