package session

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Manager issues, resolves and revokes session tokens against a Store.
// It is decoupled from any web framework: handlers pass raw token
// strings in and get user ids out.
type Manager struct {
	store       Store
	ttl         time.Duration // lifetime without "remember me"
	rememberTTL time.Duration // lifetime with "remember me"
}

// NewManager returns a Manager over store with the given lifetimes.
func NewManager(store Store, ttl, rememberTTL time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl, rememberTTL: rememberTTL}
}

// Issue establishes a session for userID and returns the raw token to be
// sent to the client. remember extends the server-side lifetime to match
// the persistent cookie.
func (m *Manager) Issue(ctx context.Context, userID uint64, remember bool) (string, error) {
	raw, err := randomHex(48) // 48 bytes -> 96 hex chars
	if err != nil {
		return "", err
	}
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}
	if err := m.store.Put(ctx, hashToken(raw), userID, ttl); err != nil {
		return "", err
	}
	return raw, nil
}

// Resolve returns the user id bound to raw, or ErrNoSession when the
// token is unknown, expired or revoked.
func (m *Manager) Resolve(ctx context.Context, raw string) (uint64, error) {
	return m.store.Get(ctx, hashToken(raw))
}

// Revoke invalidates raw immediately. Revoking an unknown token is not
// an error.
func (m *Manager) Revoke(ctx context.Context, raw string) error {
	return m.store.Delete(ctx, hashToken(raw))
}

// hashToken returns the SHA-256 hex digest under which a raw token is
// stored. Only the digest ever reaches the store.
func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
