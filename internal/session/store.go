// Package session issues and resolves the opaque tokens that bind a
// browser to an authenticated user. The raw token travels only in the
// client cookie; server side it is stored keyed by its SHA-256 hash, so a
// leaked store never yields usable tokens.
package session

import (
	"context"
	"errors"
	"time"
)

// ErrNoSession is returned when a token does not resolve to a live
// session, whether it never existed, expired, or was revoked.
var ErrNoSession = errors.New("session not found")

// Store persists session records keyed by token hash. Implementations
// must expire records after the given TTL; callers never see expired
// entries.
type Store interface {
	Put(ctx context.Context, tokenHash string, userID uint64, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (uint64, error)
	Delete(ctx context.Context, tokenHash string) error
}
