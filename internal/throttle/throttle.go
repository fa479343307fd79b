// Package throttle implements the per-username login attempt counter that
// locks an account name out after too many consecutive failures. The
// state is process-local and deliberately not persisted: a restart clears
// all records, and no background sweeper runs — expiry is evaluated
// lazily on the next attempt for the same username.
package throttle

import (
	"sync"
	"time"
)

// attempt tracks failures for one username key. A record exists only for
// usernames with at least one failure since the last reset.
type attempt struct {
	count       int       // failed attempts so far
	lastFailure time.Time // when the most recent failure happened
}

// LoginThrottle is a mutex-guarded map of attempt records. The mutex
// covers the whole map so that increment-and-check is atomic under
// concurrent requests for the same username.
type LoginThrottle struct {
	mu       sync.Mutex
	attempts map[string]*attempt

	maxAttempts   int
	blockDuration time.Duration
	now           func() time.Time
}

// New returns a LoginThrottle that locks a username after maxAttempts
// consecutive failures for blockDuration. Values at or below zero fall
// back to the defaults of 5 attempts and 5 minutes.
func New(maxAttempts int, blockDuration time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if blockDuration <= 0 {
		blockDuration = 5 * time.Minute
	}
	return &LoginThrottle{
		attempts:      make(map[string]*attempt),
		maxAttempts:   maxAttempts,
		blockDuration: blockDuration,
		now:           time.Now,
	}
}

// Blocked reports whether username is currently locked out, and if so for
// how much longer. A record whose block window has elapsed is removed
// here rather than by a sweeper, which also clears the accumulated count
// so the next failure starts a fresh window.
func (t *LoginThrottle) Blocked(username string) (bool, time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.attempts[username]
	if !ok || a.count < t.maxAttempts {
		return false, 0
	}
	elapsed := t.now().Sub(a.lastFailure)
	if elapsed >= t.blockDuration {
		delete(t.attempts, username)
		return false, 0
	}
	return true, t.blockDuration - elapsed
}

// Fail records a failed credential check for username, stamping the
// current time. Reaching maxAttempts moves the record into the locked
// state checked by Blocked.
func (t *LoginThrottle) Fail(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	a, ok := t.attempts[username]
	if !ok {
		a = &attempt{}
		t.attempts[username] = a
	}
	a.count++
	a.lastFailure = t.now()
}

// Reset removes the record for username regardless of its state. Called
// after a successful login.
func (t *LoginThrottle) Reset(username string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, username)
}
