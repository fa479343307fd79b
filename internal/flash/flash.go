// Package flash carries one-shot notification messages across a redirect,
// the way Flask's flash()/get_flashed_messages pair does: a handler adds
// messages before redirecting, the next rendered page consumes and clears
// them. Messages ride in an authenticated cookie so they survive the
// round trip through the client without being forgeable.
package flash

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

const cookieName = "flash"

// contextKey accumulates messages added during the current request so
// that several Add calls end up in one cookie.
const contextKey = "flash.pending"

// Message is a single notification with a display category
// ("success", "danger", "info").
type Message struct {
	Category string
	Text     string
}

// Manager encodes and decodes the flash cookie.
type Manager struct{ sc *securecookie.SecureCookie }

// NewManager derives the cookie signing key from the application secret.
func NewManager(secret string) *Manager {
	key := sha256.Sum256([]byte("flash:" + secret))
	return &Manager{sc: securecookie.New(key[:], nil)}
}

// Add queues a message for the next rendered page.
func (m *Manager) Add(c echo.Context, category, text string) {
	pending, _ := c.Get(contextKey).([]Message)
	pending = append(pending, Message{Category: category, Text: text})
	c.Set(contextKey, pending)

	encoded, err := m.sc.Encode(cookieName, pending)
	if err != nil {
		return
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Take returns the messages queued by the previous request and clears
// the cookie. A missing or tampered cookie yields no messages.
func (m *Manager) Take(c echo.Context) []Message {
	cookie, err := c.Cookie(cookieName)
	if err != nil {
		return nil
	}
	var msgs []Message
	if err := m.sc.Decode(cookieName, cookie.Value, &msgs); err != nil {
		msgs = nil
	}
	c.SetCookie(&http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return msgs
}
