package session

import (
	"crypto/sha256"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
)

// CookieName is the name of the session cookie.
const CookieName = "session"

// CookieCodec writes and reads the session cookie. The cookie value is
// the raw token authenticated (HMAC-signed, not encrypted) with a key
// derived from the application secret, so a tampered cookie fails to
// decode before it ever reaches the store.
type CookieCodec struct {
	sc          *securecookie.SecureCookie
	rememberTTL time.Duration
}

// NewCookieCodec derives the signing key from secret and returns a codec.
// rememberTTL bounds how old a cookie may be and still decode; it must
// match the longest server-side session lifetime.
func NewCookieCodec(secret string, rememberTTL time.Duration) *CookieCodec {
	key := sha256.Sum256([]byte(secret))
	sc := securecookie.New(key[:], nil)
	sc.MaxAge(int(rememberTTL.Seconds()))
	return &CookieCodec{sc: sc, rememberTTL: rememberTTL}
}

// Write sets the session cookie carrying raw. With remember the cookie
// persists for the remember lifetime; without it the cookie dies with
// the browser session (MaxAge 0).
func (cc *CookieCodec) Write(c echo.Context, raw string, remember bool) error {
	encoded, err := cc.sc.Encode(CookieName, raw)
	if err != nil {
		return err
	}
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.MaxAge = int(cc.rememberTTL.Seconds())
	}
	c.SetCookie(cookie)
	return nil
}

// Read returns the raw token from the request's session cookie. Missing,
// tampered and oversized cookies all come back as ErrNoSession.
func (cc *CookieCodec) Read(c echo.Context) (string, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return "", ErrNoSession
	}
	var raw string
	if err := cc.sc.Decode(CookieName, cookie.Value, &raw); err != nil {
		return "", ErrNoSession
	}
	return raw, nil
}

// Clear expires the session cookie on the client.
func (cc *CookieCodec) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
