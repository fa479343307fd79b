package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/flash"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/model"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/session"
)

// Context keys under which RequireAuth stores the authenticated user and
// the raw session token. Handlers read them via c.Get.
const (
	UserKey  = "user"
	TokenKey = "session_token"
)

// SessionResolver resolves a raw session token to a user id.
// *session.Manager satisfies it.
type SessionResolver interface {
	Resolve(ctx context.Context, raw string) (uint64, error)
}

// UserLoader loads a user by primary key. *repository.UserRepo satisfies
// it.
type UserLoader interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// RequireAuth returns a middleware that gates a route group behind a
// live session. The session cookie is decoded, resolved to a user id and
// the user loaded from the store; the three pieces can each fail
// independently (tampered cookie, expired session, deleted account) and
// every failure takes the same exit: an info flash and a redirect to the
// login page.
func RequireAuth(cookies *session.CookieCodec, sessions SessionResolver, users UserLoader, flashes *flash.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			toLogin := func() error {
				flashes.Add(c, "info", "Please log in to access this page.")
				return c.Redirect(http.StatusFound, "/login")
			}

			raw, err := cookies.Read(c)
			if err != nil {
				return toLogin()
			}
			ctx := c.Request().Context()
			userID, err := sessions.Resolve(ctx, raw)
			if err != nil {
				cookies.Clear(c)
				return toLogin()
			}
			u, err := users.GetByID(ctx, userID)
			if err != nil {
				// Session outlived the account (deleted elsewhere).
				cookies.Clear(c)
				return toLogin()
			}

			c.Set(UserKey, u)
			c.Set(TokenKey, raw)
			return next(c)
		}
	}
}
