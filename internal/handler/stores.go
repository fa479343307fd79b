package handler

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/middleware"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/model"
)

// The handlers depend on narrow store interfaces instead of the concrete
// repositories. The repositories satisfy them in production; tests plug
// in in-memory fakes. This keeps the ownership of every collaborator
// explicit: nothing here reaches for package-level state.

// UserStore is the slice of user persistence the handlers need.
type UserStore interface {
	Create(ctx context.Context, username, passwordHash string) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdateProfile(ctx context.Context, id uint64, username, passwordHash string) error
	DeleteWithTasks(ctx context.Context, id uint64) error
}

// TaskStore is the slice of task persistence the handlers need. Every
// method takes the owner id; there is no way to reach another user's
// tasks through this interface.
type TaskStore interface {
	Create(ctx context.Context, ownerID uint64, content string) (model.Task, error)
	ListByOwner(ctx context.Context, ownerID uint64) ([]model.Task, error)
	DeleteOwned(ctx context.Context, ownerID, taskID uint64) error
	ToggleOwned(ctx context.Context, ownerID, taskID uint64) error
}

// SessionWriter issues and revokes sessions. *session.Manager satisfies
// it.
type SessionWriter interface {
	Issue(ctx context.Context, userID uint64, remember bool) (string, error)
	Revoke(ctx context.Context, raw string) error
}

// currentUser returns the user stored in context by the RequireAuth
// middleware.
func currentUser(c echo.Context) (model.User, bool) {
	u, ok := c.Get(middleware.UserKey).(model.User)
	return u, ok
}

// currentToken returns the raw session token stored by RequireAuth.
func currentToken(c echo.Context) string {
	raw, _ := c.Get(middleware.TokenKey).(string)
	return raw
}
