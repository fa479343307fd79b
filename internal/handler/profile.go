package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/flash"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/forms"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/repository"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/session"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/utils"
)

// ProfileHandler serves profile viewing/editing and account deletion.
type ProfileHandler struct {
	Users    UserStore
	Sessions SessionWriter
	Hasher   *utils.Hasher
	Cookies  *session.CookieCodec
	Flash    *flash.Manager
}

func NewProfileHandler(users UserStore, sessions SessionWriter, hasher *utils.Hasher, cookies *session.CookieCodec, fl *flash.Manager) *ProfileHandler {
	return &ProfileHandler{Users: users, Sessions: sessions, Hasher: hasher, Cookies: cookies, Flash: fl}
}

// ProfilePage handles GET /profile with the username pre-filled.
func (h *ProfileHandler) ProfilePage(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	return h.renderProfile(c, http.StatusOK, u.Username, nil)
}

// UpdateProfile handles POST /profile. The username always updates; the
// password only when the optional field was filled in.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	var form forms.ProfileForm
	if err := c.Bind(&form); err != nil {
		return h.renderProfile(c, http.StatusBadRequest, form.Username, []string{"Invalid input."})
	}
	if err := c.Validate(form); err != nil {
		return h.renderProfile(c, http.StatusOK, form.Username, forms.Messages(err))
	}

	hash := ""
	if form.Password != "" {
		var err error
		hash, err = h.Hasher.Hash(form.Password)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not hash password")
		}
	}

	err := h.Users.UpdateProfile(c.Request().Context(), u.ID, form.Username, hash)
	if errors.Is(err, repository.ErrUsernameTaken) {
		return h.renderProfile(c, http.StatusOK, form.Username, []string{"That username is already taken."})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	h.Flash.Add(c, "success", "Profile updated.")
	return c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteAccount handles POST /delete_account. Tasks and user go in one
// transaction inside the store; afterwards the session is revoked and
// the cookie cleared, leaving nothing that still authenticates.
func (h *ProfileHandler) DeleteAccount(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}

	ctx := c.Request().Context()
	if err := h.Users.DeleteWithTasks(ctx, u.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	if raw := currentToken(c); raw != "" {
		_ = h.Sessions.Revoke(ctx, raw)
	}
	h.Cookies.Clear(c)

	h.Flash.Add(c, "info", "Your account has been deleted.")
	return c.Redirect(http.StatusFound, "/register")
}

func (h *ProfileHandler) renderProfile(c echo.Context, status int, username string, errs []string) error {
	return c.Render(status, "profile.html", echo.Map{
		"Title":    "Profile",
		"Flashes":  h.Flash.Take(c),
		"Errors":   errs,
		"Username": username,
	})
}
