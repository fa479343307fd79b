package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/flash"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/forms"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/repository"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/session"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/throttle"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/utils"
)

// AuthHandler bundles dependencies for the register/login/logout
// endpoints. The throttle is consulted before the user store on login,
// so a locked username costs no database work.
type AuthHandler struct {
	Users    UserStore
	Sessions SessionWriter
	Throttle *throttle.LoginThrottle
	Hasher   *utils.Hasher
	Cookies  *session.CookieCodec
	Flash    *flash.Manager
}

func NewAuthHandler(users UserStore, sessions SessionWriter, th *throttle.LoginThrottle, hasher *utils.Hasher, cookies *session.CookieCodec, fl *flash.Manager) *AuthHandler {
	return &AuthHandler{Users: users, Sessions: sessions, Throttle: th, Hasher: hasher, Cookies: cookies, Flash: fl}
}

// Index handles GET / and just points the browser at the login page.
func (h *AuthHandler) Index(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/login")
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c echo.Context) error {
	return h.renderRegister(c, http.StatusOK, forms.RegisterForm{}, nil)
}

// Register handles POST /register: validate, reject duplicates, hash the
// password, create the account and send the user to the login page.
func (h *AuthHandler) Register(c echo.Context) error {
	var form forms.RegisterForm
	if err := c.Bind(&form); err != nil {
		return h.renderRegister(c, http.StatusBadRequest, form, []string{"Invalid input."})
	}
	if err := c.Validate(form); err != nil {
		return h.renderRegister(c, http.StatusOK, form, forms.Messages(err))
	}

	hash, err := h.Hasher.Hash(form.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not hash password")
	}

	_, err = h.Users.Create(c.Request().Context(), form.Username, hash)
	if errors.Is(err, repository.ErrUsernameTaken) {
		return h.renderRegister(c, http.StatusOK, form, []string{"That username is already taken."})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	h.Flash.Add(c, "success", "Account created successfully.")
	return c.Redirect(http.StatusFound, "/login")
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c echo.Context) error {
	return h.renderLogin(c, http.StatusOK, forms.LoginForm{}, nil)
}

// Login handles POST /login. Order matters and is load-bearing:
//
//  1. throttle check — a locked username is rejected before the store is
//     touched, with a message that reveals throttle state but not
//     whether the account exists;
//  2. credential check — unknown username and wrong password take the
//     same path and produce the same message;
//  3. on success the throttle record is cleared and a session issued.
func (h *AuthHandler) Login(c echo.Context) error {
	var form forms.LoginForm
	if err := c.Bind(&form); err != nil {
		return h.renderLogin(c, http.StatusBadRequest, form, []string{"Invalid input."})
	}

	if blocked, _ := h.Throttle.Blocked(form.Username); blocked {
		return h.renderLogin(c, http.StatusOK, form,
			[]string{"Too many failed attempts. Try again later."})
	}

	if err := c.Validate(form); err != nil {
		return h.renderLogin(c, http.StatusOK, form, forms.Messages(err))
	}

	ctx := c.Request().Context()
	u, err := h.Users.GetByUsername(ctx, form.Username)
	if errors.Is(err, repository.ErrUserNotFound) || (err == nil && !h.Hasher.Verify(u.PasswordHash, form.Password)) {
		h.Throttle.Fail(form.Username)
		return h.renderLogin(c, http.StatusOK, form,
			[]string{"Invalid username or password."})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	h.Throttle.Reset(form.Username)

	raw, err := h.Sessions.Issue(ctx, u.ID, form.Remember)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not establish session")
	}
	if err := h.Cookies.Write(c, raw, form.Remember); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not establish session")
	}

	h.Flash.Add(c, "success", "Logged in successfully.")
	return c.Redirect(http.StatusFound, "/dashboard")
}

// Logout handles GET /logout. The session is revoked server-side before
// the cookie is cleared, so the token is dead even if the client keeps
// it.
func (h *AuthHandler) Logout(c echo.Context) error {
	if raw := currentToken(c); raw != "" {
		_ = h.Sessions.Revoke(c.Request().Context(), raw)
	}
	h.Cookies.Clear(c)
	h.Flash.Add(c, "info", "Logged out.")
	return c.Redirect(http.StatusFound, "/login")
}

func (h *AuthHandler) renderRegister(c echo.Context, status int, form forms.RegisterForm, errs []string) error {
	return c.Render(status, "register.html", echo.Map{
		"Title":    "Register",
		"Flashes":  h.Flash.Take(c),
		"Errors":   errs,
		"Username": form.Username,
	})
}

func (h *AuthHandler) renderLogin(c echo.Context, status int, form forms.LoginForm, errs []string) error {
	return c.Render(status, "login.html", echo.Map{
		"Title":    "Sign in",
		"Flashes":  h.Flash.Take(c),
		"Errors":   errs,
		"Username": form.Username,
	})
}
