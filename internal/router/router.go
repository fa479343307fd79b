// Package router defines how HTTP routes are registered for the app.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/handler"
)

// RegisterPublic registers the routes that do not require a session:
// the health check, the login/register pages and their form posts.
func RegisterPublic(e *echo.Echo, a *handler.AuthHandler) {
	e.GET("/healthz", handler.Health)
	e.GET("/", a.Index)
	e.GET("/register", a.RegisterPage)
	e.POST("/register", a.Register)
	e.GET("/login", a.LoginPage)
	e.POST("/login", a.Login)
}

// RegisterPrivate registers every route that requires an authenticated
// session. The RequireAuth middleware runs before each handler and puts
// the current user into the request context.
func RegisterPrivate(e *echo.Echo, a *handler.AuthHandler, t *handler.TaskHandler, p *handler.ProfileHandler, requireAuth echo.MiddlewareFunc) {
	g := e.Group("", requireAuth)
	g.GET("/dashboard", t.Dashboard)
	g.POST("/dashboard", t.AddTask)
	g.POST("/delete_task/:id", t.DeleteTask)
	g.POST("/toggle_task/:id", t.ToggleTask)
	g.GET("/profile", p.ProfilePage)
	g.POST("/profile", p.UpdateProfile)
	g.POST("/delete_account", p.DeleteAccount)
	g.GET("/logout", a.Logout)
}
