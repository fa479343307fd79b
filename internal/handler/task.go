package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/flash"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/forms"
	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/repository"
)

// TaskHandler serves the dashboard and the per-task mutations. All
// routes sit behind RequireAuth, so a user is always present in
// context; every store call passes that user's id, which is what makes
// one user's tasks invisible to another.
type TaskHandler struct {
	Tasks TaskStore
	Flash *flash.Manager
}

func NewTaskHandler(tasks TaskStore, fl *flash.Manager) *TaskHandler {
	return &TaskHandler{Tasks: tasks, Flash: fl}
}

// Dashboard handles GET /dashboard: the current user's tasks in
// insertion order plus the add-task form.
func (h *TaskHandler) Dashboard(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	return h.renderDashboard(c, http.StatusOK, u.Username, forms.TaskForm{}, nil)
}

// AddTask handles POST /dashboard.
func (h *TaskHandler) AddTask(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	var form forms.TaskForm
	if err := c.Bind(&form); err != nil {
		return h.renderDashboard(c, http.StatusBadRequest, u.Username, form, []string{"Invalid input."})
	}
	if err := c.Validate(form); err != nil {
		return h.renderDashboard(c, http.StatusOK, u.Username, form, forms.Messages(err))
	}

	if _, err := h.Tasks.Create(c.Request().Context(), u.ID, form.Content); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	h.Flash.Add(c, "success", "Task added.")
	return c.Redirect(http.StatusFound, "/dashboard")
}

// DeleteTask handles POST /delete_task/:id. A task that does not exist
// and a task owned by someone else both produce 404; the store cannot
// tell them apart and neither should the response.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	err = h.Tasks.DeleteOwned(c.Request().Context(), u.ID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}

	h.Flash.Add(c, "info", "Task deleted.")
	return c.Redirect(http.StatusFound, "/dashboard")
}

// ToggleTask handles POST /toggle_task/:id, flipping the done flag under
// the same ownership scoping as delete.
func (h *TaskHandler) ToggleTask(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusFound, "/login")
	}
	taskID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || taskID == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}

	err = h.Tasks.ToggleOwned(c.Request().Context(), u.ID, taskID)
	if errors.Is(err, repository.ErrTaskNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "task not found")
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.Redirect(http.StatusFound, "/dashboard")
}

func (h *TaskHandler) renderDashboard(c echo.Context, status int, username string, form forms.TaskForm, errs []string) error {
	u, _ := currentUser(c)
	tasks, err := h.Tasks.ListByOwner(c.Request().Context(), u.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "database error")
	}
	return c.Render(status, "dashboard.html", echo.Map{
		"Title":       "Dashboard",
		"Flashes":     h.Flash.Take(c),
		"Errors":      errs,
		"CurrentUser": username,
		"Tasks":       tasks,
		"Content":     form.Content,
	})
}
