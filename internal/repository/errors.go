// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver error strings themselves. For example,
// ErrUsernameTaken signals a registration or profile edit that collides
// with an existing account, while ErrTaskNotFound covers both a task id
// that does not exist and one owned by a different user — the two cases
// are deliberately indistinguishable to the caller.
package repository

import "errors"

// ErrUsernameTaken is returned when creating or renaming a user would
// violate the uniqueness of usernames. Handlers should re-render the
// form with a duplicate-username message.
var ErrUsernameTaken = errors.New("username already taken")

// ErrUserNotFound is returned when no user matches the given id or
// username.
var ErrUserNotFound = errors.New("user not found")

// ErrTaskNotFound is returned when no task matches the given id within
// the requesting owner's tasks. Handlers should translate this into an
// HTTP 404 response.
var ErrTaskNotFound = errors.New("task not found")
