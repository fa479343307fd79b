package model

import "time"

// Task represents a single to-do item owned by exactly one user.
// The owning user is referenced through the UserID foreign key;
// every query that reads or mutates a task is scoped to that
// owner, so a task is never visible outside its owner's session.
//
// Fields:
//  ID        – primary key identifier.
//  Content   – task text, 1–100 characters.
//  Done      – completion flag, false on creation.
//  UserID    – owner of the task (tasks.user_id → users.id).
//  CreatedAt – creation timestamp.
type Task struct {
	ID        uint64    // tasks.id
	Content   string    // tasks.content
	Done      bool      // tasks.done
	UserID    uint64    // tasks.user_id
	CreatedAt time.Time // tasks.created_at
}
