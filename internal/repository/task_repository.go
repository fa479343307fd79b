package repository

import (
	"context"
	"database/sql"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/model"
)

// TaskRepo provides persistence for tasks. Every read or mutation is
// scoped to the owning user in the WHERE clause itself, so ownership is
// enforced by the query and not by a separate check that could race or be
// forgotten.
type TaskRepo struct{ DB *sql.DB }

func NewTaskRepo(db *sql.DB) *TaskRepo { return &TaskRepo{DB: db} }

// Create inserts a task for the given owner and returns the stored row.
// The done flag starts false via the column default.
func (r *TaskRepo) Create(ctx context.Context, ownerID uint64, content string) (model.Task, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tasks (content, user_id) VALUES (?,?)",
		content, ownerID)
	if err != nil {
		return model.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Task{}, err
	}
	var t model.Task
	err = r.DB.QueryRowContext(ctx,
		"SELECT id, content, done, user_id, created_at FROM tasks WHERE id=? LIMIT 1",
		id).Scan(&t.ID, &t.Content, &t.Done, &t.UserID, &t.CreatedAt)
	return t, err
}

// ListByOwner returns every task owned by ownerID in insertion order.
func (r *TaskRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Task, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, content, done, user_id, created_at FROM tasks WHERE user_id=? ORDER BY id ASC",
		ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Content, &t.Done, &t.UserID, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// DeleteOwned removes a task only when it belongs to ownerID. A missing
// task and a task owned by someone else both come back as
// ErrTaskNotFound.
func (r *TaskRepo) DeleteOwned(ctx context.Context, ownerID, taskID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM tasks WHERE id=? AND user_id=?",
		taskID, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// ToggleOwned flips the done flag of a task owned by ownerID.
func (r *TaskRepo) ToggleOwned(ctx context.Context, ownerID, taskID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE tasks SET done = NOT done WHERE id=? AND user_id=?",
		taskID, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}
