package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/damsolebgdu91/Projet-Fil-Rouge/internal/model"
)

// UserRepo provides persistence for user accounts. Username uniqueness is
// owned by the database (UNIQUE KEY on users.username); the repository
// translates the driver's duplicate-key error into ErrUsernameTaken so the
// check-then-insert sequence stays atomic without explicit locking.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new user and returns the stored record.
func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (model.User, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username, password_hash) VALUES (?,?)",
		username, passwordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByUsername fetches a user by exact username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by primary key.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, username, password_hash, created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// UpdateProfile changes a user's username and, when passwordHash is
// non-empty, their password hash. The username is pre-checked against
// other accounts so the common collision surfaces as ErrUsernameTaken
// rather than a constraint violation; the UNIQUE key still backstops the
// race between the check and the update.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, username, passwordHash string) error {
	var existing uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE username=? AND id<>? LIMIT 1",
		username, id).Scan(&existing)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	if passwordHash != "" {
		_, err = r.DB.ExecContext(ctx,
			"UPDATE users SET username=?, password_hash=? WHERE id=?",
			username, passwordHash, id)
	} else {
		_, err = r.DB.ExecContext(ctx,
			"UPDATE users SET username=? WHERE id=?",
			username, id)
	}
	if err != nil && isDuplicateKey(err) {
		return ErrUsernameTaken
	}
	return err
}

// DeleteWithTasks removes a user and every task they own inside a single
// transaction. Tasks go first so the foreign key from tasks to users is
// never violated; either both deletes apply or neither does.
func (r *UserRepo) DeleteWithTasks(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tasks WHERE user_id=?", id); err != nil {
		return err
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrUserNotFound
	}
	return tx.Commit()
}

// isDuplicateKey reports whether err is MySQL error 1062 (duplicate entry
// for a unique key).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
