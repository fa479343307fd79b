package model

import "time"

// User represents an application user record as stored in the
// `users` table. Each field corresponds to a column in the
// database. No json tags are defined because these structs are
// consumed by the repository and template layers only; nothing
// serializes them to the wire.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username, 3–20 characters of [A-Za-z0-9_].
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
