package models

import "time"

// User represents an account of the story API.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the unique identifier assigned at registration.
	ID string `json:"userId"`

	// Name is the display name used as the author of created stories.
	Name string `json:"name" validate:"required"`

	// Email is the unique login identifier.
	Email string `json:"email" validate:"required,email"`

	// Password is the plaintext password carried by register and login
	// requests only. It is never persisted.
	Password string `json:"password,omitempty" validate:"required,min=8"`

	// PasswordHash is the bcrypt hash stored by the server.
	PasswordHash string `json:"-"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"-"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
