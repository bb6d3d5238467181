// Package models holds the persistent records of the todo API.
package models

import "time"

// User is a registered account. PasswordHash is the bcrypt encoding of the
// password and is never serialised to clients.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
