// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash is a bcrypt digest and never
// leaves the server.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// ProfilePatch lists the profile fields a caller wants to change; nil means keep.
type ProfilePatch struct {
	Name     *string
	Email    *string
	Password *string
}
