// Package models holds the client-side view of users and tasks as the REST
// server returns them.
package models

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Session is what register and login return.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// ProfileUpdate sends only the non-nil fields.
type ProfileUpdate struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}
