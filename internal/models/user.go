package models

import "time"

// User mirrors the record held by the external auth service. The
// storefront never mutates users; it validates them at checkout and
// caches the session fields below.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the locally persisted record of a logged-in user.
type Session struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsAdmin    bool   `json:"is_admin"`
	RememberMe bool   `json:"remember_me"`
}
