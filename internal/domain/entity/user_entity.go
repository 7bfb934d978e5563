package entity

import "time"

// User is the aggregate root for user domain.
// Authentication is by email possession, so there is no password field.
type User struct {
	ID        int64
	Name      string
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Author is the projection of a user embedded in posts and filter lists.
type Author struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// Actor is the identity carried by a verified session.
type Actor struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PublicUser is the user projection returned to callers.
type PublicUser struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Profile is a public user plus the number of live posts.
type Profile struct {
	PublicUser
	PostCount int64 `json:"postCount"`
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}
