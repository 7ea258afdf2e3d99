package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and is never
// serialised to clients.
type User struct {
	ID           string    `json:"id"`
	UserName     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
