package models

import "time"

// User is a registered account. Password always holds a bcrypt hash,
// never the plain credential.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex"`
	Email     string    `json:"email" gorm:"index"`
	Bio       string    `json:"bio,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest defines the credential payload shared by the REST login
// and token-obtain endpoints
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest defines the request body for the token refresh endpoint
type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}
