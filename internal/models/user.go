package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name,omitempty"`
	Surname      string     `json:"surname,omitempty"`
	NIF          string     `json:"nif,omitempty"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // never serialized
	Role         string     `json:"role"`
	Verified     bool       `json:"verified"`
	VerifiedAt   *time.Time `json:"verified_at,omitempty"`
	LogoID       *int64     `json:"logo_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}
