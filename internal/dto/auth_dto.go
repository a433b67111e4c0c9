package dto

import "time"

// LoginRequest is the shared-PIN login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	ClassPIN string `json:"class_pin" validate:"required"`
}

// LoginResponse carries the session token issued at login.
type LoginResponse struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	StartedAt time.Time `json:"started_at"`
}
