package auth

import (
	"github.com/amitsingh12ap/moveassist/internal/users"
)

// RegisterRequest captures the payload for customer self-registration.
type RegisterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Phone    *string `json:"phone,omitempty"`
	City     *string `json:"city,omitempty"`
}

// LoginRequest captures the user credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`

	// ClientIP is filled by the controller for rate limiting, never by the
	// request body.
	ClientIP string `json:"-"`
}

// AuthResponse contains the access token and user produced by a successful
// register or login.
type AuthResponse struct {
	AccessToken string              `json:"access_token"`
	User        *users.UserResponse `json:"user"`
}
