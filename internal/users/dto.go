package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/amitsingh12ap/moveassist/pkg/db/models"
	"github.com/amitsingh12ap/moveassist/pkg/enums"
)

// CreateUserDTO captures everything needed to insert a user row.
type CreateUserDTO struct {
	Name         string
	Email        string
	PasswordHash string
	Phone        *string
	Role         enums.UserRole
	City         *string
	Latitude     *float64
	Longitude    *float64
}

// ToModel maps the DTO onto a persistable user.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Phone:        d.Phone,
		Role:         d.Role,
		IsActive:     true,
		IsAvailable:  true,
		City:         d.City,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
	}
}

// UserResponse is the public view of a user, without credentials.
type UserResponse struct {
	ID          uuid.UUID      `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Phone       *string        `json:"phone,omitempty"`
	Role        enums.UserRole `json:"role"`
	City        *string        `json:"city,omitempty"`
	IsActive    bool           `json:"is_active"`
	IsAvailable bool           `json:"is_available"`
	Rating      *float64       `json:"rating,omitempty"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// FromModel converts a user model into its public view.
func FromModel(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		Role:        user.Role,
		City:        user.City,
		IsActive:    user.IsActive,
		IsAvailable: user.IsAvailable,
		Rating:      user.Rating,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// UpdateProfileInput carries partial profile edits.
type UpdateProfileInput struct {
	Name      *string
	Phone     *string
	City      *string
	Latitude  *float64
	Longitude *float64
}

// AvailabilityInput toggles an agent's availability and optionally refreshes
// their last known position.
type AvailabilityInput struct {
	Available bool
	City      *string
	Latitude  *float64
	Longitude *float64
}
