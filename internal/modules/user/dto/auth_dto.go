package dto

import (
	"time"

	"github.com/google/uuid"
	"scopri.app/eventilocali/internal/entity"
)

type RegisterInput struct {
	Username  string          `json:"username" binding:"required,min=3,max=50"`
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8"`
	FirstName string          `json:"first_name" binding:"max=100"`
	LastName  string          `json:"last_name" binding:"max=100"`
	Instagram *InstagramInput `json:"instagram"`
}

type InstagramInput struct {
	Username    string `json:"username" binding:"max=100"`
	ShowProfile bool   `json:"show_profile"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	FirstName string          `json:"first_name" binding:"max=100"`
	LastName  string          `json:"last_name" binding:"max=100"`
	Instagram *InstagramInput `json:"instagram"`
}

type AuthResponse struct {
	AccessToken string       `json:"token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int64        `json:"expires_in"`
	User        UserResponse `json:"user"`
}

// UserResponse is the outward shape of a user; the credential hash never
// leaves the service layer.
type UserResponse struct {
	ID        uuid.UUID        `json:"id"`
	Username  string           `json:"username"`
	Email     string           `json:"email,omitempty"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Role      string           `json:"role"`
	Points    int              `json:"points"`
	Instagram entity.Instagram `json:"instagram"`
	CreatedAt time.Time        `json:"created_at"`
}

// NewUserResponse maps an entity to its outward shape. withEmail controls
// whether the address is exposed (own profile only).
func NewUserResponse(u *entity.User, withEmail bool) UserResponse {
	res := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		Points:    u.Points,
		Instagram: u.Instagram,
		CreatedAt: u.CreatedAt,
	}
	if withEmail {
		res.Email = u.Email
	}
	return res
}
