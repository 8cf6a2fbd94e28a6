package handler

import "github.com/zapcrm/whatsapp-integration/internal/core/domain"

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role"     validate:"omitempty,oneof=admin manager agent"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name           *string `json:"name"           validate:"omitempty,min=1"`
	Email          *string `json:"email"          validate:"omitempty,email"`
	Password       *string `json:"password"       validate:"omitempty,min=1"`
	Phone          *string `json:"phone"`
	ProfilePicture *string `json:"profilePicture"`
}

// authResponse carries the public profile fields plus the bearer token.
type authResponse struct {
	*domain.User
	Token string `json:"token"`
}
