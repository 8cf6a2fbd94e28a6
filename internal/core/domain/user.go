package domain

import "time"

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

// ValidRole reports whether role is one of the roles a user can hold.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleAgent:
		return true
	}
	return false
}

// User models an operator of the WhatsApp console.
type User struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	PasswordHash        string     `json:"-"`
	Role                string     `json:"role"`
	IsActive            bool       `json:"isActive"`
	Phone               string     `json:"phone,omitempty"`
	ProfilePicture      string     `json:"profilePicture,omitempty"`
	LastLoginAt         *time.Time `json:"lastLoginAt,omitempty"`
	ResetTokenHash      string     `json:"-"`
	ResetTokenExpiresAt *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// SetResetToken stores a hashed password-reset token together with its expiry.
// The two fields are only ever written as a pair.
func (u *User) SetResetToken(hash string, expiresAt time.Time) {
	exp := expiresAt.UTC()
	u.ResetTokenHash = hash
	u.ResetTokenExpiresAt = &exp
}

// ClearResetToken drops both reset fields.
func (u *User) ClearResetToken() {
	u.ResetTokenHash = ""
	u.ResetTokenExpiresAt = nil
}

// ResetTokenValid reports whether the stored reset token is still usable at now.
func (u *User) ResetTokenValid(now time.Time) bool {
	return u.ResetTokenHash != "" && u.ResetTokenExpiresAt != nil && u.ResetTokenExpiresAt.After(now)
}
