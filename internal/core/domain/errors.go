package domain

import "errors"

// Input errors.
var (
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateEmail       = errors.New("email already in use")
	ErrDuplicatePhone       = errors.New("contact phone number already exists")
	ErrInvalidMessageStatus = errors.New("invalid message status")
)

// Authentication and authorization errors. ErrInvalidToken, ErrExpiredToken and
// ErrUnauthorized must be rendered identically to clients.
var (
	ErrInvalidCredentials         = errors.New("invalid email or password")
	ErrInvalidToken               = errors.New("invalid token")
	ErrExpiredToken               = errors.New("token expired")
	ErrUnauthorized               = errors.New("not authorized")
	ErrForbidden                  = errors.New("access forbidden")
	ErrInvalidOrExpiredResetToken = errors.New("invalid or expired reset token")
)

// Lookup errors.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrContactNotFound = errors.New("contact not found")
	ErrMessageNotFound = errors.New("message not found")
)

// Messaging transport errors.
var (
	ErrMessengerUnavailable = errors.New("whatsapp client unavailable")
	ErrSendFailed           = errors.New("whatsapp send failed")
)
