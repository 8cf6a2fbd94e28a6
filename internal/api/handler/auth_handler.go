package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zapcrm/whatsapp-integration/internal/api/metrics"
	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	// exposeResetToken echoes reset tokens in the forgot-password response.
	// Only ever enabled in development.
	exposeResetToken bool
}

func NewAuthHandler(authService ports.AuthService, exposeResetToken bool) *AuthHandler {
	return &AuthHandler{authService: authService, exposeResetToken: exposeResetToken}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  envelope{data=authResponse}
// @Failure      400   {object}  envelope
// @Failure      500   {object}  envelope
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		observeAuth("register", err)
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	observeAuth("register", err)
	if err != nil {
		return err
	}

	return ok(c, http.StatusCreated, authResponse{User: res.User, Token: res.Token})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  envelope{data=authResponse}
// @Failure      400   {object}  envelope
// @Failure      401   {object}  envelope
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		observeAuth("login", err)
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	observeAuth("login", err)
	if err != nil {
		return err
	}

	return ok(c, http.StatusOK, authResponse{User: res.User, Token: res.Token})
}

// ForgotPassword issues a password-reset token.
//
// @Summary      Request a password reset
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := h.authService.ForgotPassword(c.Request().Context(), req.Email)
	observeAuth("forgot_password", err)
	if err != nil {
		return err
	}

	resp := envelope{Success: true, Message: "password reset token generated"}
	if h.exposeResetToken {
		resp.ResetToken = token
	}
	return c.JSON(http.StatusOK, resp)
}

// ResetPassword sets a new password using a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path      string                true  "Reset token"
// @Param        body   body      resetPasswordRequest  true  "New password"
// @Success      200    {object}  envelope
// @Failure      400    {object}  envelope
// @Router       /auth/reset-password/{token} [post]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err := h.authService.ResetPassword(c.Request().Context(), c.Param("token"), req.Password)
	observeAuth("reset_password", err)
	if err != nil {
		return err
	}
	return okMessage(c, "password reset successful")
}

// GetProfile returns the signed-in user.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=domain.User}
// @Failure      401  {object}  envelope
// @Failure      404  {object}  envelope
// @Router       /auth/profile [get]
func (h *AuthHandler) GetProfile(c echo.Context) error {
	u, err := CurrentUser(c)
	if err != nil {
		return err
	}
	profile, err := h.authService.GetProfile(c.Request().Context(), u.ID)
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, profile)
}

// UpdateProfile changes the signed-in user's profile.
//
// @Summary      Update current user profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Fields to change"
// @Success      200   {object}  envelope{data=domain.User}
// @Failure      400   {object}  envelope
// @Failure      404   {object}  envelope
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	u, err := CurrentUser(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.authService.UpdateProfile(c.Request().Context(), u.ID, ports.UpdateProfileInput{
		Name:           req.Name,
		Email:          req.Email,
		Password:       req.Password,
		Phone:          req.Phone,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, profile)
}

func observeAuth(op string, err error) {
	metrics.AuthOperationsTotal.WithLabelValues(op, authResult(err)).Inc()
}

func authResult(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return "duplicate_email"
	case errors.Is(err, domain.ErrInvalidOrExpiredResetToken):
		return "invalid_reset_token"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_input"
	default:
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Code < http.StatusInternalServerError {
			return "invalid_input"
		}
		return "error"
	}
}
