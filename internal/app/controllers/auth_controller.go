package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles user registration
// @Summary Register a new user
// @Description Creates a user account; student accounts also get a profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration data"
// @Success 201 {object} dto.APIResponse "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Email already registered"
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(ctx, &req) {
		return
	}

	user, err := c.authService.Register(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(user))
}

// Login handles user login
// @Summary Log in
// @Description Verifies credentials and issues a token pair. Accounts with
// two-factor enabled must supply twoFactorCode.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "Token pair"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials or two-factor code required"
// @Failure 403 {object} dto.ErrorResponse "Account locked or disabled"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.Login(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

// RefreshToken exchanges a refresh token for a new pair
// @Summary Refresh tokens
// @Description Exchanges a single-use refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshRequest true "Refresh token"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse} "New token pair"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired refresh token"
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(tokens))
}

// Logout revokes a refresh token
// @Summary Log out
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RefreshRequest true "Refresh token to revoke"
// @Success 200 {object} dto.APIResponse "Logged out"
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	var req dto.RefreshRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.Logout(ctx, req.RefreshToken); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Logged out"})
}

// ForgotPassword starts a password reset
// @Summary Request a password reset
// @Description Sends a reset link when the email is known. Always returns
// 200 so the endpoint cannot be used to probe for accounts.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ForgotPasswordRequest true "Account email"
// @Success 200 {object} dto.APIResponse "Reset email sent if the account exists"
// @Router /auth/forgot-password [post]
func (c *AuthController) ForgotPassword(ctx *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ForgotPassword(ctx, req.Email); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Message: "If the email is registered, a reset link has been sent",
	})
}

// ResetPassword completes a password reset
// @Summary Reset password with a token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "Reset token and new password"
// @Success 200 {object} dto.APIResponse "Password updated"
// @Failure 401 {object} dto.ErrorResponse "Invalid or expired reset token"
// @Router /auth/reset-password [post]
func (c *AuthController) ResetPassword(ctx *gin.Context) {
	var req dto.ResetPasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ResetPassword(ctx, req.Token, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Password updated"})
}

// ChangePassword changes the caller's password
// @Summary Change own password
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} dto.APIResponse "Password updated"
// @Failure 401 {object} dto.ErrorResponse "Current password is wrong"
// @Router /auth/change-password [post]
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.ChangePassword(ctx, principal.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Password updated"})
}

// SetupTwoFactor provisions a TOTP secret for the caller
// @Summary Begin two-factor enrolment
// @Description Returns a TOTP secret and otpauth URL. Two-factor stays
// disabled until the first code is verified.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.TwoFactorSetupResponse} "Provisioned secret"
// @Router /auth/2fa/setup [post]
func (c *AuthController) SetupTwoFactor(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	setup, err := c.authService.SetupTwoFactor(ctx, principal.UserID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(setup))
}

// VerifyTwoFactor confirms TOTP enrolment
// @Summary Confirm two-factor enrolment
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TwoFactorVerifyRequest true "TOTP code"
// @Success 200 {object} dto.APIResponse "Two-factor enabled"
// @Failure 401 {object} dto.ErrorResponse "Invalid code"
// @Router /auth/2fa/verify [post]
func (c *AuthController) VerifyTwoFactor(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	var req dto.TwoFactorVerifyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.VerifyTwoFactor(ctx, principal.UserID, req.Code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Two-factor authentication enabled"})
}

// DisableTwoFactor turns off TOTP for the caller
// @Summary Disable two-factor authentication
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.TwoFactorVerifyRequest true "Current TOTP code"
// @Success 200 {object} dto.APIResponse "Two-factor disabled"
// @Failure 401 {object} dto.ErrorResponse "Invalid code"
// @Router /auth/2fa [delete]
func (c *AuthController) DisableTwoFactor(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	var req dto.TwoFactorVerifyRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if err := c.authService.DisableTwoFactor(ctx, principal.UserID, req.Code); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Two-factor authentication disabled"})
}

// UnlockAccount clears a login lockout, admin only
// @Summary Unlock a locked account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} dto.APIResponse "Account unlocked"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /auth/unlock/{id} [post]
func (c *AuthController) UnlockAccount(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.authService.UnlockAccount(ctx, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Account unlocked"})
}
