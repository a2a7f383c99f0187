package dto

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	Email          string  `json:"email" binding:"required,email" example:"student@school.bg"`
	Password       string  `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	FirstName      string  `json:"firstName" binding:"required" example:"Ivan"`
	LastName       string  `json:"lastName" binding:"required" example:"Petrov"`
	Role           string  `json:"role" binding:"omitempty,oneof=student" example:"student"`
	Grade          *int    `json:"grade,omitempty" example:"11"`
	Specialization *string `json:"specialization,omitempty" example:"Software Sciences"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
	TwoFactorCode string `json:"twoFactorCode,omitempty" example:"123456"`
}

// TokenResponse carries an issued token pair
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn" example:"3600"`
	TokenType    string `json:"tokenType" example:"Bearer"`
}

// RefreshRequest is the body of POST /auth/refresh
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordRequest is the body of POST /auth/forgot-password
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest is the body of POST /auth/reset-password
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePasswordRequest is the body of POST /auth/change-password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// TwoFactorSetupResponse carries the provisioned TOTP secret
type TwoFactorSetupResponse struct {
	Secret    string `json:"secret"`
	OTPageURL string `json:"otpauthUrl"`
}

// TwoFactorVerifyRequest confirms TOTP enrolment or a login challenge
type TwoFactorVerifyRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
