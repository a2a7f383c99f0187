package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/auth"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/email"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

const (
	// MaxFailedLogins locks the account when reached
	MaxFailedLogins = 5

	// ResetTokenTTL bounds the password reset window
	ResetTokenTTL = time.Hour
)

// AuthService defines the interface for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
	ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error
	SetupTwoFactor(ctx context.Context, userID int64) (*dto.TwoFactorSetupResponse, error)
	VerifyTwoFactor(ctx context.Context, userID int64, code string) error
	DisableTwoFactor(ctx context.Context, userID int64, code string) error
	UnlockAccount(ctx context.Context, userID int64) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userRepo     *repositories.UserRepository
	studentRepo  *repositories.StudentRepository
	tokenRepo    *repositories.TokenRepository
	jwtService   *auth.JWTService
	emailService email.EmailService
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	studentRepo *repositories.StudentRepository,
	tokenRepo *repositories.TokenRepository,
	jwtService *auth.JWTService,
	emailService email.EmailService,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		studentRepo:  studentRepo,
		tokenRepo:    tokenRepo,
		jwtService:   jwtService,
		emailService: emailService,
	}
}

// Register creates a student account with its profile. Self-registration
// never grants an elevated role; teacher and admin accounts are
// provisioned by an administrator. All input is validated before any row
// is written so a rejected request leaves nothing behind.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if req.Role != "" && models.RoleType(req.Role) != models.RoleStudent {
		return nil, apperrors.NewForbiddenError("only student accounts can self-register")
	}

	grade := models.MinGrade
	if req.Grade != nil {
		grade = *req.Grade
	}
	if grade < models.MinGrade || grade > models.MaxGrade {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("grade must be between %d and %d", models.MinGrade, models.MaxGrade))
	}
	specialization := ""
	if req.Specialization != nil {
		specialization = *req.Specialization
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  models.RoleStudent,
		IsActive:  true,
	}

	userID, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID

	profile := &models.StudentProfile{
		UserID:         userID,
		Grade:          grade,
		Specialization: specialization,
		AverageGrade:   models.MinAverageGrade,
	}
	if _, err := s.studentRepo.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.emailService.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Welcome email failed")
	}

	return user, nil
}

// Login authenticates a user and issues a token pair. Repeated failures
// lock the account; enabled 2FA requires a valid TOTP code.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.IsLocked {
		return nil, apperrors.ErrAccountLocked
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		failed, err := s.userRepo.IncrementFailedLogins(ctx, user.ID)
		if err != nil {
			logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to record login failure")
		}
		if failed >= MaxFailedLogins {
			if err := s.userRepo.SetLocked(ctx, user.ID, true); err != nil {
				logger.Error().Err(err).Int64("userId", user.ID).Msg("Failed to lock account")
			}
			return nil, apperrors.ErrAccountLocked
		}
		return nil, apperrors.ErrInvalidCredentials
	}

	if user.TwoFactorEnabled {
		if req.TwoFactorCode == "" {
			return nil, apperrors.ErrTwoFactorRequired
		}
		if user.TwoFactorSecret == nil || !auth.ValidateTOTP(req.TwoFactorCode, *user.TwoFactorSecret) {
			return nil, apperrors.ErrTwoFactorInvalid
		}
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userId", user.ID).Msg("Failed to stamp last login")
	}

	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *models.User) (*dto.TokenResponse, error) {
	accessToken, refreshToken, expiresIn, _, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.tokenRepo.StoreRefreshToken(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	}, nil
}

// RefreshToken exchanges a valid refresh token for a new pair.
// The old token is revoked (single use).
func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshToken string) (*dto.TokenResponse, error) {
	userID, err := s.tokenRepo.GetUserIDByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsLocked {
		return nil, apperrors.ErrAccountLocked
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.DeleteRefreshToken(ctx, refreshToken); err != nil {
		logger.Warn().Err(err).Msg("Failed to revoke used refresh token")
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes one refresh token
func (s *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	return s.tokenRepo.DeleteRefreshToken(ctx, refreshToken)
}

// ForgotPassword issues a reset token and mails it. An unknown email gets
// the same success response so addresses cannot be probed.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return nil
		}
		return err
	}

	token := uuid.New().String()
	if err := s.userRepo.SetResetToken(ctx, user.ID, token, time.Now().Add(ResetTokenTTL)); err != nil {
		return err
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.FullName(), token); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Password reset email failed")
	}
	return nil
}

// ResetPassword sets a new password from a valid reset token and revokes
// all refresh tokens of the account
func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	user, err := s.userRepo.GetUserByResetToken(ctx, token)
	if err != nil {
		if err == apperrors.ErrUserNotFound {
			return apperrors.ErrInvalidResetToken
		}
		return err
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		return apperrors.ErrInvalidResetToken
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return err
	}
	return s.tokenRepo.DeleteUserTokens(ctx, user.ID)
}

// ChangePassword verifies the current password before replacing it
func (s *authServiceImpl) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, currentPassword) {
		return apperrors.ErrInvalidCredentials
	}

	hashed, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.userRepo.UpdatePassword(ctx, userID, hashed)
}

// SetupTwoFactor provisions a TOTP secret. 2FA stays disabled until the
// user confirms a code via VerifyTwoFactor.
func (s *authServiceImpl) SetupTwoFactor(ctx context.Context, userID int64) (*dto.TwoFactorSetupResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	secret, url, err := auth.GenerateTOTPSecret(user.Email)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetTwoFactor(ctx, userID, false, &secret); err != nil {
		return nil, err
	}

	return &dto.TwoFactorSetupResponse{Secret: secret, OTPageURL: url}, nil
}

// VerifyTwoFactor confirms enrolment by validating a code against the
// provisioned secret
func (s *authServiceImpl) VerifyTwoFactor(ctx context.Context, userID int64, code string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.TwoFactorSecret == nil {
		return apperrors.NewValidationError("two-factor setup has not been started")
	}
	if !auth.ValidateTOTP(code, *user.TwoFactorSecret) {
		return apperrors.ErrTwoFactorInvalid
	}
	return s.userRepo.SetTwoFactor(ctx, userID, true, user.TwoFactorSecret)
}

// DisableTwoFactor turns 2FA off after validating a current code
func (s *authServiceImpl) DisableTwoFactor(ctx context.Context, userID int64, code string) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if !user.TwoFactorEnabled || user.TwoFactorSecret == nil {
		return apperrors.NewValidationError("two-factor authentication is not enabled")
	}
	if !auth.ValidateTOTP(code, *user.TwoFactorSecret) {
		return apperrors.ErrTwoFactorInvalid
	}
	return s.userRepo.SetTwoFactor(ctx, userID, false, nil)
}

// UnlockAccount clears a lockout (admin operation)
func (s *authServiceImpl) UnlockAccount(ctx context.Context, userID int64) error {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.SetLocked(ctx, userID, false)
}
