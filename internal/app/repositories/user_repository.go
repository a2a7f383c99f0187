package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// UserRepository handles database operations for User
type UserRepository struct {
	DB *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

var userColumns = []string{
	"id", "email", "password", "first_name", "last_name", "role_type",
	"is_active", "is_locked", "failed_logins",
	"two_factor_enabled", "two_factor_secret",
	"reset_token", "reset_token_expiry",
	"last_login_at", "created_at", "updated_at",
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Email, &u.Password, &u.FirstName, &u.LastName, &u.RoleType,
		&u.IsActive, &u.IsLocked, &u.FailedLogins,
		&u.TwoFactorEnabled, &u.TwoFactorSecret,
		&u.ResetToken, &u.ResetTokenExpiry,
		&u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and returns its id
func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	sql, args, err := squirrel.Insert("users").
		Columns("email", "password", "first_name", "last_name", "role_type", "is_active").
		Values(user.Email, user.Password, user.FirstName, user.LastName, user.RoleType, user.IsActive).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create user query")
		return 0, err
	}
	return id, nil
}

// GetUserByID retrieves a user by id
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	sql, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}

// GetUserByEmail retrieves a user by email
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	sql, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	sql, args, err := squirrel.Select("count(*)").
		From("users").
		Where(squirrel.Eq{"email": email}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return false, err
	}

	var count int
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

// UpdateLastLogin stamps a successful login and clears the failure counter
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64) error {
	sql, args, err := squirrel.Update("users").
		Set("last_login_at", time.Now()).
		Set("failed_logins", 0).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// IncrementFailedLogins bumps the failure counter and returns the new value
func (r *UserRepository) IncrementFailedLogins(ctx context.Context, userID int64) (int, error) {
	sql, args, err := squirrel.Update("users").
		Set("failed_logins", squirrel.Expr("failed_logins + 1")).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		Suffix("RETURNING failed_logins").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var failed int
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&failed); err != nil {
		return 0, err
	}
	return failed, nil
}

// SetLocked locks or unlocks an account
func (r *UserRepository) SetLocked(ctx context.Context, userID int64, locked bool) error {
	builder := squirrel.Update("users").
		Set("is_locked", locked).
		Set("updated_at", time.Now())
	if !locked {
		builder = builder.Set("failed_logins", 0)
	}

	sql, args, err := builder.
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	sql, args, err := squirrel.Update("users").
		Set("password", hashedPassword).
		Set("reset_token", nil).
		Set("reset_token_expiry", nil).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// SetResetToken stores a password reset token with its expiry
func (r *UserRepository) SetResetToken(ctx context.Context, userID int64, token string, expiry time.Time) error {
	sql, args, err := squirrel.Update("users").
		Set("reset_token", token).
		Set("reset_token_expiry", expiry).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// GetUserByResetToken retrieves a user by reset token
func (r *UserRepository) GetUserByResetToken(ctx context.Context, token string) (*models.User, error) {
	sql, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"reset_token": token}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.DB.QueryRow(ctx, sql, args...))
}

// SetTwoFactor stores the TOTP secret and enabled flag
func (r *UserRepository) SetTwoFactor(ctx context.Context, userID int64, enabled bool, secret *string) error {
	sql, args, err := squirrel.Update("users").
		Set("two_factor_enabled", enabled).
		Set("two_factor_secret", secret).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// UpdateProfile updates basic profile information
func (r *UserRepository) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error {
	sql, args, err := squirrel.Update("users").
		Set("first_name", firstName).
		Set("last_name", lastName).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// ListByRole retrieves all users with the given role
func (r *UserRepository) ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	sql, args, err := squirrel.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"role_type": role}).
		OrderBy("last_name", "first_name").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
