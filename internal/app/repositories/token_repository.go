package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

// TokenRepository handles storage of opaque refresh tokens
type TokenRepository struct {
	DB *pgxpool.Pool
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{DB: db}
}

// StoreRefreshToken persists a refresh token for a user
func (r *TokenRepository) StoreRefreshToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	sql, args, err := squirrel.Insert("refresh_tokens").
		Columns("user_id", "token", "expires_at").
		Values(userID, token, expiresAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// GetUserIDByRefreshToken resolves a non-expired refresh token to its user
func (r *TokenRepository) GetUserIDByRefreshToken(ctx context.Context, token string) (int64, error) {
	sql, args, err := squirrel.Select("user_id").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Where(squirrel.Gt{"expires_at": time.Now()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var userID int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrTokenInvalid
		}
		return 0, err
	}
	return userID, nil
}

// DeleteRefreshToken revokes one refresh token
func (r *TokenRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	sql, args, err := squirrel.Delete("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// DeleteUserTokens revokes all refresh tokens of a user
func (r *TokenRepository) DeleteUserTokens(ctx context.Context, userID int64) error {
	sql, args, err := squirrel.Delete("refresh_tokens").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// DeleteExpired purges expired refresh tokens, returning the count
func (r *TokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	sql, args, err := squirrel.Delete("refresh_tokens").
		Where(squirrel.LtOrEq{"expires_at": time.Now()}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
