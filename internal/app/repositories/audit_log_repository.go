package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// AuditLogRepository handles append and list operations for the audit trail
type AuditLogRepository struct {
	DB *pgxpool.Pool
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *pgxpool.Pool) *AuditLogRepository {
	return &AuditLogRepository{DB: db}
}

// Insert appends one audit record. Failures are logged but never block
// the request that produced them.
func (r *AuditLogRepository) Insert(ctx context.Context, entry *models.AuditLog) error {
	sql, args, err := squirrel.Insert("audit_logs").
		Columns("user_id", "action", "entity", "entity_id", "details", "ip", "user_agent").
		Values(entry.UserID, entry.Action, entry.Entity, entry.EntityID,
			entry.Details, entry.IP, entry.UserAgent).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error inserting audit log entry")
		return err
	}
	return nil
}

// List retrieves a paginated audit trail, newest first, optionally
// filtered by user
func (r *AuditLogRepository) List(ctx context.Context, userID *int64, page, size int) ([]*models.AuditLog, dto.PaginationInfo, error) {
	builder := squirrel.Select(
		"id", "user_id", "action", "entity", "entity_id", "details", "ip", "user_agent", "created_at",
	).From("audit_logs").PlaceholderFormat(squirrel.Dollar)
	countBuilder := squirrel.Select("count(*)").From("audit_logs").PlaceholderFormat(squirrel.Dollar)

	if userID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *userID})
		countBuilder = countBuilder.Where(squirrel.Eq{"user_id": *userID})
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	var total int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	page, size = helpers.NormalizePage(page, size)
	sqlStr, args, err := builder.
		OrderBy("created_at DESC").
		Limit(uint64(size)).
		Offset(uint64((page - 1) * size)).
		ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	rows, err := r.DB.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	defer rows.Close()

	entries := make([]*models.AuditLog, 0)
	for rows.Next() {
		var e models.AuditLog
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Entity, &e.EntityID,
			&e.Details, &e.IP, &e.UserAgent, &e.Timestamp); err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return entries, helpers.NewPaginationInfo(page, size, total), nil
}
