package repositories

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// NotificationRepository handles database operations for Notification
type NotificationRepository struct {
	DB *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

var notificationColumns = []string{
	"id", "recipient_id", "title", "message", "notification_type", "category",
	"related_model", "related_id", "is_read", "is_email_sent", "created_at",
}

func scanNotification(row pgx.Row) (*models.Notification, error) {
	var n models.Notification
	var relatedModel *string
	var relatedID *int64
	err := row.Scan(
		&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Type, &n.Category,
		&relatedModel, &relatedID, &n.IsRead, &n.IsEmailSent, &n.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning notification row")
		return nil, err
	}
	if relatedModel != nil && relatedID != nil {
		n.Related = &models.RelatedRef{Model: *relatedModel, ID: *relatedID}
	}
	return &n, nil
}

// CreateBulk inserts one notification per recipient, all identical except
// the recipient, and returns the created ids
func (r *NotificationRepository) CreateBulk(ctx context.Context, recipientIDs []int64, template models.Notification) ([]int64, error) {
	if len(recipientIDs) == 0 {
		return nil, nil
	}

	builder := squirrel.Insert("notifications").
		Columns("recipient_id", "title", "message", "notification_type", "category",
			"related_model", "related_id", "is_email_sent")
	for _, recipientID := range recipientIDs {
		var relatedModel *string
		var relatedID *int64
		if template.Related != nil {
			relatedModel = &template.Related.Model
			relatedID = &template.Related.ID
		}
		builder = builder.Values(recipientID, template.Title, template.Message,
			template.Type, template.Category, relatedModel, relatedID, template.IsEmailSent)
	}

	sql, args, err := builder.
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing bulk create notifications query")
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0, len(recipientIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// MarkEmailSent flags notifications whose email went out
func (r *NotificationRepository) MarkEmailSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	sql, args, err := squirrel.Update("notifications").
		Set("is_email_sent", true).
		Where(squirrel.Eq{"id": ids}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.DB.Exec(ctx, sql, args...)
	return err
}

// GetByID retrieves a notification by id
func (r *NotificationRepository) GetByID(ctx context.Context, id int64) (*models.Notification, error) {
	sql, args, err := squirrel.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanNotification(r.DB.QueryRow(ctx, sql, args...))
}

// ListByRecipient retrieves a recipient's notifications, newest first
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID int64, unreadOnly bool, page, size int) ([]*models.Notification, dto.PaginationInfo, error) {
	builder := squirrel.Select(notificationColumns...).
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID}).
		PlaceholderFormat(squirrel.Dollar)
	countBuilder := squirrel.Select("count(*)").
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID}).
		PlaceholderFormat(squirrel.Dollar)

	if unreadOnly {
		builder = builder.Where(squirrel.Eq{"is_read": false})
		countBuilder = countBuilder.Where(squirrel.Eq{"is_read": false})
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

	notifications := make([]*models.Notification, 0)
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return notifications, helpers.NewPaginationInfo(page, size, total), nil
}

// CountUnread returns the number of unread notifications of a recipient
func (r *NotificationRepository) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	sql, args, err := squirrel.Select("count(*)").
		From("notifications").
		Where(squirrel.Eq{"recipient_id": recipientID, "is_read": false}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// MarkRead flags one notification as read, scoped to the recipient
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipientID int64) error {
	sql, args, err := squirrel.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"id": id, "recipient_id": recipientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// MarkAllRead flags every unread notification of one recipient as read.
// Scoped to the requesting user only, never cross-user.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	sql, args, err := squirrel.Update("notifications").
		Set("is_read", true).
		Where(squirrel.Eq{"recipient_id": recipientID, "is_read": false}).
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

// Delete removes one notification, scoped to the recipient
func (r *NotificationRepository) Delete(ctx context.Context, id, recipientID int64) error {
	sql, args, err := squirrel.Delete("notifications").
		Where(squirrel.Eq{"id": id, "recipient_id": recipientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	tag, err := r.DB.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteOlderThan purges notifications created before the cutoff and
// returns how many were removed. Used by the retention job.
func (r *NotificationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sql, args, err := squirrel.Delete("notifications").
		Where(squirrel.Lt{"created_at": cutoff}).
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
