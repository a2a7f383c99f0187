package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// CreditRepository handles database operations for Credit
type CreditRepository struct {
	DB *pgxpool.Pool
}

// NewCreditRepository creates a new CreditRepository
func NewCreditRepository(db *pgxpool.Pool) *CreditRepository {
	return &CreditRepository{DB: db}
}

var creditColumns = []string{
	"id", "student_id", "pillar", "activity", "description", "status",
	"validated_by", "validation_date", "created_at", "updated_at",
}

func scanCredit(row pgx.Row) (*models.Credit, error) {
	var c models.Credit
	err := row.Scan(
		&c.ID, &c.StudentID, &c.Pillar, &c.Activity, &c.Description, &c.Status,
		&c.ValidatedBy, &c.ValidationDate, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrCreditNotFound
		}
		logger.Error().Err(err).Msg("Error scanning credit row")
		return nil, err
	}
	return &c, nil
}

// Create inserts a new credit in pending state and returns its id
func (r *CreditRepository) Create(ctx context.Context, credit *models.Credit) (int64, error) {
	sql, args, err := squirrel.Insert("credits").
		Columns("student_id", "pillar", "activity", "description", "status").
		Values(credit.StudentID, credit.Pillar, credit.Activity, credit.Description, models.CreditPending).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create credit query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a credit by id
func (r *CreditRepository) GetByID(ctx context.Context, id int64) (*models.Credit, error) {
	sql, args, err := squirrel.Select(creditColumns...).
		From("credits").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanCredit(r.DB.QueryRow(ctx, sql, args...))
}

// ListByStudent retrieves all credits of one student, newest first
func (r *CreditRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Credit, error) {
	sql, args, err := squirrel.Select(creditColumns...).
		From("credits").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryCredits(ctx, sql, args)
}

// ListByStatus retrieves all credits in a given status, oldest first
// (review queue ordering)
func (r *CreditRepository) ListByStatus(ctx context.Context, status models.CreditStatus) ([]*models.Credit, error) {
	sql, args, err := squirrel.Select(creditColumns...).
		From("credits").
		Where(squirrel.Eq{"status": status}).
		OrderBy("created_at ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return r.queryCredits(ctx, sql, args)
}

func (r *CreditRepository) queryCredits(ctx context.Context, sql string, args []interface{}) ([]*models.Credit, error) {
	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	credits := make([]*models.Credit, 0)
	for rows.Next() {
		c, err := scanCredit(rows)
		if err != nil {
			return nil, err
		}
		credits = append(credits, c)
	}
	return credits, rows.Err()
}

// DuplicateExists checks for another credit of the same student with
// identical trimmed activity text in pending or validated state. Rejected
// credits do not count, so a student may resubmit after rejection.
func (r *CreditRepository) DuplicateExists(ctx context.Context, studentID int64, activity string) (bool, error) {
	sql, args, err := squirrel.Select("count(*)").
		From("credits").
		Where(squirrel.Eq{"student_id": studentID}).
		Where("lower(trim(activity)) = lower(?)", strings.TrimSpace(activity)).
		Where(squirrel.Eq{"status": []models.CreditStatus{models.CreditPending, models.CreditValidated}}).
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

// UpdateStatus transitions a credit out of pending, recording the reviewer.
// The status guard in the WHERE clause makes concurrent reviews safe: only
// one of two racing validations can match the pending row.
func (r *CreditRepository) UpdateStatus(ctx context.Context, creditID int64, status models.CreditStatus, reviewerID int64) (*models.Credit, error) {
	sql, args, err := squirrel.Update("credits").
		Set("status", status).
		Set("validated_by", reviewerID).
		Set("validation_date", time.Now()).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": creditID, "status": models.CreditPending}).
		Suffix("RETURNING " + strings.Join(creditColumns, ", ")).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	credit, err := scanCredit(r.DB.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == apperrors.ErrCreditNotFound {
			// Row exists but is no longer pending, or does not exist at all.
			return nil, apperrors.ErrCreditNotPending
		}
		return nil, err
	}
	return credit, nil
}

// Delete removes a credit by id
func (r *CreditRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("credits").
		Where(squirrel.Eq{"id": id}).
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
		return apperrors.ErrCreditNotFound
	}
	return nil
}

// CountByStatus returns credit counts grouped by status
func (r *CreditRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "status")
}

// CountByPillar returns credit counts grouped by pillar
func (r *CreditRepository) CountByPillar(ctx context.Context) (map[string]int64, error) {
	return r.countGrouped(ctx, "pillar")
}

func (r *CreditRepository) countGrouped(ctx context.Context, column string) (map[string]int64, error) {
	sql, args, err := squirrel.Select(column, "count(*)").
		From("credits").
		GroupBy(column).
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

	counts := make(map[string]int64)
	for rows.Next() {
		var key string
		var count int64
		if err := rows.Scan(&key, &count); err != nil {
			return nil, err
		}
		counts[key] = count
	}
	return counts, rows.Err()
}
