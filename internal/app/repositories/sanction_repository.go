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

// SanctionRepository handles database operations for the per-student
// sanctions record (absence counters, schoolo remarks, active sanctions)
type SanctionRepository struct {
	DB *pgxpool.Pool
}

// NewSanctionRepository creates a new SanctionRepository
func NewSanctionRepository(db *pgxpool.Pool) *SanctionRepository {
	return &SanctionRepository{DB: db}
}

func scanSanction(row pgx.Row) (*models.Sanction, error) {
	var s models.Sanction
	err := row.Scan(
		&s.ID, &s.StudentID,
		&s.Absences.Excused, &s.Absences.Unexcused, &s.Absences.MaxAllowed,
		&s.SchooloRemarks, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning sanction row")
		return nil, err
	}
	return &s, nil
}

// GetByStudent retrieves the sanction record with its active sanctions.
// Returns apperrors.ErrNotFound when no record exists; callers that serve
// reads synthesize the default shape instead of persisting one.
func (r *SanctionRepository) GetByStudent(ctx context.Context, studentID int64) (*models.Sanction, error) {
	sql, args, err := squirrel.Select(
		"id", "student_id", "excused", "unexcused", "max_allowed",
		"schoolo_remarks", "created_at", "updated_at",
	).From("sanctions").
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	sanction, err := scanSanction(r.DB.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, err
	}

	active, err := r.listActiveSanctions(ctx, sanction.ID)
	if err != nil {
		return nil, err
	}
	sanction.ActiveSanctions = active
	return sanction, nil
}

func (r *SanctionRepository) listActiveSanctions(ctx context.Context, sanctionID int64) ([]models.ActiveSanction, error) {
	sql, args, err := squirrel.Select(
		"id", "sanction_type", "reason", "start_date", "end_date", "issued_by", "created_at",
	).From("active_sanctions").
		Where(squirrel.Eq{"sanction_id": sanctionID}).
		OrderBy("start_date DESC").
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

	active := make([]models.ActiveSanction, 0)
	for rows.Next() {
		var a models.ActiveSanction
		if err := rows.Scan(&a.ID, &a.Type, &a.Reason, &a.StartDate, &a.EndDate, &a.IssuedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		active = append(active, a)
	}
	return active, rows.Err()
}

// ensureRecord creates the sanction row for a student if missing and
// returns its id. First write path materializes the default shape.
func (r *SanctionRepository) ensureRecord(ctx context.Context, studentID int64) (int64, error) {
	sql, args, err := squirrel.Insert("sanctions").
		Columns("student_id", "excused", "unexcused", "max_allowed", "schoolo_remarks").
		Values(studentID, 0, 0, models.DefaultMaxAllowedAbsences, 0).
		Suffix(`ON CONFLICT (student_id) DO UPDATE SET student_id = EXCLUDED.student_id
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateAbsences writes the new absence counters, creating the record
// if needed, and returns the updated record
func (r *SanctionRepository) UpdateAbsences(ctx context.Context, studentID int64, absences models.Absences) (*models.Sanction, error) {
	if _, err := r.ensureRecord(ctx, studentID); err != nil {
		return nil, err
	}

	sql, args, err := squirrel.Update("sanctions").
		Set("excused", absences.Excused).
		Set("unexcused", absences.Unexcused).
		Set("max_allowed", absences.MaxAllowed).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		return nil, err
	}
	return r.GetByStudent(ctx, studentID)
}

// UpdateRemarks writes the schoolo remarks counter
func (r *SanctionRepository) UpdateRemarks(ctx context.Context, studentID int64, remarks int) (*models.Sanction, error) {
	if _, err := r.ensureRecord(ctx, studentID); err != nil {
		return nil, err
	}

	sql, args, err := squirrel.Update("sanctions").
		Set("schoolo_remarks", remarks).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	if _, err := r.DB.Exec(ctx, sql, args...); err != nil {
		return nil, err
	}
	return r.GetByStudent(ctx, studentID)
}

// AddActiveSanction appends a disciplinary measure and returns its id
func (r *SanctionRepository) AddActiveSanction(ctx context.Context, studentID int64, sanction models.ActiveSanction) (int64, error) {
	recordID, err := r.ensureRecord(ctx, studentID)
	if err != nil {
		return 0, err
	}

	sql, args, err := squirrel.Insert("active_sanctions").
		Columns("sanction_id", "sanction_type", "reason", "start_date", "end_date", "issued_by").
		Values(recordID, sanction.Type, sanction.Reason, sanction.StartDate, sanction.EndDate, sanction.IssuedBy).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// RemoveActiveSanction deletes one disciplinary measure of a student
func (r *SanctionRepository) RemoveActiveSanction(ctx context.Context, studentID, sanctionID int64) error {
	sql, args, err := squirrel.Delete("active_sanctions").
		Where(squirrel.Eq{"id": sanctionID}).
		Where(squirrel.Expr(
			"sanction_id = (SELECT id FROM sanctions WHERE student_id = ?)", studentID)).
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

// AbsenceRow pairs a student with its absence counters for reporting
type AbsenceRow struct {
	StudentID   int64
	StudentName string
	Grade       int
	Absences    models.Absences
}

// ListAbsences returns the absence counters of every student with a
// sanction record, joined with profile data for reporting
func (r *SanctionRepository) ListAbsences(ctx context.Context) ([]AbsenceRow, error) {
	sql, args, err := squirrel.Select(
		"s.student_id",
		"u.first_name || ' ' || u.last_name AS student_name",
		"sp.grade", "s.excused", "s.unexcused", "s.max_allowed",
	).From("sanctions s").
		Join("student_profiles sp ON s.student_id = sp.id").
		Join("users u ON sp.user_id = u.id").
		OrderBy("sp.grade", "student_name").
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

	result := make([]AbsenceRow, 0)
	for rows.Next() {
		var row AbsenceRow
		if err := rows.Scan(&row.StudentID, &row.StudentName, &row.Grade,
			&row.Absences.Excused, &row.Absences.Unexcused, &row.Absences.MaxAllowed); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
