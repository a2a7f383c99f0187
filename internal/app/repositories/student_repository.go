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

// ListStudentsParams holds filters and pagination for student listing
type ListStudentsParams struct {
	Grade          *int
	Specialization *string
	Search         *string
	Page           int
	Size           int
}

// StudentRepository handles database operations for StudentProfile
type StudentRepository struct {
	DB *pgxpool.Pool
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) selectStudentQuery() squirrel.SelectBuilder {
	return squirrel.Select(
		"sp.id", "sp.user_id", "sp.grade", "sp.specialization", "sp.average_grade",
		"sp.image_url", "sp.created_at", "sp.updated_at",
		"u.id", "u.email", "u.first_name", "u.last_name", "u.role_type", "u.is_active",
	).From("student_profiles sp").
		Join("users u ON sp.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)
}

func scanStudent(row pgx.Row) (*models.StudentProfile, error) {
	var s models.StudentProfile
	var u models.User
	err := row.Scan(
		&s.ID, &s.UserID, &s.Grade, &s.Specialization, &s.AverageGrade,
		&s.ImageURL, &s.CreatedAt, &s.UpdatedAt,
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.RoleType, &u.IsActive,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, err
	}
	s.User = &u
	return &s, nil
}

// CreateProfile inserts a new student profile and returns its id
func (r *StudentRepository) CreateProfile(ctx context.Context, profile *models.StudentProfile) (int64, error) {
	sql, args, err := squirrel.Insert("student_profiles").
		Columns("user_id", "grade", "specialization", "average_grade", "image_url").
		Values(profile.UserID, profile.Grade, profile.Specialization, profile.AverageGrade, profile.ImageURL).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrProfileAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create student profile query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a student profile with its user by profile id
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.StudentProfile, error) {
	sql, args, err := r.selectStudentQuery().Where(squirrel.Eq{"sp.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanStudent(r.DB.QueryRow(ctx, sql, args...))
}

// GetByUserID retrieves a student profile by the owning user account id
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentProfile, error) {
	sql, args, err := r.selectStudentQuery().Where(squirrel.Eq{"sp.user_id": userID}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanStudent(r.DB.QueryRow(ctx, sql, args...))
}

// GetOwnerUserID resolves a student profile id to its user account id.
// Used by the policy layer before every ownership comparison.
func (r *StudentRepository) GetOwnerUserID(ctx context.Context, studentID int64) (int64, error) {
	sql, args, err := squirrel.Select("user_id").
		From("student_profiles").
		Where(squirrel.Eq{"id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var userID int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
		if err == pgx.ErrNoRows {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, err
	}
	return userID, nil
}

// Update modifies a student profile's mutable fields
func (r *StudentRepository) Update(ctx context.Context, profile *models.StudentProfile) error {
	sql, args, err := squirrel.Update("student_profiles").
		Set("grade", profile.Grade).
		Set("specialization", profile.Specialization).
		Set("average_grade", profile.AverageGrade).
		Set("image_url", profile.ImageURL).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": profile.ID}).
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
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student profile; dependent records (credits, goals,
// sanctions, participations, portfolio) cascade at the database level
func (r *StudentRepository) Delete(ctx context.Context, studentID int64) error {
	sql, args, err := squirrel.Delete("student_profiles").
		Where(squirrel.Eq{"id": studentID}).
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
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// List retrieves a paginated, filtered list of student profiles
func (r *StudentRepository) List(ctx context.Context, params ListStudentsParams) ([]*models.StudentProfile, dto.PaginationInfo, error) {
	sqlBuilder := r.selectStudentQuery()
	countBuilder := squirrel.Select("count(*)").
		From("student_profiles sp").
		Join("users u ON sp.user_id = u.id").
		PlaceholderFormat(squirrel.Dollar)

	if params.Grade != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"sp.grade": *params.Grade})
		countBuilder = countBuilder.Where(squirrel.Eq{"sp.grade": *params.Grade})
	}
	if params.Specialization != nil {
		sqlBuilder = sqlBuilder.Where(squirrel.Eq{"sp.specialization": *params.Specialization})
		countBuilder = countBuilder.Where(squirrel.Eq{"sp.specialization": *params.Specialization})
	}
	if params.Search != nil && *params.Search != "" {
		like := "%" + *params.Search + "%"
		cond := squirrel.Or{
			squirrel.ILike{"u.first_name": like},
			squirrel.ILike{"u.last_name": like},
			squirrel.ILike{"u.email": like},
		}
		sqlBuilder = sqlBuilder.Where(cond)
		countBuilder = countBuilder.Where(cond)
	}

	countSql, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	var total int64
	if err := r.DB.QueryRow(ctx, countSql, countArgs...).Scan(&total); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	page, size := helpers.NormalizePage(params.Page, params.Size)
	sqlStr, args, err := sqlBuilder.
		OrderBy("u.last_name", "u.first_name").
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

	students := make([]*models.StudentProfile, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, dto.PaginationInfo{}, err
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, dto.PaginationInfo{}, err
	}

	return students, helpers.NewPaginationInfo(page, size, total), nil
}

// CountByGrade returns the number of students per grade
func (r *StudentRepository) CountByGrade(ctx context.Context) (map[int]int64, error) {
	sql, args, err := squirrel.Select("grade", "count(*)").
		From("student_profiles").
		GroupBy("grade").
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

	counts := make(map[int]int64)
	for rows.Next() {
		var grade int
		var count int64
		if err := rows.Scan(&grade, &count); err != nil {
			return nil, err
		}
		counts[grade] = count
	}
	return counts, rows.Err()
}

// CountAll returns the total number of student profiles
func (r *StudentRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRow(ctx, "SELECT count(*) FROM student_profiles").Scan(&count)
	return count, err
}
