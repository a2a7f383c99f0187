package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// AchievementRepository handles database operations for Achievement
type AchievementRepository struct {
	DB *pgxpool.Pool
}

// NewAchievementRepository creates a new AchievementRepository
func NewAchievementRepository(db *pgxpool.Pool) *AchievementRepository {
	return &AchievementRepository{DB: db}
}

var achievementColumns = []string{
	"id", "student_id", "category", "title", "description",
	"achieved_on", "place", "issuer", "created_at",
}

func scanAchievement(row pgx.Row) (*models.Achievement, error) {
	var a models.Achievement
	err := row.Scan(
		&a.ID, &a.StudentID, &a.Category, &a.Title, &a.Description,
		&a.Date, &a.Place, &a.Issuer, &a.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning achievement row")
		return nil, err
	}
	return &a, nil
}

// Create inserts a new achievement and returns its id
func (r *AchievementRepository) Create(ctx context.Context, achievement *models.Achievement) (int64, error) {
	sql, args, err := squirrel.Insert("achievements").
		Columns("student_id", "category", "title", "description", "achieved_on", "place", "issuer").
		Values(achievement.StudentID, achievement.Category, achievement.Title,
			achievement.Description, achievement.Date, achievement.Place, achievement.Issuer).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, apperrors.ErrAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create achievement query")
		return 0, err
	}
	return id, nil
}

// GetByID retrieves an achievement by id
func (r *AchievementRepository) GetByID(ctx context.Context, id int64) (*models.Achievement, error) {
	sql, args, err := squirrel.Select(achievementColumns...).
		From("achievements").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanAchievement(r.DB.QueryRow(ctx, sql, args...))
}

// ListByStudent retrieves all achievements of one student, newest first
func (r *AchievementRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Achievement, error) {
	sql, args, err := squirrel.Select(achievementColumns...).
		From("achievements").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("achieved_on DESC").
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

	achievements := make([]*models.Achievement, 0)
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		achievements = append(achievements, a)
	}
	return achievements, rows.Err()
}

// Delete removes an achievement by id
func (r *AchievementRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("achievements").
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
		return apperrors.ErrNotFound
	}
	return nil
}

// TopAchievers returns the students with the most achievements
func (r *AchievementRepository) TopAchievers(ctx context.Context, limit int) ([]dto.RankedStudent, error) {
	sql, args, err := squirrel.Select(
		"a.student_id",
		"u.first_name || ' ' || u.last_name AS student_name",
		"count(*) AS achievement_count",
	).From("achievements a").
		Join("student_profiles sp ON a.student_id = sp.id").
		Join("users u ON sp.user_id = u.id").
		GroupBy("a.student_id", "u.first_name", "u.last_name").
		OrderBy("achievement_count DESC", "student_name ASC").
		Limit(uint64(limit)).
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

	ranked := make([]dto.RankedStudent, 0, limit)
	for rows.Next() {
		var s dto.RankedStudent
		if err := rows.Scan(&s.StudentID, &s.StudentName, &s.Count); err != nil {
			return nil, err
		}
		ranked = append(ranked, s)
	}
	return ranked, rows.Err()
}
