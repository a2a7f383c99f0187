package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// InterestRepository handles database operations for the per-student
// interests document. Interests and hobbies live in JSONB columns.
type InterestRepository struct {
	DB *pgxpool.Pool
}

// NewInterestRepository creates a new InterestRepository
func NewInterestRepository(db *pgxpool.Pool) *InterestRepository {
	return &InterestRepository{DB: db}
}

func scanInterest(row pgx.Row) (*models.Interest, error) {
	var i models.Interest
	err := row.Scan(
		&i.ID, &i.StudentID, &i.Interests, &i.Hobbies, &i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning interest row")
		return nil, err
	}
	if i.Interests == nil {
		i.Interests = []models.InterestEntry{}
	}
	if i.Hobbies == nil {
		i.Hobbies = []string{}
	}
	return &i, nil
}

// GetByStudent retrieves the interests document of one student
func (r *InterestRepository) GetByStudent(ctx context.Context, studentID int64) (*models.Interest, error) {
	sql, args, err := squirrel.Select("id", "student_id", "interests", "hobbies", "created_at", "updated_at").
		From("interests").
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanInterest(r.DB.QueryRow(ctx, sql, args...))
}

// Upsert creates or replaces the interests document for a student
func (r *InterestRepository) Upsert(ctx context.Context, interest *models.Interest) (*models.Interest, error) {
	sql, args, err := squirrel.Insert("interests").
		Columns("student_id", "interests", "hobbies").
		Values(interest.StudentID, interest.Interests, interest.Hobbies).
		Suffix(`ON CONFLICT (student_id) DO UPDATE
			SET interests = EXCLUDED.interests,
			    hobbies = EXCLUDED.hobbies,
			    updated_at = now()
			RETURNING id, student_id, interests, hobbies, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanInterest(r.DB.QueryRow(ctx, sql, args...))
}

// ListAllHobbies returns the hobby lists of every student that has one.
// The popularity ranking is computed in the statistics service.
func (r *InterestRepository) ListAllHobbies(ctx context.Context) ([][]string, error) {
	rows, err := r.DB.Query(ctx, "SELECT hobbies FROM interests WHERE hobbies IS NOT NULL")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	all := make([][]string, 0)
	for rows.Next() {
		var hobbies []string
		if err := rows.Scan(&hobbies); err != nil {
			return nil, err
		}
		all = append(all, hobbies)
	}
	return all, rows.Err()
}
