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

// GoalRepository handles database operations for Goal
type GoalRepository struct {
	DB *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{DB: db}
}

var goalColumns = []string{
	"id", "student_id", "category", "description", "activities", "created_at", "updated_at",
}

func scanGoal(row pgx.Row) (*models.Goal, error) {
	var g models.Goal
	err := row.Scan(
		&g.ID, &g.StudentID, &g.Category, &g.Description, &g.Activities,
		&g.CreatedAt, &g.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning goal row")
		return nil, err
	}
	g.Title = models.GoalCategoryTitles[g.Category]
	return &g, nil
}

// Upsert creates or replaces the goal for (student, category).
// The unique pair constraint makes this a natural ON CONFLICT target.
func (r *GoalRepository) Upsert(ctx context.Context, goal *models.Goal) (*models.Goal, error) {
	sql, args, err := squirrel.Insert("goals").
		Columns("student_id", "category", "description", "activities").
		Values(goal.StudentID, goal.Category, goal.Description, goal.Activities).
		Suffix(`ON CONFLICT (student_id, category) DO UPDATE
			SET description = EXCLUDED.description,
			    activities = EXCLUDED.activities,
			    updated_at = now()
			RETURNING id, student_id, category, description, activities, created_at, updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanGoal(r.DB.QueryRow(ctx, sql, args...))
}

// GetByStudentAndCategory retrieves one goal
func (r *GoalRepository) GetByStudentAndCategory(ctx context.Context, studentID int64, category models.GoalCategory) (*models.Goal, error) {
	sql, args, err := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"student_id": studentID, "category": category}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}
	return scanGoal(r.DB.QueryRow(ctx, sql, args...))
}

// ListByStudent retrieves all goals of one student in category order
func (r *GoalRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Goal, error) {
	sql, args, err := squirrel.Select(goalColumns...).
		From("goals").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("category").
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

	goals := make([]*models.Goal, 0)
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// Delete removes the goal for (student, category)
func (r *GoalRepository) Delete(ctx context.Context, studentID int64, category models.GoalCategory) error {
	sql, args, err := squirrel.Delete("goals").
		Where(squirrel.Eq{"student_id": studentID, "category": category}).
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
