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

// PortfolioRepository handles database operations for Portfolio and its
// recommendations
type PortfolioRepository struct {
	DB *pgxpool.Pool
}

// NewPortfolioRepository creates a new PortfolioRepository
func NewPortfolioRepository(db *pgxpool.Pool) *PortfolioRepository {
	return &PortfolioRepository{DB: db}
}

// GetByStudent retrieves the portfolio with its recommendations.
// Returns apperrors.ErrNotFound when no record exists; read paths
// synthesize the default shape instead of persisting one.
func (r *PortfolioRepository) GetByStudent(ctx context.Context, studentID int64) (*models.Portfolio, error) {
	sql, args, err := squirrel.Select(
		"id", "student_id", "experience", "projects", "mentor_id", "created_at", "updated_at",
	).From("portfolios").
		Where(squirrel.Eq{"student_id": studentID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p models.Portfolio
	err = r.DB.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.StudentID, &p.Experience, &p.Projects, &p.MentorID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		logger.Error().Err(err).Msg("Error scanning portfolio row")
		return nil, err
	}

	recommendations, err := r.listRecommendations(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Recommendations = recommendations
	return &p, nil
}

func (r *PortfolioRepository) listRecommendations(ctx context.Context, portfolioID int64) ([]models.Recommendation, error) {
	sql, args, err := squirrel.Select("id", "text", "author", "created_at").
		From("recommendations").
		Where(squirrel.Eq{"portfolio_id": portfolioID}).
		OrderBy("created_at ASC").
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

	recommendations := make([]models.Recommendation, 0)
	for rows.Next() {
		var rec models.Recommendation
		if err := rows.Scan(&rec.ID, &rec.Text, &rec.Author, &rec.Date); err != nil {
			return nil, err
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, rows.Err()
}

// Upsert creates or updates the portfolio row for a student and returns it
func (r *PortfolioRepository) Upsert(ctx context.Context, portfolio *models.Portfolio) (*models.Portfolio, error) {
	sql, args, err := squirrel.Insert("portfolios").
		Columns("student_id", "experience", "projects", "mentor_id").
		Values(portfolio.StudentID, portfolio.Experience, portfolio.Projects, portfolio.MentorID).
		Suffix(`ON CONFLICT (student_id) DO UPDATE
			SET experience = EXCLUDED.experience,
			    projects = EXCLUDED.projects,
			    mentor_id = EXCLUDED.mentor_id,
			    updated_at = now()
			RETURNING id`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var id int64
	if err := r.DB.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return nil, err
	}
	return r.GetByStudent(ctx, portfolio.StudentID)
}

// ensureRecord creates the portfolio row for a student if missing and
// returns its id
func (r *PortfolioRepository) ensureRecord(ctx context.Context, studentID int64) (int64, error) {
	sql, args, err := squirrel.Insert("portfolios").
		Columns("student_id", "experience", "projects").
		Values(studentID, "", "").
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

// AddRecommendation appends a recommendation to a student's portfolio,
// creating the portfolio row if needed
func (r *PortfolioRepository) AddRecommendation(ctx context.Context, studentID int64, rec models.Recommendation) (int64, error) {
	portfolioID, err := r.ensureRecord(ctx, studentID)
	if err != nil {
		return 0, err
	}

	sql, args, err := squirrel.Insert("recommendations").
		Columns("portfolio_id", "text", "author", "created_at").
		Values(portfolioID, rec.Text, rec.Author, time.Now()).
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

// DeleteRecommendation removes one recommendation from a student's portfolio
func (r *PortfolioRepository) DeleteRecommendation(ctx context.Context, studentID, recommendationID int64) error {
	sql, args, err := squirrel.Delete("recommendations").
		Where(squirrel.Eq{"id": recommendationID}).
		Where(squirrel.Expr(
			"portfolio_id = (SELECT id FROM portfolios WHERE student_id = ?)", studentID)).
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
