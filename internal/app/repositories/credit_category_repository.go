package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

// CreditCategoryRepository handles database operations for the credit
// category reference data
type CreditCategoryRepository struct {
	DB *pgxpool.Pool
}

// NewCreditCategoryRepository creates a new CreditCategoryRepository
func NewCreditCategoryRepository(db *pgxpool.Pool) *CreditCategoryRepository {
	return &CreditCategoryRepository{DB: db}
}

// Create inserts a new category, unique per (pillar, name)
func (r *CreditCategoryRepository) Create(ctx context.Context, category *models.CreditCategory) (int64, error) {
	sql, args, err := squirrel.Insert("credit_categories").
		Columns("pillar", "name", "description").
		Values(category.Pillar, category.Name, category.Description).
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
		return 0, err
	}
	return id, nil
}

// GetByID retrieves a category by id
func (r *CreditCategoryRepository) GetByID(ctx context.Context, id int64) (*models.CreditCategory, error) {
	sql, args, err := squirrel.Select("id", "pillar", "name", "description").
		From("credit_categories").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var c models.CreditCategory
	err = r.DB.QueryRow(ctx, sql, args...).Scan(&c.ID, &c.Pillar, &c.Name, &c.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List retrieves all categories, optionally filtered by pillar
func (r *CreditCategoryRepository) List(ctx context.Context, pillar *models.Pillar) ([]*models.CreditCategory, error) {
	builder := squirrel.Select("id", "pillar", "name", "description").
		From("credit_categories").
		OrderBy("pillar", "name").
		PlaceholderFormat(squirrel.Dollar)
	if pillar != nil {
		builder = builder.Where(squirrel.Eq{"pillar": *pillar})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*models.CreditCategory, 0)
	for rows.Next() {
		var c models.CreditCategory
		if err := rows.Scan(&c.ID, &c.Pillar, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

// Delete removes a category by id
func (r *CreditCategoryRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := squirrel.Delete("credit_categories").
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
