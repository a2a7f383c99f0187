// Package seed creates the default records a fresh installation needs:
// an admin account and the starter credit categories.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/config"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/auth"
)

// defaultCategories is the starter reference data, a few named activity
// groups per pillar
var defaultCategories = []models.CreditCategory{
	{Pillar: models.PillarThinking, Name: "Олимпиади и състезания", Description: "Участие в предметни олимпиади и състезания"},
	{Pillar: models.PillarThinking, Name: "Клубове и кръжоци", Description: "Редовно участие в клуб по интереси"},
	{Pillar: models.PillarCharity, Name: "Доброволчество", Description: "Доброволческа работа в полза на общността"},
	{Pillar: models.PillarCharity, Name: "Кампании", Description: "Организиране или участие в благотворителни кампании"},
	{Pillar: models.PillarSport, Name: "Отборни спортове", Description: "Участие в училищен или клубен отбор"},
	{Pillar: models.PillarSport, Name: "Индивидуални спортове", Description: "Редовни тренировки и участие в турнири"},
}

// CreateDefaultData seeds the admin account and credit categories.
// Safe to run on every startup; existing records are left untouched.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, cfg *config.Config, lgr zerolog.Logger) error {
	userRepo := repositories.NewUserRepository(dbPool)
	categoryRepo := repositories.NewCreditCategoryRepository(dbPool)

	var finalErr error

	adminEmail := cfg.Seed.AdminEmail
	if adminEmail == "" {
		adminEmail = "admin@schoolmate.bg"
	}
	adminPassword := cfg.Seed.AdminPassword
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	exists, err := userRepo.EmailExists(ctx, adminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	} else if !exists {
		lgr.Info().Str("email", adminEmail).Msg("Creating default admin user")

		hashed, err := auth.HashPassword(adminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
		} else {
			_, err = userRepo.CreateUser(ctx, &models.User{
				Email:     adminEmail,
				Password:  hashed,
				FirstName: "System",
				LastName:  "Administrator",
				RoleType:  models.RoleAdmin,
				IsActive:  true,
			})
			if err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
				lgr.Error().Err(err).Msg("Error creating admin user")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	for i := range defaultCategories {
		category := defaultCategories[i]
		if _, err := categoryRepo.Create(ctx, &category); err != nil &&
			!errors.Is(err, apperrors.ErrAlreadyExists) {
			lgr.Error().Err(err).Str("category", category.Name).Msg("Error creating credit category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	return finalErr
}
