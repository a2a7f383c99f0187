package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/policy"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

// InterestService defines the interface for the interests document
type InterestService interface {
	Get(ctx context.Context, principal Principal, studentID int64) (*models.Interest, error)
	Update(ctx context.Context, principal Principal, studentID int64, req *dto.UpdateInterestsRequest) (*models.Interest, error)
}

// interestServiceImpl implements InterestService
type interestServiceImpl struct {
	interestRepo *repositories.InterestRepository
	studentRepo  *repositories.StudentRepository
	engine       *policy.Engine
}

// NewInterestService creates a new InterestService
func NewInterestService(
	interestRepo *repositories.InterestRepository,
	studentRepo *repositories.StudentRepository,
	engine *policy.Engine,
) InterestService {
	return &interestServiceImpl{interestRepo: interestRepo, studentRepo: studentRepo, engine: engine}
}

func (s *interestServiceImpl) authorize(ctx context.Context, principal Principal, studentID int64, op policy.Operation) error {
	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, studentID)
	if err != nil {
		return err
	}
	return s.engine.Authorize(policy.ResourceInterest, op, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	})
}

// Get retrieves the interests document; a missing one yields the default
// empty shape without persisting it
func (s *interestServiceImpl) Get(ctx context.Context, principal Principal, studentID int64) (*models.Interest, error) {
	if err := s.authorize(ctx, principal, studentID, policy.OpRead); err != nil {
		return nil, err
	}

	interest, err := s.interestRepo.GetByStudent(ctx, studentID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return &models.Interest{
				StudentID: studentID,
				Interests: []models.InterestEntry{},
				Hobbies:   []string{},
			}, nil
		}
		return nil, err
	}
	return interest, nil
}

// ValidateInterestEntries enforces the entry cap and rejects a duplicate
// (category, subcategory) pair within the submission with a conflict,
// never a silent drop
func ValidateInterestEntries(entries []dto.InterestEntryRequest) ([]models.InterestEntry, error) {
	if len(entries) > models.MaxInterestEntries {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("at most %d interests are allowed", models.MaxInterestEntries))
	}

	seen := make(map[string]struct{}, len(entries))
	cleaned := make([]models.InterestEntry, 0, len(entries))
	for _, entry := range entries {
		category := strings.TrimSpace(entry.Category)
		subcategory := strings.TrimSpace(entry.Subcategory)
		if category == "" || subcategory == "" {
			return nil, apperrors.NewValidationError("interest category and subcategory must not be empty")
		}
		key := strings.ToLower(category) + "\x00" + strings.ToLower(subcategory)
		if _, dup := seen[key]; dup {
			return nil, apperrors.NewConflictError(
				fmt.Sprintf("duplicate interest: %s / %s", category, subcategory))
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, models.InterestEntry{Category: category, Subcategory: subcategory})
	}
	return cleaned, nil
}

// ValidateHobbies enforces the hobby cap and rejects duplicates
// (case-insensitive, trimmed) within the submission
func ValidateHobbies(hobbies []string) ([]string, error) {
	if len(hobbies) > models.MaxHobbies {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("at most %d hobbies are allowed", models.MaxHobbies))
	}

	seen := make(map[string]struct{}, len(hobbies))
	cleaned := make([]string, 0, len(hobbies))
	for _, hobby := range hobbies {
		trimmed := strings.TrimSpace(hobby)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("hobbies must not be empty")
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			return nil, apperrors.NewConflictError("duplicate hobby: " + trimmed)
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned, nil
}

// Update replaces the interests document, owner/admin only
func (s *interestServiceImpl) Update(ctx context.Context, principal Principal, studentID int64, req *dto.UpdateInterestsRequest) (*models.Interest, error) {
	if err := s.authorize(ctx, principal, studentID, policy.OpUpdate); err != nil {
		return nil, err
	}

	entries, err := ValidateInterestEntries(req.Interests)
	if err != nil {
		return nil, err
	}
	hobbies, err := ValidateHobbies(req.Hobbies)
	if err != nil {
		return nil, err
	}

	return s.interestRepo.Upsert(ctx, &models.Interest{
		StudentID: studentID,
		Interests: entries,
		Hobbies:   hobbies,
	})
}
