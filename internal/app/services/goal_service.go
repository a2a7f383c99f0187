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

// GoalService defines the interface for per-category goal operations
type GoalService interface {
	List(ctx context.Context, principal Principal, studentID int64) ([]*models.Goal, error)
	Get(ctx context.Context, principal Principal, studentID int64, category models.GoalCategory) (*models.Goal, error)
	Upsert(ctx context.Context, principal Principal, studentID int64, category models.GoalCategory, req *dto.UpdateGoalRequest) (*models.Goal, error)
	Delete(ctx context.Context, principal Principal, studentID int64, category models.GoalCategory) error
}

// goalServiceImpl implements GoalService
type goalServiceImpl struct {
	goalRepo    *repositories.GoalRepository
	studentRepo *repositories.StudentRepository
	engine      *policy.Engine
}

// NewGoalService creates a new GoalService
func NewGoalService(
	goalRepo *repositories.GoalRepository,
	studentRepo *repositories.StudentRepository,
	engine *policy.Engine,
) GoalService {
	return &goalServiceImpl{goalRepo: goalRepo, studentRepo: studentRepo, engine: engine}
}

func (s *goalServiceImpl) authorize(ctx context.Context, principal Principal, studentID int64, op policy.Operation) error {
	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, studentID)
	if err != nil {
		return err
	}
	return s.engine.Authorize(policy.ResourceGoal, op, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	})
}

// List retrieves all goals of a student
func (s *goalServiceImpl) List(ctx context.Context, principal Principal, studentID int64) ([]*models.Goal, error) {
	if err := s.authorize(ctx, principal, studentID, policy.OpRead); err != nil {
		return nil, err
	}
	return s.goalRepo.ListByStudent(ctx, studentID)
}

// Get retrieves one goal by category. A missing goal yields the default
// empty shape with the fixed category title; reads never persist it.
func (s *goalServiceImpl) Get(ctx context.Context, principal Principal, studentID int64, category models.GoalCategory) (*models.Goal, error) {
	if !category.IsValid() {
		return nil, apperrors.NewValidationError("unknown goal category")
	}
	if err := s.authorize(ctx, principal, studentID, policy.OpRead); err != nil {
		return nil, err
	}

	goal, err := s.goalRepo.GetByStudentAndCategory(ctx, studentID, category)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return &models.Goal{
				StudentID:  studentID,
				Category:   category,
				Title:      models.GoalCategoryTitles[category],
				Activities: []string{},
			}, nil
		}
		return nil, err
	}
	return goal, nil
}

// ValidateGoalActivities enforces activity list bounds and rejects
// duplicate entries within the submission (case-insensitive, trimmed)
func ValidateGoalActivities(activities []string) ([]string, error) {
	if len(activities) > models.MaxGoalActivities {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("at most %d activities are allowed", models.MaxGoalActivities))
	}

	seen := make(map[string]struct{}, len(activities))
	cleaned := make([]string, 0, len(activities))
	for _, activity := range activities {
		trimmed := strings.TrimSpace(activity)
		if trimmed == "" {
			return nil, apperrors.NewValidationError("activities must not be empty")
		}
		if len(trimmed) > models.MaxGoalActivityLength {
			return nil, apperrors.NewValidationError(
				fmt.Sprintf("activities are limited to %d characters", models.MaxGoalActivityLength))
		}
		key := strings.ToLower(trimmed)
		if _, dup := seen[key]; dup {
			return nil, apperrors.NewConflictError("duplicate activity: " + trimmed)
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, trimmed)
	}
	return cleaned, nil
}

// Upsert creates or replaces the goal for (student, category), owner/admin
func (s *goalServiceImpl) Upsert(ctx context.Context, principal Principal, studentID int64, category models.GoalCategory, req *dto.UpdateGoalRequest) (*models.Goal, error) {
	if !category.IsValid() {
		return nil, apperrors.NewValidationError("unknown goal category")
	}
	if err := s.authorize(ctx, principal, studentID, policy.OpUpdate); err != nil {
		return nil, err
	}

	if len(req.Description) > models.MaxGoalDescriptionChars {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("description is limited to %d characters", models.MaxGoalDescriptionChars))
	}
	activities, err := ValidateGoalActivities(req.Activities)
	if err != nil {
		return nil, err
	}

	return s.goalRepo.Upsert(ctx, &models.Goal{
		StudentID:   studentID,
		Category:    category,
		Description: req.Description,
		Activities:  activities,
	})
}

// Delete removes the goal for (student, category), owner/admin
func (s *goalServiceImpl) Delete(ctx context.Context, principal Principal, studentID int64, category models.GoalCategory) error {
	if !category.IsValid() {
		return apperrors.NewValidationError("unknown goal category")
	}
	if err := s.authorize(ctx, principal, studentID, policy.OpDelete); err != nil {
		return err
	}
	return s.goalRepo.Delete(ctx, studentID, category)
}
