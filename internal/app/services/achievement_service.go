package services

import (
	"context"
	"strings"
	"time"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/policy"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
)

// AchievementService defines the interface for achievement operations
type AchievementService interface {
	List(ctx context.Context, principal Principal, studentID int64) ([]*models.Achievement, error)
	Create(ctx context.Context, principal Principal, studentID int64, req *dto.CreateAchievementRequest) (*models.Achievement, error)
	Delete(ctx context.Context, principal Principal, studentID, achievementID int64) error
}

// achievementServiceImpl implements AchievementService
type achievementServiceImpl struct {
	achievementRepo *repositories.AchievementRepository
	studentRepo     *repositories.StudentRepository
	engine          *policy.Engine
}

// NewAchievementService creates a new AchievementService
func NewAchievementService(
	achievementRepo *repositories.AchievementRepository,
	studentRepo *repositories.StudentRepository,
	engine *policy.Engine,
) AchievementService {
	return &achievementServiceImpl{
		achievementRepo: achievementRepo,
		studentRepo:     studentRepo,
		engine:          engine,
	}
}

func (s *achievementServiceImpl) authorize(ctx context.Context, principal Principal, studentID int64, op policy.Operation) error {
	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, studentID)
	if err != nil {
		return err
	}
	return s.engine.Authorize(policy.ResourceAchievement, op, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	})
}

// List retrieves all achievements of a student
func (s *achievementServiceImpl) List(ctx context.Context, principal Principal, studentID int64) ([]*models.Achievement, error) {
	if err := s.authorize(ctx, principal, studentID, policy.OpRead); err != nil {
		return nil, err
	}
	return s.achievementRepo.ListByStudent(ctx, studentID)
}

// Create records an achievement, owner/admin. The date must not be in
// the future.
func (s *achievementServiceImpl) Create(ctx context.Context, principal Principal, studentID int64, req *dto.CreateAchievementRequest) (*models.Achievement, error) {
	if err := s.authorize(ctx, principal, studentID, policy.OpCreate); err != nil {
		return nil, err
	}

	category := models.AchievementCategory(req.Category)
	if !category.IsValid() {
		return nil, apperrors.NewValidationError("unknown achievement category")
	}

	date, err := helpers.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be formatted as " + helpers.DateLayout)
	}
	if date.After(time.Now()) {
		return nil, apperrors.NewValidationError("achievement date must not be in the future")
	}

	achievement := &models.Achievement{
		StudentID:   studentID,
		Category:    category,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Date:        date,
		Place:       req.Place,
		Issuer:      req.Issuer,
	}
	id, err := s.achievementRepo.Create(ctx, achievement)
	if err != nil {
		if err == apperrors.ErrAlreadyExists {
			return nil, apperrors.NewConflictError("this achievement is already recorded")
		}
		return nil, err
	}
	return s.achievementRepo.GetByID(ctx, id)
}

// Delete removes an achievement, owner/admin. The achievement must
// belong to the student in the path.
func (s *achievementServiceImpl) Delete(ctx context.Context, principal Principal, studentID, achievementID int64) error {
	achievement, err := s.achievementRepo.GetByID(ctx, achievementID)
	if err != nil {
		return err
	}

	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, studentID)
	if err != nil {
		return err
	}

	if err := s.engine.Authorize(policy.ResourceAchievement, policy.OpDelete, policy.Request{
		Role:              principal.Role,
		UserID:            principal.UserID,
		ResourceExists:    true,
		OwnerUserID:       ownerUserID,
		PathStudentID:     studentID,
		ResourceStudentID: achievement.StudentID,
	}); err != nil {
		return err
	}

	return s.achievementRepo.Delete(ctx, achievementID)
}
