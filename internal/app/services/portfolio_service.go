package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/events"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/policy"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

// PortfolioService defines the interface for portfolio operations
type PortfolioService interface {
	Get(ctx context.Context, principal Principal, studentID int64) (*models.Portfolio, error)
	Update(ctx context.Context, principal Principal, studentID int64, req *dto.UpdatePortfolioRequest) (*models.Portfolio, error)
	AddRecommendation(ctx context.Context, principal Principal, studentID int64, req *dto.AddRecommendationRequest) (*models.Portfolio, error)
	DeleteRecommendation(ctx context.Context, principal Principal, studentID, recommendationID int64) (*models.Portfolio, error)
}

// portfolioServiceImpl implements PortfolioService
type portfolioServiceImpl struct {
	portfolioRepo *repositories.PortfolioRepository
	studentRepo   *repositories.StudentRepository
	userRepo      *repositories.UserRepository
	engine        *policy.Engine
	bus           events.Bus
}

// NewPortfolioService creates a new PortfolioService
func NewPortfolioService(
	portfolioRepo *repositories.PortfolioRepository,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	engine *policy.Engine,
	bus events.Bus,
) PortfolioService {
	return &portfolioServiceImpl{
		portfolioRepo: portfolioRepo,
		studentRepo:   studentRepo,
		userRepo:      userRepo,
		engine:        engine,
		bus:           bus,
	}
}

func (s *portfolioServiceImpl) authorize(ctx context.Context, principal Principal, studentID int64, op policy.Operation) (int64, error) {
	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return ownerUserID, s.engine.Authorize(policy.ResourcePortfolio, op, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	})
}

// Get retrieves the portfolio; a missing one yields the default empty
// shape without persisting it
func (s *portfolioServiceImpl) Get(ctx context.Context, principal Principal, studentID int64) (*models.Portfolio, error) {
	if _, err := s.authorize(ctx, principal, studentID, policy.OpRead); err != nil {
		return nil, err
	}

	portfolio, err := s.portfolioRepo.GetByStudent(ctx, studentID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return models.DefaultPortfolio(studentID), nil
		}
		return nil, err
	}

	if portfolio.MentorID != nil {
		if mentor, err := s.userRepo.GetUserByID(ctx, *portfolio.MentorID); err == nil {
			portfolio.Mentor = mentor
		}
	}
	return portfolio, nil
}

// Update writes portfolio content, owner/admin. A mentor must hold the
// teacher or admin role.
func (s *portfolioServiceImpl) Update(ctx context.Context, principal Principal, studentID int64, req *dto.UpdatePortfolioRequest) (*models.Portfolio, error) {
	if _, err := s.authorize(ctx, principal, studentID, policy.OpUpdate); err != nil {
		return nil, err
	}

	current, err := s.portfolioRepo.GetByStudent(ctx, studentID)
	if err != nil {
		if err != apperrors.ErrNotFound {
			return nil, err
		}
		current = models.DefaultPortfolio(studentID)
	}

	if req.Experience != nil {
		current.Experience = *req.Experience
	}
	if req.Projects != nil {
		current.Projects = *req.Projects
	}
	if req.MentorID != nil {
		mentor, err := s.userRepo.GetUserByID(ctx, *req.MentorID)
		if err != nil {
			return nil, err
		}
		if !mentor.RoleType.Privileged() {
			return nil, apperrors.NewValidationError("mentor must be a teacher or admin")
		}
		current.MentorID = req.MentorID
	}

	return s.portfolioRepo.Upsert(ctx, current)
}

// DuplicateAuthor reports whether an author already appears in the
// recommendation list (case-insensitive, trimmed)
func DuplicateAuthor(recommendations []models.Recommendation, author string) bool {
	needle := strings.ToLower(strings.TrimSpace(author))
	for _, rec := range recommendations {
		if strings.ToLower(strings.TrimSpace(rec.Author)) == needle {
			return true
		}
	}
	return false
}

// AddRecommendation appends a recommendation, owner/teacher/admin.
// One recommendation per distinct author, capped at the list maximum.
func (s *portfolioServiceImpl) AddRecommendation(ctx context.Context, principal Principal, studentID int64, req *dto.AddRecommendationRequest) (*models.Portfolio, error) {
	ownerUserID, err := s.authorize(ctx, principal, studentID, policy.OpCreate)
	if err != nil {
		return nil, err
	}

	author := strings.TrimSpace(req.Author)
	text := strings.TrimSpace(req.Text)
	if author == "" || text == "" {
		return nil, apperrors.NewValidationError("author and text must not be empty")
	}

	current, err := s.portfolioRepo.GetByStudent(ctx, studentID)
	if err != nil {
		if err != apperrors.ErrNotFound {
			return nil, err
		}
		current = models.DefaultPortfolio(studentID)
	}

	if len(current.Recommendations) >= models.MaxRecommendations {
		return nil, apperrors.NewConflictError(
			fmt.Sprintf("a portfolio holds at most %d recommendations", models.MaxRecommendations))
	}
	if DuplicateAuthor(current.Recommendations, author) {
		return nil, apperrors.NewConflictError("this author has already left a recommendation")
	}

	if _, err := s.portfolioRepo.AddRecommendation(ctx, studentID, models.Recommendation{
		Text:   text,
		Author: author,
	}); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.TopicRecommendationAdded, events.RecommendationAdded{
		StudentID:   studentID,
		OwnerUserID: ownerUserID,
		Author:      author,
	})

	return s.portfolioRepo.GetByStudent(ctx, studentID)
}

// DeleteRecommendation removes one recommendation, owner/admin
func (s *portfolioServiceImpl) DeleteRecommendation(ctx context.Context, principal Principal, studentID, recommendationID int64) (*models.Portfolio, error) {
	if _, err := s.authorize(ctx, principal, studentID, policy.OpUpdate); err != nil {
		return nil, err
	}

	if err := s.portfolioRepo.DeleteRecommendation(ctx, studentID, recommendationID); err != nil {
		return nil, err
	}
	return s.portfolioRepo.GetByStudent(ctx, studentID)
}
