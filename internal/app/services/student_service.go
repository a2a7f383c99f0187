package services

import (
	"context"
	"fmt"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/policy"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

// StudentService defines the interface for student profile operations
type StudentService interface {
	Create(ctx context.Context, principal Principal, req *dto.CreateStudentProfileRequest) (*models.StudentProfile, error)
	GetByID(ctx context.Context, principal Principal, studentID int64) (*models.StudentProfile, error)
	GetOwn(ctx context.Context, principal Principal) (*models.StudentProfile, error)
	List(ctx context.Context, principal Principal, params repositories.ListStudentsParams) ([]*models.StudentProfile, dto.PaginationInfo, error)
	Update(ctx context.Context, principal Principal, studentID int64, req *dto.UpdateStudentProfileRequest) (*models.StudentProfile, error)
	Delete(ctx context.Context, principal Principal, studentID int64) error
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	studentRepo *repositories.StudentRepository
	userRepo    *repositories.UserRepository
	engine      *policy.Engine
}

// NewStudentService creates a new StudentService
func NewStudentService(
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	engine *policy.Engine,
) StudentService {
	return &studentServiceImpl{studentRepo: studentRepo, userRepo: userRepo, engine: engine}
}

func validateGrade(grade int) error {
	if grade < models.MinGrade || grade > models.MaxGrade {
		return apperrors.NewValidationError(
			fmt.Sprintf("grade must be between %d and %d", models.MinGrade, models.MaxGrade))
	}
	return nil
}

func validateAverageGrade(avg float64) error {
	if avg < models.MinAverageGrade || avg > models.MaxAverageGrade {
		return apperrors.NewValidationError(
			fmt.Sprintf("average grade must be between %.1f and %.1f",
				models.MinAverageGrade, models.MaxAverageGrade))
	}
	return nil
}

// Create adds a student profile for an existing user account (admin only)
func (s *studentServiceImpl) Create(ctx context.Context, principal Principal, req *dto.CreateStudentProfileRequest) (*models.StudentProfile, error) {
	if principal.Role != models.RoleAdmin {
		return nil, apperrors.ErrPermissionDenied
	}

	user, err := s.userRepo.GetUserByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.RoleType != models.RoleStudent {
		return nil, apperrors.NewValidationError("profile owner must hold the student role")
	}

	if err := validateGrade(req.Grade); err != nil {
		return nil, err
	}
	avg := req.AverageGrade
	if avg == 0 {
		avg = models.MinAverageGrade
	}
	if err := validateAverageGrade(avg); err != nil {
		return nil, err
	}

	profile := &models.StudentProfile{
		UserID:         req.UserID,
		Grade:          req.Grade,
		Specialization: req.Specialization,
		AverageGrade:   avg,
		ImageURL:       req.ImageURL,
	}
	id, err := s.studentRepo.CreateProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, id)
}

// GetByID retrieves one student profile, owner/teacher/admin only
func (s *studentServiceImpl) GetByID(ctx context.Context, principal Principal, studentID int64) (*models.StudentProfile, error) {
	profile, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Authorize(policy.ResourcePortfolio, policy.OpRead, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    profile.UserID,
	}); err != nil {
		return nil, err
	}
	return profile, nil
}

// GetOwn retrieves the caller's own student profile
func (s *studentServiceImpl) GetOwn(ctx context.Context, principal Principal) (*models.StudentProfile, error) {
	return s.studentRepo.GetByUserID(ctx, principal.UserID)
}

// List retrieves student profiles, staff only
func (s *studentServiceImpl) List(ctx context.Context, principal Principal, params repositories.ListStudentsParams) ([]*models.StudentProfile, dto.PaginationInfo, error) {
	if err := s.engine.Authorize(policy.ResourceStatistics, policy.OpRead, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
	}); err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	return s.studentRepo.List(ctx, params)
}

// Delete removes a student profile and its dependent records, admin only.
// The user account itself is kept; only the school records go.
func (s *studentServiceImpl) Delete(ctx context.Context, principal Principal, studentID int64) error {
	if principal.Role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}
	return s.studentRepo.Delete(ctx, studentID)
}

// Update modifies a student profile. Grade and average grade are staff
// only fields; the owner may only change the image.
func (s *studentServiceImpl) Update(ctx context.Context, principal Principal, studentID int64, req *dto.UpdateStudentProfileRequest) (*models.StudentProfile, error) {
	profile, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Authorize(policy.ResourcePortfolio, policy.OpUpdate, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    profile.UserID,
	}); err != nil {
		return nil, err
	}

	academicChange := req.Grade != nil || req.AverageGrade != nil || req.Specialization != nil
	if academicChange && !principal.IsStaff() {
		return nil, apperrors.NewForbiddenError("academic fields may only be changed by staff")
	}

	if req.Grade != nil {
		if err := validateGrade(*req.Grade); err != nil {
			return nil, err
		}
		profile.Grade = *req.Grade
	}
	if req.AverageGrade != nil {
		if err := validateAverageGrade(*req.AverageGrade); err != nil {
			return nil, err
		}
		profile.AverageGrade = *req.AverageGrade
	}
	if req.Specialization != nil {
		profile.Specialization = *req.Specialization
	}
	if req.ImageURL != nil {
		profile.ImageURL = req.ImageURL
	}

	if err := s.studentRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return s.studentRepo.GetByID(ctx, studentID)
}
