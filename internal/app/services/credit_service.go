package services

import (
	"context"
	"strings"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/events"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/policy"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

// CreditService defines the interface for credit operations
type CreditService interface {
	Create(ctx context.Context, principal Principal, req *dto.CreateCreditRequest) (*models.Credit, error)
	ListForStudent(ctx context.Context, principal Principal, studentID int64) ([]*models.Credit, error)
	ListPending(ctx context.Context, principal Principal) ([]*models.Credit, error)
	Validate(ctx context.Context, principal Principal, creditID int64, req *dto.ValidateCreditRequest) (*models.Credit, error)
	Delete(ctx context.Context, principal Principal, creditID int64) error

	CreateCategory(ctx context.Context, principal Principal, req *dto.CreateCreditCategoryRequest) (*models.CreditCategory, error)
	ListCategories(ctx context.Context, pillar *models.Pillar) ([]*models.CreditCategory, error)
	DeleteCategory(ctx context.Context, principal Principal, categoryID int64) error
}

// creditServiceImpl implements CreditService
type creditServiceImpl struct {
	creditRepo   *repositories.CreditRepository
	categoryRepo *repositories.CreditCategoryRepository
	studentRepo  *repositories.StudentRepository
	userRepo     *repositories.UserRepository
	engine       *policy.Engine
	bus          events.Bus
}

// NewCreditService creates a new CreditService
func NewCreditService(
	creditRepo *repositories.CreditRepository,
	categoryRepo *repositories.CreditCategoryRepository,
	studentRepo *repositories.StudentRepository,
	userRepo *repositories.UserRepository,
	engine *policy.Engine,
	bus events.Bus,
) CreditService {
	return &creditServiceImpl{
		creditRepo:   creditRepo,
		categoryRepo: categoryRepo,
		studentRepo:  studentRepo,
		userRepo:     userRepo,
		engine:       engine,
		bus:          bus,
	}
}

// Create submits a pending credit for the calling student. Staff cannot
// submit on a student's behalf. Duplicate activity text against a pending
// or validated credit is a conflict; a rejected one may be resubmitted.
func (s *creditServiceImpl) Create(ctx context.Context, principal Principal, req *dto.CreateCreditRequest) (*models.Credit, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		if err == apperrors.ErrStudentNotFound {
			return nil, apperrors.ErrPermissionDenied
		}
		return nil, err
	}

	if err := s.engine.Authorize(policy.ResourceCredit, policy.OpCreate, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    profile.UserID,
	}); err != nil {
		return nil, err
	}

	pillar := models.Pillar(req.Pillar)
	if !pillar.IsValid() {
		return nil, apperrors.NewValidationError("unknown pillar")
	}

	activity := strings.TrimSpace(req.Activity)
	if activity == "" {
		return nil, apperrors.NewValidationError("activity must not be empty")
	}

	duplicate, err := s.creditRepo.DuplicateExists(ctx, profile.ID, activity)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, apperrors.ErrCreditDuplicate
	}

	credit := &models.Credit{
		StudentID:   profile.ID,
		Pillar:      pillar,
		Activity:    activity,
		Description: req.Description,
	}
	id, err := s.creditRepo.Create(ctx, credit)
	if err != nil {
		return nil, err
	}
	return s.creditRepo.GetByID(ctx, id)
}

// ListForStudent retrieves all credits of a student, owner/teacher/admin
func (s *creditServiceImpl) ListForStudent(ctx context.Context, principal Principal, studentID int64) ([]*models.Credit, error) {
	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Authorize(policy.ResourceCredit, policy.OpRead, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	}); err != nil {
		return nil, err
	}
	return s.creditRepo.ListByStudent(ctx, studentID)
}

// ListPending retrieves the review queue, staff only
func (s *creditServiceImpl) ListPending(ctx context.Context, principal Principal) ([]*models.Credit, error) {
	if err := s.engine.Authorize(policy.ResourceCredit, policy.OpValidate, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
	}); err != nil {
		return nil, err
	}
	return s.creditRepo.ListByStatus(ctx, models.CreditPending)
}

// Validate transitions a pending credit to validated or rejected and
// notifies the owner through the event bus
func (s *creditServiceImpl) Validate(ctx context.Context, principal Principal, creditID int64, req *dto.ValidateCreditRequest) (*models.Credit, error) {
	credit, err := s.creditRepo.GetByID(ctx, creditID)
	if err != nil {
		return nil, err
	}

	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, credit.StudentID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Authorize(policy.ResourceCredit, policy.OpValidate, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	}); err != nil {
		return nil, err
	}

	status := models.CreditStatus(req.Status)
	if credit.Status != models.CreditPending {
		return nil, apperrors.ErrCreditNotPending
	}

	updated, err := s.creditRepo.UpdateStatus(ctx, creditID, status, principal.UserID)
	if err != nil {
		return nil, err
	}

	reviewer, err := s.userRepo.GetUserByID(ctx, principal.UserID)
	reviewerName := ""
	if err == nil {
		reviewerName = reviewer.FullName()
	}

	topic := events.TopicCreditValidated
	if status == models.CreditRejected {
		topic = events.TopicCreditRejected
	}
	s.bus.Publish(ctx, topic, events.CreditReviewed{
		Credit:       *updated,
		OwnerUserID:  ownerUserID,
		ReviewerName: reviewerName,
	})

	return updated, nil
}

// Delete removes a credit. The owner may delete unvalidated credits;
// validated ones are admin only.
func (s *creditServiceImpl) Delete(ctx context.Context, principal Principal, creditID int64) error {
	credit, err := s.creditRepo.GetByID(ctx, creditID)
	if err != nil {
		return err
	}

	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, credit.StudentID)
	if err != nil {
		return err
	}

	if err := s.engine.Authorize(policy.ResourceCredit, policy.OpDelete, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	}); err != nil {
		return err
	}

	if credit.Status == models.CreditValidated && principal.Role != models.RoleAdmin {
		return apperrors.ErrCreditValidatedState
	}

	return s.creditRepo.Delete(ctx, creditID)
}

// CreateCategory adds credit category reference data, staff only
func (s *creditServiceImpl) CreateCategory(ctx context.Context, principal Principal, req *dto.CreateCreditCategoryRequest) (*models.CreditCategory, error) {
	if !principal.IsStaff() {
		return nil, apperrors.ErrPermissionDenied
	}

	pillar := models.Pillar(req.Pillar)
	if !pillar.IsValid() {
		return nil, apperrors.NewValidationError("unknown pillar")
	}

	category := &models.CreditCategory{
		Pillar:      pillar,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}
	id, err := s.categoryRepo.Create(ctx, category)
	if err != nil {
		return nil, err
	}
	return s.categoryRepo.GetByID(ctx, id)
}

// ListCategories retrieves category reference data, open to all
// authenticated users
func (s *creditServiceImpl) ListCategories(ctx context.Context, pillar *models.Pillar) ([]*models.CreditCategory, error) {
	return s.categoryRepo.List(ctx, pillar)
}

// DeleteCategory removes a category, admin only
func (s *creditServiceImpl) DeleteCategory(ctx context.Context, principal Principal, categoryID int64) error {
	if principal.Role != models.RoleAdmin {
		return apperrors.ErrPermissionDenied
	}
	return s.categoryRepo.Delete(ctx, categoryID)
}
