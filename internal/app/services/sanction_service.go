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
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
)

// CriticalAbsenceRatio is the share of the absence allowance beyond which
// the situation is treated as critical
const CriticalAbsenceRatio = 0.8

// SanctionService defines the interface for absence and sanction operations
type SanctionService interface {
	Get(ctx context.Context, principal Principal, studentID int64) (*models.Sanction, error)
	UpdateAbsences(ctx context.Context, principal Principal, studentID int64, req *dto.UpdateAbsencesRequest) (*models.Sanction, error)
	UpdateRemarks(ctx context.Context, principal Principal, studentID int64, remarks int) (*models.Sanction, error)
	AddActiveSanction(ctx context.Context, principal Principal, studentID int64, req *dto.AddActiveSanctionRequest) (*models.Sanction, error)
	RemoveActiveSanction(ctx context.Context, principal Principal, studentID, sanctionID int64) (*models.Sanction, error)
}

// sanctionServiceImpl implements SanctionService
type sanctionServiceImpl struct {
	sanctionRepo *repositories.SanctionRepository
	studentRepo  *repositories.StudentRepository
	engine       *policy.Engine
	bus          events.Bus
}

// NewSanctionService creates a new SanctionService
func NewSanctionService(
	sanctionRepo *repositories.SanctionRepository,
	studentRepo *repositories.StudentRepository,
	engine *policy.Engine,
	bus events.Bus,
) SanctionService {
	return &sanctionServiceImpl{
		sanctionRepo: sanctionRepo,
		studentRepo:  studentRepo,
		engine:       engine,
		bus:          bus,
	}
}

func (s *sanctionServiceImpl) authorize(ctx context.Context, principal Principal, studentID int64, op policy.Operation) (int64, error) {
	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, studentID)
	if err != nil {
		return 0, err
	}
	return ownerUserID, s.engine.Authorize(policy.ResourceSanction, op, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	})
}

// Get retrieves the sanction record; a missing one yields the default
// empty shape without persisting it
func (s *sanctionServiceImpl) Get(ctx context.Context, principal Principal, studentID int64) (*models.Sanction, error) {
	if _, err := s.authorize(ctx, principal, studentID, policy.OpRead); err != nil {
		return nil, err
	}

	sanction, err := s.sanctionRepo.GetByStudent(ctx, studentID)
	if err != nil {
		if err == apperrors.ErrNotFound {
			return models.DefaultSanction(studentID), nil
		}
		return nil, err
	}
	return sanction, nil
}

// IsCriticalAbsences reports whether the total exceeds the critical share
// of the allowance
func IsCriticalAbsences(absences models.Absences) bool {
	return float64(absences.Total()) > CriticalAbsenceRatio*float64(absences.MaxAllowed)
}

// ValidateAbsences checks the absence counters. A zero allowance is
// legal; it marks a student with no remaining tolerance.
func ValidateAbsences(absences models.Absences) error {
	if absences.Excused < 0 || absences.Unexcused < 0 || absences.MaxAllowed < 0 {
		return apperrors.NewValidationError("absence counters and the allowance must not be negative")
	}
	return nil
}

// UpdateAbsences writes new absence counters, staff only. An increase
// emits a routine warning; crossing the critical threshold additionally
// emits a critical notification.
func (s *sanctionServiceImpl) UpdateAbsences(ctx context.Context, principal Principal, studentID int64, req *dto.UpdateAbsencesRequest) (*models.Sanction, error) {
	ownerUserID, err := s.authorize(ctx, principal, studentID, policy.OpUpdate)
	if err != nil {
		return nil, err
	}

	current, err := s.sanctionRepo.GetByStudent(ctx, studentID)
	if err != nil {
		if err != apperrors.ErrNotFound {
			return nil, err
		}
		current = models.DefaultSanction(studentID)
	}

	next := current.Absences
	if req.Excused != nil {
		next.Excused = *req.Excused
	}
	if req.Unexcused != nil {
		next.Unexcused = *req.Unexcused
	}
	if req.MaxAllowed != nil {
		next.MaxAllowed = *req.MaxAllowed
	}
	if err := ValidateAbsences(next); err != nil {
		return nil, err
	}

	updated, err := s.sanctionRepo.UpdateAbsences(ctx, studentID, next)
	if err != nil {
		return nil, err
	}

	delta := next.Total() - current.Absences.Total()
	if delta > 0 {
		s.bus.Publish(ctx, events.TopicAbsencesIncreased, events.AbsencesChanged{
			StudentID:   studentID,
			OwnerUserID: ownerUserID,
			Excused:     next.Excused,
			Unexcused:   next.Unexcused,
			MaxAllowed:  next.MaxAllowed,
			Delta:       delta,
		})
	}
	if IsCriticalAbsences(next) {
		s.bus.Publish(ctx, events.TopicAbsencesCritical, events.AbsencesChanged{
			StudentID:   studentID,
			OwnerUserID: ownerUserID,
			Excused:     next.Excused,
			Unexcused:   next.Unexcused,
			MaxAllowed:  next.MaxAllowed,
			Delta:       delta,
			Critical:    true,
		})
	}

	return updated, nil
}

// UpdateRemarks writes the schoolo remarks counter, staff only
func (s *sanctionServiceImpl) UpdateRemarks(ctx context.Context, principal Principal, studentID int64, remarks int) (*models.Sanction, error) {
	if _, err := s.authorize(ctx, principal, studentID, policy.OpUpdate); err != nil {
		return nil, err
	}
	if remarks < 0 {
		return nil, apperrors.NewValidationError("remarks must not be negative")
	}
	return s.sanctionRepo.UpdateRemarks(ctx, studentID, remarks)
}

// AddActiveSanction records a disciplinary measure, staff only, and
// notifies the student
func (s *sanctionServiceImpl) AddActiveSanction(ctx context.Context, principal Principal, studentID int64, req *dto.AddActiveSanctionRequest) (*models.Sanction, error) {
	ownerUserID, err := s.authorize(ctx, principal, studentID, policy.OpUpdate)
	if err != nil {
		return nil, err
	}

	startDate, err := helpers.ParseDate(req.StartDate)
	if err != nil {
		return nil, apperrors.NewValidationError("startDate must be formatted as " + helpers.DateLayout)
	}

	sanction := models.ActiveSanction{
		Type:      strings.TrimSpace(req.Type),
		Reason:    strings.TrimSpace(req.Reason),
		StartDate: startDate,
		IssuedBy:  principal.UserID,
	}
	if req.EndDate != nil {
		endDate, err := helpers.ParseDate(*req.EndDate)
		if err != nil {
			return nil, apperrors.NewValidationError("endDate must be formatted as " + helpers.DateLayout)
		}
		if endDate.Before(startDate) {
			return nil, apperrors.NewValidationError("endDate must not be before startDate")
		}
		sanction.EndDate = &endDate
	}

	id, err := s.sanctionRepo.AddActiveSanction(ctx, studentID, sanction)
	if err != nil {
		return nil, err
	}
	sanction.ID = id

	s.bus.Publish(ctx, events.TopicSanctionAdded, events.SanctionChanged{
		StudentID:   studentID,
		OwnerUserID: ownerUserID,
		Sanction:    sanction,
	})

	return s.sanctionRepo.GetByStudent(ctx, studentID)
}

// RemoveActiveSanction lifts a disciplinary measure, staff only, and
// notifies the student
func (s *sanctionServiceImpl) RemoveActiveSanction(ctx context.Context, principal Principal, studentID, sanctionID int64) (*models.Sanction, error) {
	ownerUserID, err := s.authorize(ctx, principal, studentID, policy.OpUpdate)
	if err != nil {
		return nil, err
	}

	record, err := s.sanctionRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	var removed *models.ActiveSanction
	for i := range record.ActiveSanctions {
		if record.ActiveSanctions[i].ID == sanctionID {
			removed = &record.ActiveSanctions[i]
			break
		}
	}
	if removed == nil {
		return nil, apperrors.ErrNotFound
	}

	if err := s.sanctionRepo.RemoveActiveSanction(ctx, studentID, sanctionID); err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.TopicSanctionRemoved, events.SanctionChanged{
		StudentID:   studentID,
		OwnerUserID: ownerUserID,
		Sanction:    *removed,
	})

	return s.sanctionRepo.GetByStudent(ctx, studentID)
}
