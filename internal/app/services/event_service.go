package services

import (
	"context"
	"strings"
	"time"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/events"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/policy"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// EventService defines the interface for school event operations
type EventService interface {
	Create(ctx context.Context, principal Principal, req *dto.CreateEventRequest) (*models.Event, error)
	GetByID(ctx context.Context, eventID int64) (*models.Event, error)
	List(ctx context.Context, upcomingOnly bool, page, size int) ([]*models.Event, dto.PaginationInfo, error)
	Update(ctx context.Context, principal Principal, eventID int64, req *dto.UpdateEventRequest) (*models.Event, error)
	Delete(ctx context.Context, principal Principal, eventID int64) error

	Register(ctx context.Context, principal Principal, eventID int64) (*models.EventParticipation, error)
	CancelParticipation(ctx context.Context, principal Principal, eventID int64) (*models.EventParticipation, error)
	SetParticipationStatus(ctx context.Context, principal Principal, participationID int64, status models.ParticipationStatus) (*models.EventParticipation, error)
	ListParticipations(ctx context.Context, principal Principal, eventID int64) ([]*models.EventParticipation, error)
	SubmitFeedback(ctx context.Context, principal Principal, participationID int64, feedback string) (*models.EventParticipation, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo   *repositories.EventRepository
	studentRepo *repositories.StudentRepository
	engine      *policy.Engine
	bus         events.Bus
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo *repositories.EventRepository,
	studentRepo *repositories.StudentRepository,
	engine *policy.Engine,
	bus events.Bus,
) EventService {
	return &eventServiceImpl{
		eventRepo:   eventRepo,
		studentRepo: studentRepo,
		engine:      engine,
		bus:         bus,
	}
}

// Create adds a school event, teacher/admin only
func (s *eventServiceImpl) Create(ctx context.Context, principal Principal, req *dto.CreateEventRequest) (*models.Event, error) {
	if err := s.engine.Authorize(policy.ResourceEvent, policy.OpCreate, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
	}); err != nil {
		return nil, err
	}

	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		return nil, apperrors.NewValidationError("endDate must not be before startDate")
	}

	event := &models.Event{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Location:    req.Location,
		Organizer:   req.Organizer,
		FeedbackURL: req.FeedbackURL,
		CreatedBy:   principal.UserID,
	}
	id, err := s.eventRepo.Create(ctx, event)
	if err != nil {
		return nil, err
	}

	created, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.TopicEventCreated, events.EventLifecycle{Event: *created})
	return created, nil
}

// GetByID retrieves one event; events are readable by all authenticated
// users
func (s *eventServiceImpl) GetByID(ctx context.Context, eventID int64) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, eventID)
}

// List retrieves events with pagination
func (s *eventServiceImpl) List(ctx context.Context, upcomingOnly bool, page, size int) ([]*models.Event, dto.PaginationInfo, error) {
	return s.eventRepo.List(ctx, upcomingOnly, page, size)
}

// Update modifies an event, creator/admin only. A start date change
// notifies all active participants.
func (s *eventServiceImpl) Update(ctx context.Context, principal Principal, eventID int64, req *dto.UpdateEventRequest) (*models.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Authorize(policy.ResourceEvent, policy.OpUpdate, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    event.CreatedBy,
	}); err != nil {
		return nil, err
	}

	oldStart := event.StartDate
	if req.Title != nil {
		event.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartDate != nil {
		event.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		event.EndDate = req.EndDate
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Organizer != nil {
		event.Organizer = *req.Organizer
	}
	if req.FeedbackURL != nil {
		event.FeedbackURL = *req.FeedbackURL
	}
	if event.EndDate != nil && event.EndDate.Before(event.StartDate) {
		return nil, apperrors.NewValidationError("endDate must not be before startDate")
	}

	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	if !event.StartDate.Equal(oldStart) {
		recipients, err := s.eventRepo.ActiveParticipantUserIDs(ctx, eventID)
		if err != nil {
			logger.Error().Err(err).Int64("eventId", eventID).
				Msg("Failed to resolve participants for reschedule notification")
		} else if len(recipients) > 0 {
			s.bus.Publish(ctx, events.TopicEventRescheduled, events.EventLifecycle{
				Event:            *event,
				OldStartDate:     &oldStart,
				RecipientUserIDs: recipients,
			})
		}
	}

	return event, nil
}

// Delete removes an event and its participations, creator/admin only.
// Active participants are notified before the cascade delete.
func (s *eventServiceImpl) Delete(ctx context.Context, principal Principal, eventID int64) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.engine.Authorize(policy.ResourceEvent, policy.OpDelete, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    event.CreatedBy,
	}); err != nil {
		return err
	}

	recipients, err := s.eventRepo.ActiveParticipantUserIDs(ctx, eventID)
	if err != nil {
		return err
	}

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		return err
	}

	if len(recipients) > 0 {
		s.bus.Publish(ctx, events.TopicEventCancelled, events.EventLifecycle{
			Event:            *event,
			RecipientUserIDs: recipients,
		})
	}
	return nil
}

// Register signs the calling student up for an event. Registration is
// only possible before the event starts; the unique (event, student)
// pair blocks a second registration, including after cancelling.
func (s *eventServiceImpl) Register(ctx context.Context, principal Principal, eventID int64) (*models.EventParticipation, error) {
	if err := s.engine.Authorize(policy.ResourceParticipation, policy.OpCreate, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
	}); err != nil {
		return nil, err
	}

	profile, err := s.studentRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !time.Now().Before(event.StartDate) {
		return nil, apperrors.ErrEventStarted
	}

	id, err := s.eventRepo.CreateParticipation(ctx, eventID, profile.ID)
	if err != nil {
		return nil, err
	}
	return s.eventRepo.GetParticipationByID(ctx, id)
}

// CancelParticipation cancels the calling student's own registration,
// subject to the same time window as registering
func (s *eventServiceImpl) CancelParticipation(ctx context.Context, principal Principal, eventID int64) (*models.EventParticipation, error) {
	profile, err := s.studentRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !time.Now().Before(event.StartDate) {
		return nil, apperrors.ErrEventStarted
	}

	participation, err := s.eventRepo.GetParticipation(ctx, eventID, profile.ID)
	if err != nil {
		return nil, err
	}
	if !participation.Status.CanTransitionTo(models.ParticipationCancelled) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.eventRepo.UpdateParticipationStatus(ctx, participation.ID, models.ParticipationCancelled); err != nil {
		return nil, err
	}
	return s.eventRepo.GetParticipationByID(ctx, participation.ID)
}

// SetParticipationStatus moves a participation through its state machine.
// Confirmations and attendance marking are staff operations.
func (s *eventServiceImpl) SetParticipationStatus(ctx context.Context, principal Principal, participationID int64, status models.ParticipationStatus) (*models.EventParticipation, error) {
	participation, err := s.eventRepo.GetParticipationByID(ctx, participationID)
	if err != nil {
		return nil, err
	}

	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, participation.StudentID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.Authorize(policy.ResourceParticipation, policy.OpUpdate, policy.Request{
		Role:           principal.Role,
		UserID:         principal.UserID,
		ResourceExists: true,
		OwnerUserID:    ownerUserID,
	}); err != nil {
		return nil, err
	}

	// Attendance is reserved for staff even when the owner may otherwise
	// update their participation.
	if status == models.ParticipationAttended && !principal.IsStaff() {
		return nil, apperrors.ErrPermissionDenied
	}

	if !participation.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidTransition
	}

	if err := s.eventRepo.UpdateParticipationStatus(ctx, participationID, status); err != nil {
		return nil, err
	}
	return s.eventRepo.GetParticipationByID(ctx, participationID)
}

// ListParticipations lists all participations of an event, staff only
func (s *eventServiceImpl) ListParticipations(ctx context.Context, principal Principal, eventID int64) ([]*models.EventParticipation, error) {
	if !principal.IsStaff() {
		return nil, apperrors.ErrPermissionDenied
	}
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.ListParticipations(ctx, eventID)
}

// SubmitFeedback stores feedback on the caller's own participation
func (s *eventServiceImpl) SubmitFeedback(ctx context.Context, principal Principal, participationID int64, feedback string) (*models.EventParticipation, error) {
	participation, err := s.eventRepo.GetParticipationByID(ctx, participationID)
	if err != nil {
		return nil, err
	}

	ownerUserID, err := s.studentRepo.GetOwnerUserID(ctx, participation.StudentID)
	if err != nil {
		return nil, err
	}
	if !policy.IsOwnerID(ownerUserID, principal.UserID) {
		return nil, apperrors.ErrPermissionDenied
	}

	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return nil, apperrors.NewValidationError("feedback must not be empty")
	}

	if err := s.eventRepo.SetFeedback(ctx, participationID, feedback); err != nil {
		return nil, err
	}
	return s.eventRepo.GetParticipationByID(ctx, participationID)
}
