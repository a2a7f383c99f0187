package services

import (
	"context"
	"fmt"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/events"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/email"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// NotificationService creates notifications from domain events and serves
// the per-user notification inbox
type NotificationService interface {
	// Notify inserts one notification per recipient; sendEmail mirrors it
	// to email best-effort (an email failure never fails the insert).
	Notify(ctx context.Context, recipientIDs []int64, template models.Notification, sendEmail bool) ([]int64, error)

	List(ctx context.Context, principal Principal, unreadOnly bool, page, size int) ([]*models.Notification, dto.PaginationInfo, error)
	CountUnread(ctx context.Context, principal Principal) (int64, error)
	MarkRead(ctx context.Context, principal Principal, notificationID int64) error
	MarkAllRead(ctx context.Context, principal Principal) (int64, error)
	Delete(ctx context.Context, principal Principal, notificationID int64) error

	// SubscribeTo attaches the notification handlers to the event bus
	SubscribeTo(bus events.Bus)
}

// notificationServiceImpl implements NotificationService
type notificationServiceImpl struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	emailService     email.EmailService
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	userRepo *repositories.UserRepository,
	emailService email.EmailService,
) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailService:     emailService,
	}
}

// Notify inserts the notifications in one bulk operation and then sends
// emails best-effort. Email failures are logged, never propagated.
func (s *notificationServiceImpl) Notify(ctx context.Context, recipientIDs []int64, template models.Notification, sendEmail bool) ([]int64, error) {
	ids, err := s.notificationRepo.CreateBulk(ctx, recipientIDs, template)
	if err != nil {
		return nil, err
	}

	if sendEmail {
		sent := make([]int64, 0, len(ids))
		for i, recipientID := range recipientIDs {
			user, err := s.userRepo.GetUserByID(ctx, recipientID)
			if err != nil {
				logger.Warn().Err(err).Int64("recipientId", recipientID).Msg("Notification email recipient lookup failed")
				continue
			}
			if err := s.emailService.SendNotificationEmail(user.Email, user.FullName(), template.Title, template.Message); err != nil {
				logger.Warn().Err(err).Int64("recipientId", recipientID).Msg("Notification email failed")
				continue
			}
			if i < len(ids) {
				sent = append(sent, ids[i])
			}
		}
		if len(sent) > 0 {
			if err := s.notificationRepo.MarkEmailSent(ctx, sent); err != nil {
				logger.Warn().Err(err).Msg("Failed to flag emailed notifications")
			}
		}
	}

	return ids, nil
}

// List retrieves the caller's notifications
func (s *notificationServiceImpl) List(ctx context.Context, principal Principal, unreadOnly bool, page, size int) ([]*models.Notification, dto.PaginationInfo, error) {
	return s.notificationRepo.ListByRecipient(ctx, principal.UserID, unreadOnly, page, size)
}

// CountUnread returns the caller's unread count
func (s *notificationServiceImpl) CountUnread(ctx context.Context, principal Principal) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, principal.UserID)
}

// MarkRead flags one of the caller's notifications as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, principal Principal, notificationID int64) error {
	return s.notificationRepo.MarkRead(ctx, notificationID, principal.UserID)
}

// MarkAllRead flags all of the caller's notifications as read; never
// touches other users' rows
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, principal Principal) (int64, error) {
	return s.notificationRepo.MarkAllRead(ctx, principal.UserID)
}

// Delete removes one of the caller's notifications
func (s *notificationServiceImpl) Delete(ctx context.Context, principal Principal, notificationID int64) error {
	return s.notificationRepo.Delete(ctx, notificationID, principal.UserID)
}

// SubscribeTo wires every domain topic to its notification template
func (s *notificationServiceImpl) SubscribeTo(bus events.Bus) {
	bus.Subscribe(events.TopicCreditValidated, s.onCreditReviewed)
	bus.Subscribe(events.TopicCreditRejected, s.onCreditReviewed)
	bus.Subscribe(events.TopicAbsencesIncreased, s.onAbsencesChanged)
	bus.Subscribe(events.TopicAbsencesCritical, s.onAbsencesChanged)
	bus.Subscribe(events.TopicSanctionAdded, s.onSanctionChanged)
	bus.Subscribe(events.TopicSanctionRemoved, s.onSanctionChanged)
	bus.Subscribe(events.TopicEventCreated, s.onEventCreated)
	bus.Subscribe(events.TopicEventRescheduled, s.onEventLifecycle)
	bus.Subscribe(events.TopicEventCancelled, s.onEventLifecycle)
	bus.Subscribe(events.TopicRecommendationAdded, s.onRecommendationAdded)
}

func (s *notificationServiceImpl) onCreditReviewed(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.CreditReviewed)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Topic)
	}

	template := models.Notification{
		Category: models.CategoryCredit,
		Related:  &models.RelatedRef{Model: "credit", ID: payload.Credit.ID},
	}
	if event.Topic == events.TopicCreditValidated {
		template.Type = models.NotificationSuccess
		template.Title = "Кредитът е потвърден"
		template.Message = fmt.Sprintf("Твоят кредит „%s” беше потвърден.", payload.Credit.Activity)
	} else {
		template.Type = models.NotificationWarning
		template.Title = "Кредитът е отхвърлен"
		template.Message = fmt.Sprintf("Твоят кредит „%s” беше отхвърлен.", payload.Credit.Activity)
	}

	_, err := s.Notify(ctx, []int64{payload.OwnerUserID}, template, true)
	return err
}

func (s *notificationServiceImpl) onAbsencesChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.AbsencesChanged)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Topic)
	}

	total := payload.Excused + payload.Unexcused
	template := models.Notification{
		Category: models.CategoryAbsence,
	}
	if event.Topic == events.TopicAbsencesCritical {
		template.Type = models.NotificationError
		template.Title = "Критичен брой отсъствия"
		template.Message = fmt.Sprintf(
			"Отсъствията ти достигнаха %d от допустимите %d. Свържи се с класния си ръководител.",
			total, payload.MaxAllowed)
	} else {
		template.Type = models.NotificationWarning
		template.Title = "Нови отсъствия"
		template.Message = fmt.Sprintf(
			"Добавени са %d нови отсъствия. Общо: %d извинени, %d неизвинени.",
			payload.Delta, payload.Excused, payload.Unexcused)
	}

	_, err := s.Notify(ctx, []int64{payload.OwnerUserID}, template, event.Topic == events.TopicAbsencesCritical)
	return err
}

func (s *notificationServiceImpl) onSanctionChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.SanctionChanged)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Topic)
	}

	template := models.Notification{
		Category: models.CategorySanction,
		Related:  &models.RelatedRef{Model: "sanction", ID: payload.Sanction.ID},
	}
	if event.Topic == events.TopicSanctionAdded {
		template.Type = models.NotificationError
		template.Title = "Наложена санкция"
		template.Message = fmt.Sprintf("Наложена ти е санкция „%s”: %s", payload.Sanction.Type, payload.Sanction.Reason)
	} else {
		template.Type = models.NotificationInfo
		template.Title = "Отменена санкция"
		template.Message = fmt.Sprintf("Санкцията „%s” беше отменена.", payload.Sanction.Type)
	}

	_, err := s.Notify(ctx, []int64{payload.OwnerUserID}, template, true)
	return err
}

// onEventCreated announces a new event to every student account
func (s *notificationServiceImpl) onEventCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EventLifecycle)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Topic)
	}

	students, err := s.userRepo.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		return nil
	}
	recipientIDs := make([]int64, 0, len(students))
	for _, student := range students {
		recipientIDs = append(recipientIDs, student.ID)
	}

	template := models.Notification{
		Type:     models.NotificationInfo,
		Category: models.CategoryEvent,
		Related:  &models.RelatedRef{Model: "event", ID: payload.Event.ID},
		Title:    "Ново събитие",
		Message: fmt.Sprintf(
			"„%s” — %s, %s. Запиши се от страницата на събитието.",
			payload.Event.Title, payload.Event.StartDate.Format("02.01.2006 15:04"), payload.Event.Location),
	}

	_, err = s.Notify(ctx, recipientIDs, template, true)
	return err
}

func (s *notificationServiceImpl) onEventLifecycle(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.EventLifecycle)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Topic)
	}
	if len(payload.RecipientUserIDs) == 0 {
		return nil
	}

	template := models.Notification{
		Category: models.CategoryEvent,
		Related:  &models.RelatedRef{Model: "event", ID: payload.Event.ID},
	}
	if event.Topic == events.TopicEventCancelled {
		template.Type = models.NotificationWarning
		template.Title = "Отменено събитие"
		template.Message = fmt.Sprintf("Събитието „%s” беше отменено.", payload.Event.Title)
	} else {
		template.Type = models.NotificationInfo
		template.Title = "Променена дата на събитие"
		template.Message = fmt.Sprintf(
			"Събитието „%s” беше преместено за %s.",
			payload.Event.Title, payload.Event.StartDate.Format("02.01.2006 15:04"))
	}

	_, err := s.Notify(ctx, payload.RecipientUserIDs, template, true)
	return err
}

func (s *notificationServiceImpl) onRecommendationAdded(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.RecommendationAdded)
	if !ok {
		return fmt.Errorf("unexpected payload for %s", event.Topic)
	}

	template := models.Notification{
		Type:     models.NotificationSuccess,
		Category: models.CategorySystem,
		Title:    "Нова препоръка",
		Message:  fmt.Sprintf("%s добави препоръка в твоето портфолио.", payload.Author),
	}

	_, err := s.Notify(ctx, []int64{payload.OwnerUserID}, template, false)
	return err
}
