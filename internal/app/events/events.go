package events

import (
	"time"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
)

// Topic routes an event to its subscribers
type Topic string

const (
	TopicCreditValidated     Topic = "credit.validated"
	TopicCreditRejected      Topic = "credit.rejected"
	TopicAbsencesIncreased   Topic = "absences.increased"
	TopicAbsencesCritical    Topic = "absences.critical"
	TopicSanctionAdded       Topic = "sanction.added"
	TopicSanctionRemoved     Topic = "sanction.removed"
	TopicEventCreated        Topic = "event.created"
	TopicEventRescheduled    Topic = "event.rescheduled"
	TopicEventCancelled      Topic = "event.cancelled"
	TopicRecommendationAdded Topic = "portfolio.recommendation_added"
)

// Event is a domain state transition announced on the bus
type Event struct {
	Topic      Topic
	OccurredAt time.Time
	Payload    any
}

// CreditReviewed is published when a pending credit is validated or rejected
type CreditReviewed struct {
	Credit       models.Credit
	OwnerUserID  int64
	ReviewerName string
}

// AbsencesChanged is published when a student's absence counters move.
// Delta is the change in total absences; Critical is set when the new
// total crossed the critical threshold.
type AbsencesChanged struct {
	StudentID   int64
	OwnerUserID int64
	Excused     int
	Unexcused   int
	MaxAllowed  int
	Delta       int
	Critical    bool
}

// SanctionChanged is published when an active sanction is added or removed
type SanctionChanged struct {
	StudentID   int64
	OwnerUserID int64
	Sanction    models.ActiveSanction
}

// EventLifecycle is published for school event create/reschedule/cancel.
// RecipientUserIDs lists the user accounts that must be notified; for a
// cancellation or reschedule these are the active participants.
type EventLifecycle struct {
	Event            models.Event
	OldStartDate     *time.Time
	RecipientUserIDs []int64
}

// RecommendationAdded is published when a portfolio gains a recommendation
type RecommendationAdded struct {
	StudentID   int64
	OwnerUserID int64
	Author      string
}
