package models

import "time"

// Event defines a school event based on the 'events' table.
// Globally readable; mutable only by its creator or an admin.
type Event struct {
	ID          int64      `json:"id" db:"id"`
	Title       string     `json:"title" db:"title" example:"Open doors day"`
	Description string     `json:"description" db:"description"`
	StartDate   time.Time  `json:"startDate" db:"start_date"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
	Location    string     `json:"location" db:"location"`
	Organizer   string     `json:"organizer" db:"organizer"`
	FeedbackURL string     `json:"feedbackUrl,omitempty" db:"feedback_url"`
	CreatedBy   int64      `json:"createdBy" db:"created_by"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// ParticipationStatus tracks an event registration through its lifecycle
type ParticipationStatus string

const (
	ParticipationRegistered ParticipationStatus = "registered"
	ParticipationConfirmed  ParticipationStatus = "confirmed"
	ParticipationAttended   ParticipationStatus = "attended"
	ParticipationCancelled  ParticipationStatus = "cancelled"
)

// CanTransitionTo enforces the forward-only participation state machine:
// registered -> confirmed|cancelled, confirmed -> attended;
// attended and cancelled are terminal. A confirmed registration can no
// longer be cancelled.
func (s ParticipationStatus) CanTransitionTo(next ParticipationStatus) bool {
	switch s {
	case ParticipationRegistered:
		return next == ParticipationConfirmed || next == ParticipationCancelled
	case ParticipationConfirmed:
		return next == ParticipationAttended
	}
	return false
}

// Active reports whether the participant should receive event change
// notifications (registered or confirmed, not cancelled or attended)
func (s ParticipationStatus) Active() bool {
	return s == ParticipationRegistered || s == ParticipationConfirmed
}

// EventParticipation defines a registration based on the
// 'event_participations' table. Unique on (event_id, student_id).
type EventParticipation struct {
	ID           int64               `json:"id" db:"id"`
	EventID      int64               `json:"eventId" db:"event_id"`
	StudentID    int64               `json:"studentId" db:"student_id"`
	Status       ParticipationStatus `json:"status" db:"status"`
	RegisteredAt time.Time           `json:"registeredAt" db:"registered_at"`
	ConfirmedAt  *time.Time          `json:"confirmedAt,omitempty" db:"confirmed_at"`
	AttendedAt   *time.Time          `json:"attendedAt,omitempty" db:"attended_at"`
	Feedback     *string             `json:"feedback,omitempty" db:"feedback"`
	FeedbackDate *time.Time          `json:"feedbackDate,omitempty" db:"feedback_date"`
}
