package dto

import "time"

// CreateEventRequest is the body of POST /events
type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Location    string     `json:"location" binding:"required"`
	Organizer   string     `json:"organizer"`
	FeedbackURL string     `json:"feedbackUrl,omitempty"`
}

// UpdateEventRequest is the body of PUT /events/:id
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	StartDate   *time.Time `json:"startDate,omitempty"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Organizer   *string    `json:"organizer,omitempty"`
	FeedbackURL *string    `json:"feedbackUrl,omitempty"`
}

// UpdateParticipationStatusRequest is the body of
// PATCH /participations/:id/status
type UpdateParticipationStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=registered confirmed attended cancelled" example:"confirmed"`
}

// ParticipationFeedbackRequest is the body of POST /participations/:id/feedback
type ParticipationFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}
