package models

import "time"

// Recommendation is a third-party endorsement inside a portfolio.
// One per distinct author (case-insensitive, trimmed).
type Recommendation struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Author    string    `json:"author" db:"author"`
	Date      time.Time `json:"date" db:"created_at"`
}

// MaxRecommendations caps the recommendation list per portfolio
const MaxRecommendations = 10

// Portfolio defines a student's portfolio based on the 'portfolios' table.
// One row per student; mentor must be a teacher or admin.
type Portfolio struct {
	ID              int64            `json:"id" db:"id"`
	StudentID       int64            `json:"studentId" db:"student_id"`
	Experience      string           `json:"experience" db:"experience"`
	Projects        string           `json:"projects" db:"projects"`
	MentorID        *int64           `json:"mentorId,omitempty" db:"mentor_id"`
	Mentor          *User            `json:"mentor,omitempty"` // relation, no db tag
	Recommendations []Recommendation `json:"recommendations"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`
}

// DefaultPortfolio returns the synthesized empty shape used when no record
// exists yet. Reads never persist it.
func DefaultPortfolio(studentID int64) *Portfolio {
	return &Portfolio{
		StudentID:       studentID,
		Recommendations: []Recommendation{},
	}
}
