package models

import "time"

// StudentProfile defines the student profile based on the 'student_profiles' table.
// At most one profile exists per user (unique user_id).
type StudentProfile struct {
	ID             int64     `json:"id" db:"id"`
	UserID         int64     `json:"userId" db:"user_id"`
	Grade          int       `json:"grade" db:"grade" example:"11"`
	Specialization string    `json:"specialization" db:"specialization" example:"Software Sciences"`
	AverageGrade   float64   `json:"averageGrade" db:"average_grade" example:"5.50"`
	ImageURL       *string   `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
	User           *User     `json:"user,omitempty"` // relation, no db tag
}

// Grade and average grade bounds for student profiles
const (
	MinGrade = 8
	MaxGrade = 12

	MinAverageGrade = 2.0
	MaxAverageGrade = 6.0
)
