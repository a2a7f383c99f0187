package models

import "time"

// InterestEntry is a single (category, subcategory) pair
type InterestEntry struct {
	Category    string `json:"category" example:"Science"`
	Subcategory string `json:"subcategory" example:"Astronomy"`
}

// Interest defines a student's interests document based on the 'interests'
// table. One row per student; interests and hobbies are stored as JSONB.
type Interest struct {
	ID        int64           `json:"id" db:"id"`
	StudentID int64           `json:"studentId" db:"student_id"`
	Interests []InterestEntry `json:"interests" db:"interests"`
	Hobbies   []string        `json:"hobbies" db:"hobbies"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time       `json:"updatedAt" db:"updated_at"`
}

// Caps on interest and hobby lists
const (
	MaxInterestEntries = 20
	MaxHobbies         = 15
)
