package models

import "time"

// AchievementCategory classifies an achievement
type AchievementCategory string

const (
	AchievementAcademic    AchievementCategory = "academic"
	AchievementSports      AchievementCategory = "sports"
	AchievementArts        AchievementCategory = "arts"
	AchievementVolunteer   AchievementCategory = "volunteer"
	AchievementCompetition AchievementCategory = "competition"
	AchievementOther       AchievementCategory = "other"
)

// IsValid checks whether the category is a known achievement category
func (c AchievementCategory) IsValid() bool {
	switch c {
	case AchievementAcademic, AchievementSports, AchievementArts,
		AchievementVolunteer, AchievementCompetition, AchievementOther:
		return true
	}
	return false
}

// Achievement defines a student achievement based on the 'achievements' table.
// No duplicate (student_id, title, date) rows.
type Achievement struct {
	ID          int64               `json:"id" db:"id"`
	StudentID   int64               `json:"studentId" db:"student_id"`
	Category    AchievementCategory `json:"category" db:"category"`
	Title       string              `json:"title" db:"title" example:"First place, regional math olympiad"`
	Description string              `json:"description" db:"description"`
	Date        time.Time           `json:"date" db:"achieved_on"` // must not be in the future
	Place       string              `json:"place" db:"place"`
	Issuer      string              `json:"issuer" db:"issuer"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
}
