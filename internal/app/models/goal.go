package models

import "time"

// GoalCategory is one of the six fixed goal areas
type GoalCategory string

const (
	GoalEducation GoalCategory = "education"
	GoalCareer    GoalCategory = "career"
	GoalPersonal  GoalCategory = "personal"
	GoalHealth    GoalCategory = "health"
	GoalSocial    GoalCategory = "social"
	GoalFinance   GoalCategory = "finance"
)

// GoalCategoryTitles maps each category to its fixed display title.
// Pure configuration, consumed verbatim by the API.
var GoalCategoryTitles = map[GoalCategory]string{
	GoalEducation: "Образование и учене",
	GoalCareer:    "Кариера и професионално развитие",
	GoalPersonal:  "Личностно развитие",
	GoalHealth:    "Здраве и спорт",
	GoalSocial:    "Социални умения и общност",
	GoalFinance:   "Финансова грамотност",
}

// IsValid checks whether the category is one of the six fixed values
func (c GoalCategory) IsValid() bool {
	_, ok := GoalCategoryTitles[c]
	return ok
}

// Goal defines a per-category student goal based on the 'goals' table.
// Unique on (student_id, category).
type Goal struct {
	ID          int64        `json:"id" db:"id"`
	StudentID   int64        `json:"studentId" db:"student_id"`
	Category    GoalCategory `json:"category" db:"category"`
	Title       string       `json:"title" db:"-"` // derived from GoalCategoryTitles
	Description string       `json:"description" db:"description"`
	Activities  []string     `json:"activities" db:"activities"`
	CreatedAt   time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time    `json:"updatedAt" db:"updated_at"`
}

// Bounds for goal activity lists
const (
	MaxGoalActivities       = 10
	MaxGoalActivityLength   = 200
	MaxGoalDescriptionChars = 1000
)
