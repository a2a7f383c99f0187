package dto

// UpdateGoalRequest is the body of PUT /students/:id/goals/:category.
// The operation upserts: one goal per (student, category).
type UpdateGoalRequest struct {
	Description string   `json:"description" binding:"required"`
	Activities  []string `json:"activities" binding:"required,min=1"`
}

// UpdateInterestsRequest is the body of PUT /students/:id/interests
type UpdateInterestsRequest struct {
	Interests []InterestEntryRequest `json:"interests"`
	Hobbies   []string               `json:"hobbies"`
}

// InterestEntryRequest is a single interest pair in an update request
type InterestEntryRequest struct {
	Category    string `json:"category" binding:"required"`
	Subcategory string `json:"subcategory" binding:"required"`
}

// CreateAchievementRequest is the body of POST /students/:id/achievements
type CreateAchievementRequest struct {
	Category    string `json:"category" binding:"required" example:"academic"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required" example:"2026-05-11"`
	Place       string `json:"place"`
	Issuer      string `json:"issuer"`
}
