package dto

// UpdatePortfolioRequest is the body of PUT /students/:id/portfolio
type UpdatePortfolioRequest struct {
	Experience *string `json:"experience,omitempty"`
	Projects   *string `json:"projects,omitempty"`
	MentorID   *int64  `json:"mentorId,omitempty"`
}

// AddRecommendationRequest is the body of
// POST /students/:id/portfolio/recommendations
type AddRecommendationRequest struct {
	Text   string `json:"text" binding:"required"`
	Author string `json:"author" binding:"required"`
}
