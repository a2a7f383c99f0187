package dto

// CreateCreditRequest is the body of POST /credits
type CreateCreditRequest struct {
	Pillar      string `json:"pillar" binding:"required" example:"Мислене"`
	Activity    string `json:"activity" binding:"required" example:"Math Olympiad"`
	Description string `json:"description" binding:"required"`
}

// ValidateCreditRequest is the body of PATCH /credits/:id/validate
type ValidateCreditRequest struct {
	Status string `json:"status" binding:"required,oneof=validated rejected" example:"validated"`
	Reason string `json:"reason,omitempty"`
}

// CreateCreditCategoryRequest is the body of POST /credits/categories
type CreateCreditCategoryRequest struct {
	Pillar      string `json:"pillar" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
