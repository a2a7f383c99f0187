package dto

// CreateStudentProfileRequest is the body of POST /students
type CreateStudentProfileRequest struct {
	UserID         int64   `json:"userId" binding:"required"`
	Grade          int     `json:"grade" binding:"required"`
	Specialization string  `json:"specialization" binding:"required"`
	AverageGrade   float64 `json:"averageGrade"`
	ImageURL       *string `json:"imageUrl,omitempty"`
}

// UpdateStudentProfileRequest is the body of PUT /students/:id
type UpdateStudentProfileRequest struct {
	Grade          *int     `json:"grade,omitempty"`
	Specialization *string  `json:"specialization,omitempty"`
	AverageGrade   *float64 `json:"averageGrade,omitempty"`
	ImageURL       *string  `json:"imageUrl,omitempty"`
}
