package dto

// UpdateAbsencesRequest is the body of PUT /students/:id/sanctions/absences
type UpdateAbsencesRequest struct {
	Excused    *int `json:"excused,omitempty"`
	Unexcused  *int `json:"unexcused,omitempty"`
	MaxAllowed *int `json:"maxAllowed,omitempty"`
}

// UpdateRemarksRequest is the body of PUT /students/:id/sanctions/schoolo-remarks
type UpdateRemarksRequest struct {
	SchooloRemarks int `json:"schooloRemarks" binding:"min=0"`
}

// AddActiveSanctionRequest is the body of POST /students/:id/sanctions/active
type AddActiveSanctionRequest struct {
	Type      string  `json:"type" binding:"required" example:"забележка"`
	Reason    string  `json:"reason" binding:"required"`
	StartDate string  `json:"startDate" binding:"required" example:"2026-02-01"`
	EndDate   *string `json:"endDate,omitempty"`
}
