package models

import "time"

// Absences holds per-student absence counters
type Absences struct {
	Excused    int `json:"excused" example:"3"`
	Unexcused  int `json:"unexcused" example:"1"`
	MaxAllowed int `json:"maxAllowed" example:"150"`
}

// Total returns excused plus unexcused absences
func (a Absences) Total() int {
	return a.Excused + a.Unexcused
}

// DefaultMaxAllowedAbsences is used when no sanction record exists yet
const DefaultMaxAllowedAbsences = 150

// ActiveSanction is a single disciplinary measure, removable by id
type ActiveSanction struct {
	ID        int64      `json:"id" db:"id"`
	Type      string     `json:"type" db:"sanction_type" example:"забележка"`
	Reason    string     `json:"reason" db:"reason"`
	StartDate time.Time  `json:"startDate" db:"start_date"`
	EndDate   *time.Time `json:"endDate,omitempty" db:"end_date"`
	IssuedBy  int64      `json:"issuedBy" db:"issued_by"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
}

// Sanction is the per-student container for absences and active sanctions,
// based on the 'sanctions' table (one row per student).
type Sanction struct {
	ID              int64            `json:"id" db:"id"`
	StudentID       int64            `json:"studentId" db:"student_id"`
	Absences        Absences         `json:"absences"`
	SchooloRemarks  int              `json:"schooloRemarks" db:"schoolo_remarks"`
	ActiveSanctions []ActiveSanction `json:"activeSanctions"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`
}

// DefaultSanction returns the synthesized shape used when no record exists.
// Reads never persist it; the first write path creates the row.
func DefaultSanction(studentID int64) *Sanction {
	return &Sanction{
		StudentID:       studentID,
		Absences:        Absences{MaxAllowed: DefaultMaxAllowedAbsences},
		ActiveSanctions: []ActiveSanction{},
	}
}
