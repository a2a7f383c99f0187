package models

import "time"

// CreditStatus tracks the validation state of a credit
type CreditStatus string

const (
	CreditPending   CreditStatus = "pending"
	CreditValidated CreditStatus = "validated"
	CreditRejected  CreditStatus = "rejected"
)

// IsTerminal reports whether the status can no longer change
// (admin override excepted)
func (s CreditStatus) IsTerminal() bool {
	return s == CreditValidated || s == CreditRejected
}

// Pillar is one of the three fixed top-level credit classifications
type Pillar string

const (
	PillarThinking Pillar = "Мислене"
	PillarCharity  Pillar = "Благотворителност"
	PillarSport    Pillar = "Спорт"
)

// Pillars lists all valid pillars in display order
var Pillars = []Pillar{PillarThinking, PillarCharity, PillarSport}

// IsValid checks whether the pillar is one of the three fixed values
func (p Pillar) IsValid() bool {
	for _, known := range Pillars {
		if p == known {
			return true
		}
	}
	return false
}

// Credit defines a student-submitted activity claim based on the 'credits' table
type Credit struct {
	ID             int64        `json:"id" db:"id"`
	StudentID      int64        `json:"studentId" db:"student_id"`
	Pillar         Pillar       `json:"pillar" db:"pillar" example:"Мислене"`
	Activity       string       `json:"activity" db:"activity" example:"Math Olympiad"`
	Description    string       `json:"description" db:"description"`
	Status         CreditStatus `json:"status" db:"status" example:"pending"`
	ValidatedBy    *int64       `json:"validatedBy,omitempty" db:"validated_by"`
	ValidationDate *time.Time   `json:"validationDate,omitempty" db:"validation_date"`
	CreatedAt      time.Time    `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time    `json:"updatedAt" db:"updated_at"`
}

// CreditCategory is reference data: a named activity group within a pillar.
// Name is unique per pillar.
type CreditCategory struct {
	ID          int64  `json:"id" db:"id"`
	Pillar      Pillar `json:"pillar" db:"pillar"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
}
