package models

// RoleType represents a user's role in the system
type RoleType string

const (
	// RoleStudent is the default role for registered students
	RoleStudent RoleType = "student"
	// RoleTeacher can validate credits, manage sanctions and events
	RoleTeacher RoleType = "teacher"
	// RoleAdmin has unrestricted access
	RoleAdmin RoleType = "admin"
)

// IsValid checks whether the role is one of the known roles
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}

// Privileged reports whether the role is teacher or admin
func (r RoleType) Privileged() bool {
	return r == RoleTeacher || r == RoleAdmin
}
