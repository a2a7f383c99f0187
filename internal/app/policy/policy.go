package policy

import (
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

// Resource identifies an entity type governed by the access policy
type Resource string

const (
	ResourceCredit        Resource = "credit"
	ResourceGoal          Resource = "goal"
	ResourceInterest      Resource = "interest"
	ResourceAchievement   Resource = "achievement"
	ResourceSanction      Resource = "sanction"
	ResourceEvent         Resource = "event"
	ResourceParticipation Resource = "participation"
	ResourcePortfolio     Resource = "portfolio"
	ResourceStatistics    Resource = "statistics"
	ResourceNotification  Resource = "notification"
)

// Operation identifies an action on a resource
type Operation string

const (
	OpRead     Operation = "read"
	OpCreate   Operation = "create"
	OpUpdate   Operation = "update"
	OpDelete   Operation = "delete"
	OpValidate Operation = "validate"
)

// Rule is one row of the policy table: which roles may perform the
// operation, and whether owning the resource is sufficient on its own.
type Rule struct {
	Roles      []models.RoleType
	AllowOwner bool
}

// rules is the declarative policy table. Every service consults this
// table through Authorize instead of carrying its own inline role checks.
var rules = map[Resource]map[Operation]Rule{
	ResourceCredit: {
		OpRead:     {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}, AllowOwner: true},
		OpCreate:   {AllowOwner: true}, // a student submits credits for themself only
		OpValidate: {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}},
		OpDelete:   {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true},
	},
	ResourceGoal: {
		OpRead:   {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}, AllowOwner: true},
		OpUpdate: {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true},
		OpDelete: {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true},
	},
	ResourceInterest: {
		OpRead:   {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}, AllowOwner: true},
		OpUpdate: {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true},
	},
	ResourceAchievement: {
		OpRead:   {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}, AllowOwner: true},
		OpCreate: {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true},
		OpDelete: {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true},
	},
	ResourceSanction: {
		OpRead: {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}, AllowOwner: true},
		// Never the student, even for their own record.
		OpUpdate: {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}},
	},
	ResourceEvent: {
		OpRead:   {Roles: []models.RoleType{models.RoleStudent, models.RoleTeacher, models.RoleAdmin}},
		OpCreate: {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}},
		OpUpdate: {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true}, // owner = event creator
		OpDelete: {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true},
	},
	ResourceParticipation: {
		OpCreate: {Roles: []models.RoleType{models.RoleStudent}},
		OpUpdate: {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}, AllowOwner: true},
	},
	ResourcePortfolio: {
		OpRead:   {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}, AllowOwner: true},
		OpUpdate: {Roles: []models.RoleType{models.RoleAdmin}, AllowOwner: true},
		OpCreate: {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}, AllowOwner: true}, // recommendation add
	},
	ResourceStatistics: {
		OpRead: {Roles: []models.RoleType{models.RoleTeacher, models.RoleAdmin}},
	},
	ResourceNotification: {
		OpRead:   {AllowOwner: true},
		OpUpdate: {AllowOwner: true},
		OpDelete: {AllowOwner: true},
	},
}

// Request carries everything the engine needs to decide a single access.
// OwnerUserID is the concrete owner account id, resolved by the caller
// (following student -> user where needed) before authorization.
type Request struct {
	Role   models.RoleType
	UserID int64

	// ResourceExists is false when the target entity was not found.
	ResourceExists bool

	// OwnerUserID is the owning user account, 0 when the resource has no owner.
	OwnerUserID int64

	// PathStudentID and ResourceStudentID are compared when both are set:
	// a resource reached through /students/:id must belong to that student.
	PathStudentID     int64
	ResourceStudentID int64
}

// Authorize evaluates the policy for one (resource, operation) pair.
// Precedence is fixed: existence, then path/resource student match,
// then the role/ownership rule.
func (e *Engine) Authorize(resource Resource, op Operation, req Request) error {
	if !req.ResourceExists {
		return apperrors.ErrNotFound
	}

	if req.PathStudentID != 0 && req.ResourceStudentID != 0 &&
		req.PathStudentID != req.ResourceStudentID {
		return apperrors.ErrStudentMismatch
	}

	rule, ok := e.rules[resource][op]
	if !ok {
		return apperrors.ErrPermissionDenied
	}

	if IsPrivileged(req.Role, rule.Roles...) {
		return nil
	}
	if rule.AllowOwner && IsOwnerID(req.OwnerUserID, req.UserID) {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// Engine is the centralized access policy consulted by every service
type Engine struct {
	rules map[Resource]map[Operation]Rule
}

// NewEngine creates a policy engine over the default rule table
func NewEngine() *Engine {
	return &Engine{rules: rules}
}
