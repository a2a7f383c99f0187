package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

func TestIsOwner(t *testing.T) {
	assert.True(t, IsOwner("42", "42"))
	assert.True(t, IsOwner(" 42 ", "42"), "ids are trimmed before comparison")
	assert.True(t, IsOwner("AbC", "abc"), "ids are compared case-insensitively")
	assert.False(t, IsOwner("42", "43"))
	assert.False(t, IsOwner("", ""), "empty ids never match")
	assert.False(t, IsOwner("42", ""))
}

func TestIsOwnerID(t *testing.T) {
	assert.True(t, IsOwnerID(7, 7))
	assert.False(t, IsOwnerID(7, 8))
	assert.False(t, IsOwnerID(0, 0), "zero is the missing-owner sentinel")
}

func TestIsPrivileged(t *testing.T) {
	assert.True(t, IsPrivileged(models.RoleAdmin, models.RoleTeacher, models.RoleAdmin))
	assert.False(t, IsPrivileged(models.RoleStudent, models.RoleTeacher, models.RoleAdmin))
	assert.False(t, IsPrivileged(models.RoleStudent))
}

func TestAuthorizePrecedence(t *testing.T) {
	engine := NewEngine()

	t.Run("missing resource is NotFound even for admin", func(t *testing.T) {
		err := engine.Authorize(ResourceCredit, OpRead, Request{
			Role:           models.RoleAdmin,
			UserID:         1,
			ResourceExists: false,
		})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("path student mismatch outranks role", func(t *testing.T) {
		err := engine.Authorize(ResourceCredit, OpRead, Request{
			Role:              models.RoleAdmin,
			UserID:            1,
			ResourceExists:    true,
			PathStudentID:     10,
			ResourceStudentID: 11,
		})
		assert.ErrorIs(t, err, apperrors.ErrStudentMismatch)
	})

	t.Run("mismatch not triggered when either side is unset", func(t *testing.T) {
		err := engine.Authorize(ResourceCredit, OpRead, Request{
			Role:           models.RoleTeacher,
			UserID:         1,
			ResourceExists: true,
			PathStudentID:  10,
		})
		assert.NoError(t, err)
	})
}

func TestAuthorizeCreditRules(t *testing.T) {
	engine := NewEngine()

	t.Run("owner can read own credits", func(t *testing.T) {
		err := engine.Authorize(ResourceCredit, OpRead, Request{
			Role:           models.RoleStudent,
			UserID:         5,
			ResourceExists: true,
			OwnerUserID:    5,
		})
		assert.NoError(t, err)
	})

	t.Run("unrelated student cannot read", func(t *testing.T) {
		err := engine.Authorize(ResourceCredit, OpRead, Request{
			Role:           models.RoleStudent,
			UserID:         6,
			ResourceExists: true,
			OwnerUserID:    5,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("teacher can validate but not a student", func(t *testing.T) {
		req := Request{Role: models.RoleTeacher, UserID: 2, ResourceExists: true, OwnerUserID: 5}
		assert.NoError(t, engine.Authorize(ResourceCredit, OpValidate, req))

		req.Role = models.RoleStudent
		req.UserID = 5
		assert.ErrorIs(t, engine.Authorize(ResourceCredit, OpValidate, req), apperrors.ErrPermissionDenied)
	})

	t.Run("create is owner-only, teachers cannot submit for students", func(t *testing.T) {
		err := engine.Authorize(ResourceCredit, OpCreate, Request{
			Role:           models.RoleTeacher,
			UserID:         2,
			ResourceExists: true,
			OwnerUserID:    5,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})
}

func TestAuthorizeSanctionRules(t *testing.T) {
	engine := NewEngine()

	t.Run("owner may read own sanctions", func(t *testing.T) {
		err := engine.Authorize(ResourceSanction, OpRead, Request{
			Role:           models.RoleStudent,
			UserID:         5,
			ResourceExists: true,
			OwnerUserID:    5,
		})
		assert.NoError(t, err)
	})

	t.Run("owner may never update own sanctions", func(t *testing.T) {
		err := engine.Authorize(ResourceSanction, OpUpdate, Request{
			Role:           models.RoleStudent,
			UserID:         5,
			ResourceExists: true,
			OwnerUserID:    5,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("teacher may update", func(t *testing.T) {
		err := engine.Authorize(ResourceSanction, OpUpdate, Request{
			Role:           models.RoleTeacher,
			UserID:         2,
			ResourceExists: true,
			OwnerUserID:    5,
		})
		assert.NoError(t, err)
	})
}

func TestAuthorizeEventAndStatisticsRules(t *testing.T) {
	engine := NewEngine()

	t.Run("student cannot create events", func(t *testing.T) {
		err := engine.Authorize(ResourceEvent, OpCreate, Request{
			Role: models.RoleStudent, UserID: 5, ResourceExists: true,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("event creator may update without admin role", func(t *testing.T) {
		err := engine.Authorize(ResourceEvent, OpUpdate, Request{
			Role:           models.RoleTeacher,
			UserID:         2,
			ResourceExists: true,
			OwnerUserID:    2,
		})
		assert.NoError(t, err)
	})

	t.Run("another teacher may not update", func(t *testing.T) {
		err := engine.Authorize(ResourceEvent, OpUpdate, Request{
			Role:           models.RoleTeacher,
			UserID:         3,
			ResourceExists: true,
			OwnerUserID:    2,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	})

	t.Run("statistics are staff only", func(t *testing.T) {
		req := Request{Role: models.RoleStudent, UserID: 5, ResourceExists: true, OwnerUserID: 5}
		assert.ErrorIs(t, engine.Authorize(ResourceStatistics, OpRead, req), apperrors.ErrPermissionDenied)

		req.Role = models.RoleTeacher
		assert.NoError(t, engine.Authorize(ResourceStatistics, OpRead, req))
	})
}
