package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

func TestStudentDeleteIsAdminOnly(t *testing.T) {
	// The role gate runs before any repository access, so a nil-backed
	// service is enough to prove non-admins are turned away.
	svc := NewStudentService(nil, nil, nil)

	for _, role := range []models.RoleType{models.RoleStudent, models.RoleTeacher} {
		err := svc.Delete(context.Background(), Principal{UserID: 7, Role: role}, 1)
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "role %s", role)
	}
}

func TestValidateGradeBounds(t *testing.T) {
	assert.NoError(t, validateGrade(models.MinGrade))
	assert.NoError(t, validateGrade(models.MaxGrade))
	assert.ErrorIs(t, validateGrade(models.MinGrade-1), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, validateGrade(models.MaxGrade+1), apperrors.ErrValidationFailed)
}
