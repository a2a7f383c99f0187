package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

// Register must reject bad input before touching any repository, so these
// run against a service with no repositories at all: a panic here means a
// rejected registration wrote something first.

func TestRegisterRejectsElevatedRoles(t *testing.T) {
	svc := NewAuthService(nil, nil, nil, nil, nil)

	for _, role := range []string{"teacher", "admin"} {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:     "new@school.bg",
			Password:  "s3cret-pass",
			FirstName: "Иван",
			LastName:  "Петров",
			Role:      role,
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied, "role %s", role)
	}
}

func TestRegisterValidatesGradeBeforeCreatingAnything(t *testing.T) {
	svc := NewAuthService(nil, nil, nil, nil, nil)

	for _, grade := range []int{0, 7, 13} {
		g := grade
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:     "new@school.bg",
			Password:  "s3cret-pass",
			FirstName: "Иван",
			LastName:  "Петров",
			Grade:     &g,
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "grade %d", grade)
	}
}
