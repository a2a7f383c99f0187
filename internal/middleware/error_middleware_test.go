package middleware

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   dto.ErrorCode
	}{
		{"not found", apperrors.ErrCreditNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{"student mismatch", apperrors.ErrStudentMismatch, http.StatusNotFound, dto.ErrorCodeStudentMismatch},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden, dto.ErrorCodeForbidden},
		{"validated credit is a state conflict", apperrors.ErrCreditValidatedState, http.StatusConflict, dto.ErrorCodeResourceConflict},
		{"invalid transition", apperrors.ErrInvalidTransition, http.StatusConflict, dto.ErrorCodeResourceConflict},
		{"duplicate", apperrors.ErrCreditDuplicate, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{"validation", apperrors.ErrValidationFailed, http.StatusUnprocessableEntity, dto.ErrorCodeValidationFailed},
		{"bad credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := classifyError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
		})
	}
}

func TestClassifyErrorWrappedCustomError(t *testing.T) {
	err := apperrors.NewValidationError("grade must be between 8 and 12")

	status, detail := classifyError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, dto.ErrorCodeValidationFailed, detail.Code)
	assert.Contains(t, detail.Message, "grade must be between")
}
