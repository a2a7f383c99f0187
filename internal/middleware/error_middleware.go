package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/apperrors"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers
// call it for every service error so the mapping lives in one place.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled API error")
	}
	c.JSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	var custom *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &custom) {
		message = custom.Error()
	}

	switch {
	// Not-found outranks everything, including ownership
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrCreditNotFound),
		errors.Is(err, apperrors.ErrEventNotFound),
		errors.Is(err, apperrors.ErrParticipationNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)

	// A path/resource student mismatch is its own 404-class answer so the
	// response does not leak whether the resource exists elsewhere
	case errors.Is(err, apperrors.ErrStudentMismatch):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeStudentMismatch, message)

	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message)

	case errors.Is(err, apperrors.ErrAlreadyExists),
		errors.Is(err, apperrors.ErrEmailAlreadyExists),
		errors.Is(err, apperrors.ErrProfileAlreadyExists),
		errors.Is(err, apperrors.ErrAlreadyRegistered),
		errors.Is(err, apperrors.ErrCreditDuplicate):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)

	// A validated credit is in a terminal state, so touching it is a
	// conflict with that state rather than a permission problem
	case errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrCreditValidatedState),
		errors.Is(err, apperrors.ErrCreditNotPending),
		errors.Is(err, apperrors.ErrEventStarted),
		errors.Is(err, apperrors.ErrInvalidTransition):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceConflict, message)

	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)

	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, message)

	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidResetToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message)

	case errors.Is(err, apperrors.ErrAccountLocked),
		errors.Is(err, apperrors.ErrAccountDisabled):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeAccountLocked, message)

	case errors.Is(err, apperrors.ErrTwoFactorRequired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeTwoFactorRequired, message)

	case errors.Is(err, apperrors.ErrTwoFactorInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message)

	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, message)

	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, message)

	default:
		return http.StatusInternalServerError,
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
