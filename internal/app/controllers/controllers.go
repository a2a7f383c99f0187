// Package controllers holds the HTTP handlers. Controllers bind and
// validate request payloads, delegate to the service layer and translate
// results into the standard response envelopes.
package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// parseIDParam reads a positive int64 path parameter. On failure it
// writes the 400 response and returns false.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name).
			WithDetails(name + " must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// requirePrincipal fetches the authenticated caller. On failure it writes
// the 401 response and returns false; only happens when a route was wired
// without the auth middleware.
func requirePrincipal(ctx *gin.Context) (services.Principal, bool) {
	principal, ok := middleware.GetPrincipal(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return services.Principal{}, false
	}
	return principal, true
}

// bindJSON binds the request body. On failure it writes the 400 response
// and returns false.
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request data").
			WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return false
	}
	return true
}
