package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// InterestController handles interest and hobby operations
type InterestController struct {
	interestService services.InterestService
}

// NewInterestController creates a new InterestController
func NewInterestController(interestService services.InterestService) *InterestController {
	return &InterestController{interestService: interestService}
}

// Get retrieves a student's interests
// @Summary Get a student's interests and hobbies
// @Description Returns the stored record, or empty lists when the student
// has not filled in interests yet.
// @Tags interests
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Interest} "Interests"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/interests [get]
func (c *InterestController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	interest, err := c.interestService.Get(ctx, principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interest))
}

// Update replaces a student's interests
// @Summary Update a student's interests and hobbies
// @Tags interests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateInterestsRequest true "New interest lists"
// @Success 200 {object} dto.APIResponse{data=models.Interest} "Stored interests"
// @Failure 409 {object} dto.ErrorResponse "Duplicate entries"
// @Failure 422 {object} dto.ErrorResponse "List limits exceeded"
// @Router /students/{id}/interests [put]
func (c *InterestController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateInterestsRequest
	if !bindJSON(ctx, &req) {
		return
	}

	interest, err := c.interestService.Update(ctx, principal, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(interest))
}
