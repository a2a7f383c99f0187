package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// SanctionController handles absence and sanction operations
type SanctionController struct {
	sanctionService services.SanctionService
}

// NewSanctionController creates a new SanctionController
func NewSanctionController(sanctionService services.SanctionService) *SanctionController {
	return &SanctionController{sanctionService: sanctionService}
}

// Get retrieves a student's sanction record
// @Summary Get a student's absences and sanctions
// @Description Returns the stored record, or the default shape with zero
// absences when none exists yet.
// @Tags sanctions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Sanction} "Sanction record"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/sanctions [get]
func (c *SanctionController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	sanction, err := c.sanctionService.Get(ctx, principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sanction))
}

// UpdateAbsences writes new absence counters, teacher/admin only
// @Summary Update a student's absences
// @Description An increase notifies the student; exceeding 80% of the
// allowance additionally triggers a critical alert with an email.
// @Tags sanctions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateAbsencesRequest true "Absence counters"
// @Success 200 {object} dto.APIResponse{data=models.Sanction} "Updated record"
// @Failure 422 {object} dto.ErrorResponse "Negative counters"
// @Router /students/{id}/sanctions/absences [put]
func (c *SanctionController) UpdateAbsences(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateAbsencesRequest
	if !bindJSON(ctx, &req) {
		return
	}

	sanction, err := c.sanctionService.UpdateAbsences(ctx, principal, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sanction))
}

// UpdateRemarks writes the schoolo remarks counter, teacher/admin only
// @Summary Update a student's schoolo remarks
// @Tags sanctions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateRemarksRequest true "Remarks counter"
// @Success 200 {object} dto.APIResponse{data=models.Sanction} "Updated record"
// @Router /students/{id}/sanctions/schoolo-remarks [put]
func (c *SanctionController) UpdateRemarks(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateRemarksRequest
	if !bindJSON(ctx, &req) {
		return
	}

	sanction, err := c.sanctionService.UpdateRemarks(ctx, principal, studentID, req.SchooloRemarks)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sanction))
}

// AddActiveSanction records a disciplinary measure, teacher/admin only
// @Summary Add an active sanction
// @Tags sanctions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.AddActiveSanctionRequest true "Sanction data"
// @Success 201 {object} dto.APIResponse{data=models.Sanction} "Updated record"
// @Failure 422 {object} dto.ErrorResponse "Invalid dates"
// @Router /students/{id}/sanctions/active [post]
func (c *SanctionController) AddActiveSanction(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AddActiveSanctionRequest
	if !bindJSON(ctx, &req) {
		return
	}

	sanction, err := c.sanctionService.AddActiveSanction(ctx, principal, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(sanction))
}

// RemoveActiveSanction lifts a disciplinary measure, teacher/admin only
// @Summary Remove an active sanction
// @Tags sanctions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param sanctionId path int true "Sanction ID"
// @Success 200 {object} dto.APIResponse{data=models.Sanction} "Updated record"
// @Failure 404 {object} dto.ErrorResponse "Sanction not found"
// @Router /students/{id}/sanctions/active/{sanctionId} [delete]
func (c *SanctionController) RemoveActiveSanction(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	sanctionID, ok := parseIDParam(ctx, "sanctionId")
	if !ok {
		return
	}

	sanction, err := c.sanctionService.RemoveActiveSanction(ctx, principal, studentID, sanctionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(sanction))
}
