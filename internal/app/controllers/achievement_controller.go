package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// AchievementController handles achievement operations
type AchievementController struct {
	achievementService services.AchievementService
}

// NewAchievementController creates a new AchievementController
func NewAchievementController(achievementService services.AchievementService) *AchievementController {
	return &AchievementController{achievementService: achievementService}
}

// List retrieves a student's achievements
// @Summary List a student's achievements
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Achievement} "Achievements, newest first"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/achievements [get]
func (c *AchievementController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	achievements, err := c.achievementService.List(ctx, principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(achievements))
}

// Create records an achievement
// @Summary Add an achievement
// @Description The date must not be in the future; the same title cannot
// be recorded twice on the same date.
// @Tags achievements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.CreateAchievementRequest true "Achievement data"
// @Success 201 {object} dto.APIResponse{data=models.Achievement} "Achievement created"
// @Failure 409 {object} dto.ErrorResponse "Duplicate achievement"
// @Failure 422 {object} dto.ErrorResponse "Invalid category or date"
// @Router /students/{id}/achievements [post]
func (c *AchievementController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.CreateAchievementRequest
	if !bindJSON(ctx, &req) {
		return
	}

	achievement, err := c.achievementService.Create(ctx, principal, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(achievement))
}

// Delete removes an achievement
// @Summary Delete an achievement
// @Tags achievements
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param achievementId path int true "Achievement ID"
// @Success 200 {object} dto.APIResponse "Achievement deleted"
// @Failure 404 {object} dto.ErrorResponse "Achievement not found or belongs to another student"
// @Router /students/{id}/achievements/{achievementId} [delete]
func (c *AchievementController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	achievementID, ok := parseIDParam(ctx, "achievementId")
	if !ok {
		return
	}

	if err := c.achievementService.Delete(ctx, principal, studentID, achievementID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Achievement deleted"})
}
