package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// GoalController handles per-category goal operations
type GoalController struct {
	goalService services.GoalService
}

// NewGoalController creates a new GoalController
func NewGoalController(goalService services.GoalService) *GoalController {
	return &GoalController{goalService: goalService}
}

func parseGoalCategory(ctx *gin.Context) (models.GoalCategory, bool) {
	category := models.GoalCategory(ctx.Param("category"))
	if !category.IsValid() {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown goal category")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return "", false
	}
	return category, true
}

// List retrieves all goals of a student
// @Summary List a student's goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Goal} "Goals"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/goals [get]
func (c *GoalController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	goals, err := c.goalService.List(ctx, principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(goals))
}

// Get retrieves one goal category
// @Summary Get a goal by category
// @Description Returns the stored goal, or an empty default shape when the
// student has not filled in this category yet.
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param category path string true "Goal category" Enums(education,career,personal,health,social,finance)
// @Success 200 {object} dto.APIResponse{data=models.Goal} "Goal"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/goals/{category} [get]
func (c *GoalController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	category, ok := parseGoalCategory(ctx)
	if !ok {
		return
	}

	goal, err := c.goalService.Get(ctx, principal, studentID, category)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(goal))
}

// Upsert creates or replaces one goal category
// @Summary Create or update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param category path string true "Goal category" Enums(education,career,personal,health,social,finance)
// @Param request body dto.UpdateGoalRequest true "Goal content"
// @Success 200 {object} dto.APIResponse{data=models.Goal} "Stored goal"
// @Failure 409 {object} dto.ErrorResponse "Duplicate activities"
// @Failure 422 {object} dto.ErrorResponse "Activity limits exceeded"
// @Router /students/{id}/goals/{category} [put]
func (c *GoalController) Upsert(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	category, ok := parseGoalCategory(ctx)
	if !ok {
		return
	}
	var req dto.UpdateGoalRequest
	if !bindJSON(ctx, &req) {
		return
	}

	goal, err := c.goalService.Upsert(ctx, principal, studentID, category, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(goal))
}

// Delete removes one goal category
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param category path string true "Goal category" Enums(education,career,personal,health,social,finance)
// @Success 200 {object} dto.APIResponse "Goal deleted"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Router /students/{id}/goals/{category} [delete]
func (c *GoalController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	category, ok := parseGoalCategory(ctx)
	if !ok {
		return
	}

	if err := c.goalService.Delete(ctx, principal, studentID, category); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Goal deleted"})
}
