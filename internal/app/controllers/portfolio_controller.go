package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// PortfolioController handles portfolio operations
type PortfolioController struct {
	portfolioService services.PortfolioService
}

// NewPortfolioController creates a new PortfolioController
func NewPortfolioController(portfolioService services.PortfolioService) *PortfolioController {
	return &PortfolioController{portfolioService: portfolioService}
}

// Get retrieves a student's portfolio
// @Summary Get a student's portfolio
// @Description Returns the stored portfolio, or an empty default shape
// when the student has not filled one in yet.
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Portfolio} "Portfolio"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/portfolio [get]
func (c *PortfolioController) Get(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	portfolio, err := c.portfolioService.Get(ctx, principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(portfolio))
}

// Update writes portfolio content
// @Summary Update a student's portfolio
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdatePortfolioRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Portfolio} "Updated portfolio"
// @Failure 422 {object} dto.ErrorResponse "Mentor is not a teacher or admin"
// @Router /students/{id}/portfolio [put]
func (c *PortfolioController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdatePortfolioRequest
	if !bindJSON(ctx, &req) {
		return
	}

	portfolio, err := c.portfolioService.Update(ctx, principal, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(portfolio))
}

// AddRecommendation appends a recommendation
// @Summary Add a portfolio recommendation
// @Description One recommendation per distinct author, up to the list
// maximum. The student is notified.
// @Tags portfolio
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.AddRecommendationRequest true "Recommendation"
// @Success 201 {object} dto.APIResponse{data=models.Portfolio} "Updated portfolio"
// @Failure 409 {object} dto.ErrorResponse "Author already recommended or list full"
// @Router /students/{id}/portfolio/recommendations [post]
func (c *PortfolioController) AddRecommendation(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.AddRecommendationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	portfolio, err := c.portfolioService.AddRecommendation(ctx, principal, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(portfolio))
}

// DeleteRecommendation removes a recommendation
// @Summary Delete a portfolio recommendation
// @Tags portfolio
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param recommendationId path int true "Recommendation ID"
// @Success 200 {object} dto.APIResponse{data=models.Portfolio} "Updated portfolio"
// @Failure 404 {object} dto.ErrorResponse "Recommendation not found"
// @Router /students/{id}/portfolio/recommendations/{recommendationId} [delete]
func (c *PortfolioController) DeleteRecommendation(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	recommendationID, ok := parseIDParam(ctx, "recommendationId")
	if !ok {
		return
	}

	portfolio, err := c.portfolioService.DeleteRecommendation(ctx, principal, studentID, recommendationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(portfolio))
}
