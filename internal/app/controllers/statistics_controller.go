package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// StatisticsController serves the staff dashboards. All routes are
// guarded by the teacher/admin role middleware.
type StatisticsController struct {
	statisticsService services.StatisticsService
}

// NewStatisticsController creates a new StatisticsController
func NewStatisticsController(statisticsService services.StatisticsService) *StatisticsController {
	return &StatisticsController{statisticsService: statisticsService}
}

// Overview retrieves the combined dashboard rollup
// @Summary Get the statistics overview
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OverviewStatistics} "Overview"
// @Router /statistics/overview [get]
func (c *StatisticsController) Overview(ctx *gin.Context) {
	overview, err := c.statisticsService.Overview(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(overview))
}

// Credits retrieves credit statistics
// @Summary Get credit statistics
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.CreditStatistics} "Credit rollup"
// @Router /statistics/credits [get]
func (c *StatisticsController) Credits(ctx *gin.Context) {
	stats, err := c.statisticsService.CreditStatistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// Events retrieves event statistics
// @Summary Get event statistics
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.EventStatistics} "Event rollup"
// @Router /statistics/events [get]
func (c *StatisticsController) Events(ctx *gin.Context) {
	stats, err := c.statisticsService.EventStatistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(stats))
}

// Absences retrieves the absence report
// @Summary Get the absence report
// @Tags statistics
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.AbsenceReport} "Absence report"
// @Router /statistics/absences [get]
func (c *StatisticsController) Absences(ctx *gin.Context) {
	report, err := c.statisticsService.AbsenceReport(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(report))
}
