package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// ReportController serves downloadable student reports
type ReportController struct {
	reportService services.ReportService
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService) *ReportController {
	return &ReportController{reportService: reportService}
}

// Download renders a student report as an attachment
// @Summary Download a student report
// @Description Renders the full student summary (profile, credits, goals,
// achievements, absences and sanctions) as an Excel or PDF attachment.
// @Tags reports
// @Produce application/octet-stream
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param format path string true "Document format" Enums(excel,pdf)
// @Success 200 {file} binary "Rendered document"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /reports/students/{id}/{format} [get]
func (c *ReportController) Download(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	format, err := services.ParseReportFormat(ctx.Param("format"))
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown report format").
			WithDetails("format must be excel or pdf")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	report, err := c.reportService.StudentReport(ctx, principal, studentID, format)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="`+report.FileName+`"`)
	ctx.Data(http.StatusOK, report.ContentType, report.Data)
}
