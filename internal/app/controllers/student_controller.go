package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/repositories"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
)

// StudentController handles student profile operations
type StudentController struct {
	studentService services.StudentService
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService) *StudentController {
	return &StudentController{studentService: studentService}
}

// CreateProfile creates a student profile, admin only
// @Summary Create a student profile
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentProfileRequest true "Profile data"
// @Success 201 {object} dto.APIResponse{data=models.StudentProfile} "Profile created"
// @Failure 409 {object} dto.ErrorResponse "User already has a profile"
// @Router /students [post]
func (c *StudentController) CreateProfile(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	var req dto.CreateStudentProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.studentService.Create(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(profile))
}

// List retrieves student profiles, teacher/admin only
// @Summary List students
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param grade query int false "Filter by grade"
// @Param specialization query string false "Filter by specialization"
// @Param search query string false "Search in student names"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Students"
// @Router /students [get]
func (c *StudentController) List(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	params := repositories.ListStudentsParams{}
	params.Page, params.Size = helpers.ParsePaginationParams(ctx)
	if raw := ctx.Query("grade"); raw != "" {
		grade, err := strconv.Atoi(raw)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade filter")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		params.Grade = &grade
	}
	if raw := strings.TrimSpace(ctx.Query("specialization")); raw != "" {
		params.Specialization = &raw
	}
	if raw := strings.TrimSpace(ctx.Query("search")); raw != "" {
		params.Search = &raw
	}

	students, pagination, err := c.studentService.List(ctx, principal, params)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      students,
		Pagination: pagination,
	}))
}

// GetOwn retrieves the caller's own student profile
// @Summary Get own student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Caller has no student profile"
// @Router /students/me [get]
func (c *StudentController) GetOwn(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	profile, err := c.studentService.GetOwn(ctx, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// GetByID retrieves one student profile
// @Summary Get a student profile
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetByID(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	profile, err := c.studentService.GetByID(ctx, principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// Delete removes a student profile, admin only
// @Summary Delete a student profile
// @Description Removes the student profile and all dependent school
// records; the user account is kept.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Profile deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.Delete(ctx, principal, studentID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"deleted": true}))
}

// Update modifies a student profile
// @Summary Update a student profile
// @Description Grade, average grade and specialization changes are limited
// to teachers and admins; students may change their own image.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentProfileRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.StudentProfile} "Updated profile"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateStudentProfileRequest
	if !bindJSON(ctx, &req) {
		return
	}

	profile, err := c.studentService.Update(ctx, principal, studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}
