package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
)

// CreditController handles credit and credit category operations
type CreditController struct {
	creditService services.CreditService
}

// NewCreditController creates a new CreditController
func NewCreditController(creditService services.CreditService) *CreditController {
	return &CreditController{creditService: creditService}
}

// Create submits a credit claim for the calling student
// @Summary Submit a credit
// @Description Creates a pending credit for the caller's own profile. The
// same activity cannot be submitted twice while pending or validated.
// @Tags credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCreditRequest true "Credit data"
// @Success 201 {object} dto.APIResponse{data=models.Credit} "Credit created"
// @Failure 409 {object} dto.ErrorResponse "Duplicate activity"
// @Failure 422 {object} dto.ErrorResponse "Unknown pillar"
// @Router /credits [post]
func (c *CreditController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	var req dto.CreateCreditRequest
	if !bindJSON(ctx, &req) {
		return
	}

	credit, err := c.creditService.Create(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(credit))
}

// ListForStudent retrieves a student's credits
// @Summary List a student's credits
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Credit} "Credits"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id}/credits [get]
func (c *CreditController) ListForStudent(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	credits, err := c.creditService.ListForStudent(ctx, principal, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(credits))
}

// ListPending retrieves the review queue, teacher/admin only
// @Summary List pending credits
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Credit} "Pending credits, oldest first"
// @Router /credits/pending [get]
func (c *CreditController) ListPending(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}

	credits, err := c.creditService.ListPending(ctx, principal)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(credits))
}

// Validate reviews a pending credit, teacher/admin only
// @Summary Validate or reject a credit
// @Description Moves a pending credit to validated or rejected and
// notifies the student. Reviewed credits cannot be reviewed again.
// @Tags credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Credit ID"
// @Param request body dto.ValidateCreditRequest true "Review decision"
// @Success 200 {object} dto.APIResponse{data=models.Credit} "Reviewed credit"
// @Failure 404 {object} dto.ErrorResponse "Credit not found"
// @Failure 409 {object} dto.ErrorResponse "Credit is not pending"
// @Router /credits/{id}/validate [patch]
func (c *CreditController) Validate(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	creditID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.ValidateCreditRequest
	if !bindJSON(ctx, &req) {
		return
	}

	credit, err := c.creditService.Validate(ctx, principal, creditID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(credit))
}

// Delete removes a credit
// @Summary Delete a credit
// @Description Students may delete their own pending or rejected credits;
// validated credits can only be removed by an admin.
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Credit ID"
// @Success 200 {object} dto.APIResponse "Credit deleted"
// @Failure 403 {object} dto.ErrorResponse "Validated credit or foreign credit"
// @Failure 404 {object} dto.ErrorResponse "Credit not found"
// @Router /credits/{id} [delete]
func (c *CreditController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	creditID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.creditService.Delete(ctx, principal, creditID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Credit deleted"})
}

// CreateCategory adds a credit category, admin only
// @Summary Create a credit category
// @Tags credits
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCreditCategoryRequest true "Category data"
// @Success 201 {object} dto.APIResponse{data=models.CreditCategory} "Category created"
// @Failure 409 {object} dto.ErrorResponse "Category exists in this pillar"
// @Router /credits/categories [post]
func (c *CreditController) CreateCategory(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	var req dto.CreateCreditCategoryRequest
	if !bindJSON(ctx, &req) {
		return
	}

	category, err := c.creditService.CreateCategory(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(category))
}

// ListCategories lists credit categories
// @Summary List credit categories
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param pillar query string false "Filter by pillar"
// @Success 200 {object} dto.APIResponse{data=[]models.CreditCategory} "Categories"
// @Router /credits/categories [get]
func (c *CreditController) ListCategories(ctx *gin.Context) {
	var pillar *models.Pillar
	if raw := ctx.Query("pillar"); raw != "" {
		p := models.Pillar(raw)
		if !p.IsValid() {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Unknown pillar")
			ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		pillar = &p
	}

	categories, err := c.creditService.ListCategories(ctx, pillar)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(categories))
}

// DeleteCategory removes a credit category, admin only
// @Summary Delete a credit category
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Param id path int true "Category ID"
// @Success 200 {object} dto.APIResponse "Category deleted"
// @Failure 404 {object} dto.ErrorResponse "Category not found"
// @Router /credits/categories/{id} [delete]
func (c *CreditController) DeleteCategory(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	categoryID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.creditService.DeleteCategory(ctx, principal, categoryID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Category deleted"})
}
