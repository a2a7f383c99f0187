package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/schoolmate-bg/schoolmate-api/internal/app/models"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/models/dto"
	"github.com/schoolmate-bg/schoolmate-api/internal/app/services"
	"github.com/schoolmate-bg/schoolmate-api/internal/middleware"
	"github.com/schoolmate-bg/schoolmate-api/internal/pkg/helpers"
)

// EventController handles school event and participation operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{eventService: eventService}
}

// Create adds a school event, teacher/admin only
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created"
// @Failure 422 {object} dto.ErrorResponse "endDate before startDate"
// @Router /events [post]
func (c *EventController) Create(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	var req dto.CreateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Create(ctx, principal, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(event))
}

// List retrieves events
// @Summary List events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param upcoming query bool false "Only events that have not started"
// @Param page query int false "Page number (1-based)"
// @Param size query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse} "Events"
// @Router /events [get]
func (c *EventController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	upcomingOnly := ctx.Query("upcoming") == "true"

	events, pagination, err := c.eventService.List(ctx, upcomingOnly, page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PaginatedResponse{
		Items:      events,
		Pagination: pagination,
	}))
}

// GetByID retrieves one event
// @Summary Get an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetByID(ctx *gin.Context) {
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	event, err := c.eventService.GetByID(ctx, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(event))
}

// Update modifies an event, creator/admin only
// @Summary Update an event
// @Description A start date change notifies all registered and confirmed
// participants.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Updated event"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [put]
func (c *EventController) Update(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	var req dto.UpdateEventRequest
	if !bindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.Update(ctx, principal, eventID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(event))
}

// Delete cancels an event, creator/admin only
// @Summary Delete an event
// @Description Removes the event and its participations; active
// participants are notified of the cancellation.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse "Event deleted"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) Delete(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.eventService.Delete(ctx, principal, eventID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Message: "Event deleted"})
}

// Register signs the calling student up for an event
// @Summary Register for an event
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 201 {object} dto.APIResponse{data=models.EventParticipation} "Registration created"
// @Failure 409 {object} dto.ErrorResponse "Already registered or event started"
// @Router /events/{id}/participations [post]
func (c *EventController) Register(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	participation, err := c.eventService.Register(ctx, principal, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(participation))
}

// CancelParticipation withdraws the caller's own registration
// @Summary Cancel own participation
// @Description Only possible before the event starts. A cancelled
// registration cannot be re-activated.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.EventParticipation} "Cancelled participation"
// @Failure 409 {object} dto.ErrorResponse "Event started or invalid state"
// @Router /events/{id}/participations [delete]
func (c *EventController) CancelParticipation(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	participation, err := c.eventService.CancelParticipation(ctx, principal, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(participation))
}

// ListParticipations lists event participations, teacher/admin only
// @Summary List event participations
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.EventParticipation} "Participations"
// @Failure 404 {object} dto.ErrorResponse "Event not found"
// @Router /events/{id}/participations [get]
func (c *EventController) ListParticipations(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	eventID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	participations, err := c.eventService.ListParticipations(ctx, principal, eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(participations))
}

// SetParticipationStatus moves a participation through its state machine
// @Summary Change a participation status
// @Description Confirmation and attendance marking follow the registered →
// confirmed → attended chain; attendance is staff only.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participationId path int true "Participation ID"
// @Param request body dto.UpdateParticipationStatusRequest true "New status"
// @Success 200 {object} dto.APIResponse{data=models.EventParticipation} "Updated participation"
// @Failure 409 {object} dto.ErrorResponse "Invalid transition"
// @Router /participations/{participationId}/status [patch]
func (c *EventController) SetParticipationStatus(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	participationID, ok := parseIDParam(ctx, "participationId")
	if !ok {
		return
	}
	var req dto.UpdateParticipationStatusRequest
	if !bindJSON(ctx, &req) {
		return
	}

	participation, err := c.eventService.SetParticipationStatus(
		ctx, principal, participationID, models.ParticipationStatus(req.Status))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(participation))
}

// SubmitFeedback stores feedback on the caller's own participation
// @Summary Submit event feedback
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param participationId path int true "Participation ID"
// @Param request body dto.ParticipationFeedbackRequest true "Feedback text"
// @Success 200 {object} dto.APIResponse{data=models.EventParticipation} "Updated participation"
// @Failure 403 {object} dto.ErrorResponse "Not the caller's participation"
// @Router /participations/{participationId}/feedback [post]
func (c *EventController) SubmitFeedback(ctx *gin.Context) {
	principal, ok := requirePrincipal(ctx)
	if !ok {
		return
	}
	participationID, ok := parseIDParam(ctx, "participationId")
	if !ok {
		return
	}
	var req dto.ParticipationFeedbackRequest
	if !bindJSON(ctx, &req) {
		return
	}

	participation, err := c.eventService.SubmitFeedback(ctx, principal, participationID, req.Feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(participation))
}
