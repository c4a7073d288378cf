package handler

import (
	"errors"
	"net/http"

	"shipment-dashboard/internal/core/logger"
	"shipment-dashboard/internal/features/shipments/adapters"
	"shipment-dashboard/internal/features/shipments/domain"
	"shipment-dashboard/internal/features/shipments/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// DraftHandler handles HTTP requests for shipment drafts.
type DraftHandler struct {
	drafts   *service.DraftService
	listings *service.ListingService
}

// NewDraftHandler creates a new DraftHandler.
func NewDraftHandler(drafts *service.DraftService, listings *service.ListingService) *DraftHandler {
	return &DraftHandler{
		drafts:   drafts,
		listings: listings,
	}
}

// ErrorResponse represents an error response with Ray ID.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// DraftResponse wraps a draft with its computed submission gates.
type DraftResponse struct {
	Draft *domain.Draft `json:"draft"`
	// CanSubmit is true when the shipment draft passes submission gating.
	CanSubmit bool `json:"canSubmit"`
	// CanSaveEvent is true when the event sub-form may be saved.
	CanSaveEvent bool `json:"canSaveEvent"`
}

func newDraftResponse(draft *domain.Draft) DraftResponse {
	return DraftResponse{
		Draft:        draft,
		CanSubmit:    draft.CanSubmit(),
		CanSaveEvent: draft.CanSaveEvent(),
	}
}

// CreateDraftRequest is the body for POST /drafts.
type CreateDraftRequest struct {
	// Mode is "add" or "edit".
	Mode domain.FormMode `json:"mode"`
	// ID is the shipment id to load; required in edit mode.
	ID string `json:"id,omitempty"`
}

// FieldChangeRequest is the body for field mutation endpoints.
type FieldChangeRequest struct {
	Name  domain.FieldName `json:"name"`
	Value string           `json:"value"`
}

// OpenEventRequest is the body for POST /drafts/{id}/event.
type OpenEventRequest struct {
	// Mode is "add" or "edit".
	Mode domain.FormMode `json:"mode"`
	// EventID selects the event to edit; required in edit mode.
	EventID string `json:"eventId,omitempty"`
}

// CreateDraft godoc
// @Summary Start a shipment draft
// @Description Starts an "add" draft with a fresh tracking id, or an "edit" draft loaded from the upstream shipment.
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body CreateDraftRequest true "Draft mode"
// @Success 201 {object} DraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /drafts [post]
func (h *DraftHandler) CreateDraft(c *fiber.Ctx) error {
	var req CreateDraftRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ctx := c.Context()

	var (
		draft *domain.Draft
		err   error
	)

	switch req.Mode {
	case domain.ModeEdit:
		if req.ID == "" {
			return badRequest(c, "shipment id is required in edit mode")
		}
		draft, err = h.drafts.StartEdit(ctx, req.ID)
	case domain.ModeAdd, "":
		draft, err = h.drafts.StartAdd(ctx)
	default:
		return badRequest(c, "mode must be \"add\" or \"edit\"")
	}

	if err != nil {
		return h.fail(c, "Failed to start draft", err)
	}

	return c.Status(http.StatusCreated).JSON(newDraftResponse(draft))
}

// GetDraft godoc
// @Summary Get a shipment draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} DraftResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id} [get]
func (h *DraftHandler) GetDraft(c *fiber.Ctx) error {
	draft, err := h.drafts.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to load draft", err)
	}
	return c.JSON(newDraftResponse(draft))
}

// DiscardDraft godoc
// @Summary Discard a shipment draft
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /drafts/{id} [delete]
func (h *DraftHandler) DiscardDraft(c *fiber.Ctx) error {
	if err := h.drafts.Discard(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, "Failed to discard draft", err)
	}
	return c.JSON(fiber.Map{"message": "Draft discarded"})
}

// ChangeField godoc
// @Summary Apply a shipment-level field change
// @Description Routes the named field into the draft and recomputes its validation warning. Unknown field names are rejected.
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body FieldChangeRequest true "Field change"
// @Success 200 {object} DraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id}/fields [patch]
func (h *DraftHandler) ChangeField(c *fiber.Ctx) error {
	var req FieldChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	draft, err := h.drafts.UpdateField(c.Context(), c.Params("id"), req.Name, req.Value)
	if err != nil {
		return h.fail(c, "Failed to apply field change", err)
	}
	return c.JSON(newDraftResponse(draft))
}

// RegenerateTrackingID godoc
// @Summary Regenerate the draft's tracking id
// @Description Replaces the tracking id with a fresh random code. In edit mode this changes the update key.
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} DraftResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id}/tracking-id [post]
func (h *DraftHandler) RegenerateTrackingID(c *fiber.Ctx) error {
	draft, err := h.drafts.RegenerateTrackingID(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to regenerate tracking id", err)
	}
	return c.JSON(newDraftResponse(draft))
}

// OpenEvent godoc
// @Summary Open the event sub-form
// @Description Add mode clears the event draft and assigns a fresh event id; edit mode loads the event by id.
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body OpenEventRequest true "Sub-form mode"
// @Success 200 {object} DraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id}/event [post]
func (h *DraftHandler) OpenEvent(c *fiber.Ctx) error {
	var req OpenEventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	draft, err := h.drafts.OpenEvent(c.Context(), c.Params("id"), req.Mode, req.EventID)
	if err != nil {
		return h.fail(c, "Failed to open event form", err)
	}
	return c.JSON(newDraftResponse(draft))
}

// ChangeEventField godoc
// @Summary Apply an event-level field change
// @Tags drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param request body FieldChangeRequest true "Field change"
// @Success 200 {object} DraftResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id}/event/fields [patch]
func (h *DraftHandler) ChangeEventField(c *fiber.Ctx) error {
	var req FieldChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	draft, err := h.drafts.UpdateEventField(c.Context(), c.Params("id"), req.Name, req.Value)
	if err != nil {
		return h.fail(c, "Failed to apply event field change", err)
	}
	return c.JSON(newDraftResponse(draft))
}

// SaveEvent godoc
// @Summary Save the event sub-form into the shipment
// @Description Add mode appends and keeps the sub-form open; edit mode replaces by event id (the edited event moves to the end of the list) and closes the sub-form.
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} DraftResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /drafts/{id}/event [put]
func (h *DraftHandler) SaveEvent(c *fiber.Ctx) error {
	draft, err := h.drafts.SaveEvent(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to save event", err)
	}
	return c.JSON(newDraftResponse(draft))
}

// CloseEvent godoc
// @Summary Close the event sub-form
// @Description Discards the event draft and clears event-level warnings.
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} DraftResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id}/event [delete]
func (h *DraftHandler) CloseEvent(c *fiber.Ctx) error {
	draft, err := h.drafts.CloseEvent(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to close event form", err)
	}
	return c.JSON(newDraftResponse(draft))
}

// DeleteEvent godoc
// @Summary Delete an event from the shipment
// @Description Removes the event with the given event id; deleting an absent id leaves the list unchanged.
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param eventId path string true "Event ID"
// @Success 200 {object} DraftResponse
// @Failure 404 {object} ErrorResponse
// @Router /drafts/{id}/events/{eventId} [delete]
func (h *DraftHandler) DeleteEvent(c *fiber.Ctx) error {
	draft, err := h.drafts.DeleteEvent(c.Context(), c.Params("id"), c.Params("eventId"))
	if err != nil {
		return h.fail(c, "Failed to delete event", err)
	}
	return c.JSON(newDraftResponse(draft))
}

// Submit godoc
// @Summary Submit the shipment draft upstream
// @Description POST for add mode, PATCH keyed by tracking id for edit mode. Success discards the draft; failure preserves it. Concurrent submits for the same draft are rejected.
// @Tags drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} service.SubmitResult
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *fiber.Ctx) error {
	result, err := h.drafts.Submit(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to submit shipment", err)
	}

	h.listings.Invalidate(c.Context(), result.TrackingID, result.RecordID)

	return c.JSON(result)
}

// fail maps service and domain errors onto HTTP statuses, logging the
// underlying cause with the request's Ray ID.
func (h *DraftHandler) fail(c *fiber.Ctx, logMsg string, err error) error {
	rayID := rayID(c)

	logger.Get().Error(logMsg,
		zap.String("draft_id", c.Params("id")),
		zap.String("ray_id", rayID),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	msg := err.Error()

	var remoteErr *adapters.RemoteError

	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		status = http.StatusNotFound
		msg = "Draft not found"
	case errors.Is(err, service.ErrSubmissionInFlight):
		status = http.StatusConflict
		msg = "A submission for this draft is already in flight"
	case errors.Is(err, domain.ErrNotSubmittable), errors.Is(err, domain.ErrEventBlocked), errors.Is(err, domain.ErrEventFormClosed):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrUnknownField), errors.Is(err, domain.ErrInvalidStatus), errors.Is(err, domain.ErrInvalidBill):
		status = http.StatusBadRequest
	case errors.As(err, &remoteErr):
		status = http.StatusBadGateway
		msg = remoteErr.Message
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: msg,
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}
