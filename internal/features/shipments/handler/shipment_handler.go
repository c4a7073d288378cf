package handler

import (
	"errors"
	"net/http"

	"shipment-dashboard/internal/core/logger"
	"shipment-dashboard/internal/features/shipments/adapters"
	"shipment-dashboard/internal/features/shipments/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ShipmentHandler handles shipment list and detail reads.
type ShipmentHandler struct {
	listings *service.ListingService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(listings *service.ListingService) *ShipmentHandler {
	return &ShipmentHandler{
		listings: listings,
	}
}

// ListShipments godoc
// @Summary List all shipments
// @Description Retrieves every shipment visible to the configured session, cached briefly.
// @Tags shipments
// @Produce json
// @Success 200 {array} domain.Shipment
// @Failure 502 {object} ErrorResponse
// @Router /shipments [get]
func (h *ShipmentHandler) ListShipments(c *fiber.Ctx) error {
	shipments, err := h.listings.List(c.Context())
	if err != nil {
		return h.fail(c, "Failed to list shipments", err)
	}
	return c.JSON(shipments)
}

// GetShipment godoc
// @Summary Get one shipment
// @Tags shipments
// @Produce json
// @Param id path string true "Shipment ID"
// @Success 200 {object} domain.Shipment
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /shipments/{id} [get]
func (h *ShipmentHandler) GetShipment(c *fiber.Ctx) error {
	shipment, err := h.listings.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, "Failed to get shipment", err)
	}
	return c.JSON(shipment)
}

func (h *ShipmentHandler) fail(c *fiber.Ctx, logMsg string, err error) error {
	id := rayID(c)

	logger.Get().Error(logMsg,
		zap.String("ray_id", id),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	msg := err.Error()

	var remoteErr *adapters.RemoteError
	if errors.As(err, &remoteErr) {
		if remoteErr.StatusCode == http.StatusNotFound {
			status = http.StatusNotFound
			msg = "Shipment not found"
		} else {
			status = http.StatusBadGateway
			msg = remoteErr.Message
		}
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: msg,
		RayID:   id,
	})
}
