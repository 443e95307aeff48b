package handlers

import (
	"github.com/labstack/echo/v4"

	"boxtribute/internal/common"
	"boxtribute/internal/services"
)

// ShipmentHandlers handles shipment box-assignment HTTP requests.
type ShipmentHandlers struct {
	shipmentBoxService services.ShipmentBoxService
}

func NewShipmentHandlers(shipmentBoxService services.ShipmentBoxService) *ShipmentHandlers {
	return &ShipmentHandlers{shipmentBoxService: shipmentBoxService}
}

// validateLabelIdentifiers rejects the request before any coordinator work
// when a selected label is not a printed box label.
func validateLabelIdentifiers(c echo.Context, labels []string) error {
	for _, label := range labels {
		if err := common.ValidateLabelIdentifier(label, "labelIdentifiers"); err != nil {
			return common.SendValidationError(c, "labelIdentifiers", err.Error())
		}
	}
	return nil
}

// AssignBoxesRequest carries the selected boxes for assignment.
type AssignBoxesRequest struct {
	LabelIdentifiers []string `json:"labelIdentifiers"`
}

// AssignBoxes assigns the selected boxes to the shipment in the path.
func (h *ShipmentHandlers) AssignBoxes(c echo.Context) error {
	shipmentID := c.Param("id")

	var req AssignBoxesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := validateLabelIdentifiers(c, req.LabelIdentifiers); err != nil {
		return err
	}

	result, err := h.shipmentBoxService.AssignBoxes(c.Request().Context(), shipmentID, req.LabelIdentifiers)
	if err != nil {
		return sendGatewayError(c, err, "Failed to resolve the selected boxes")
	}
	return c.JSON(statusForOutcome(result.Outcome), result)
}

// UnassignBoxes removes the selected boxes from the shipment in the path.
func (h *ShipmentHandlers) UnassignBoxes(c echo.Context) error {
	shipmentID := c.Param("id")

	var req AssignBoxesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := validateLabelIdentifiers(c, req.LabelIdentifiers); err != nil {
		return err
	}

	result, err := h.shipmentBoxService.UnassignBoxes(c.Request().Context(), shipmentID, req.LabelIdentifiers)
	if err != nil {
		return sendGatewayError(c, err, "Failed to resolve the selected boxes")
	}
	return c.JSON(statusForOutcome(result.Outcome), result)
}

// ReassignBoxesRequest moves boxes from one shipment under preparation into
// the shipment in the path.
type ReassignBoxesRequest struct {
	FromShipmentID   string   `json:"fromShipmentId"`
	LabelIdentifiers []string `json:"labelIdentifiers"`
}

// ReassignBoxes composes unassign-then-assign with a single final
// notification.
func (h *ShipmentHandlers) ReassignBoxes(c echo.Context) error {
	toShipmentID := c.Param("id")

	var req ReassignBoxesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.FromShipmentID, "fromShipmentId"); err != nil {
		return common.SendValidationError(c, "fromShipmentId", err.Error())
	}
	if err := validateLabelIdentifiers(c, req.LabelIdentifiers); err != nil {
		return err
	}

	result, err := h.shipmentBoxService.ReassignBoxes(c.Request().Context(), req.FromShipmentID, toShipmentID, req.LabelIdentifiers)
	if err != nil {
		return sendGatewayError(c, err, "Failed to resolve the selected boxes")
	}
	return c.JSON(statusForOutcome(result.Outcome), result)
}
