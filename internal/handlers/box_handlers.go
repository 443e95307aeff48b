package handlers

import (
	"github.com/labstack/echo/v4"

	"boxtribute/internal/common"
	"boxtribute/internal/services"
)

// BoxHandlers handles box move and deletion HTTP requests.
type BoxHandlers struct {
	boxService services.BoxService
}

func NewBoxHandlers(boxService services.BoxService) *BoxHandlers {
	return &BoxHandlers{boxService: boxService}
}

// MoveBoxesRequest carries the selected boxes and the target location.
type MoveBoxesRequest struct {
	LabelIdentifiers []string `json:"labelIdentifiers"`
	LocationID       string   `json:"locationId"`
}

// MoveBoxes moves the selected boxes to the given location.
func (h *BoxHandlers) MoveBoxes(c echo.Context) error {
	var req MoveBoxesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := common.ValidateRequiredString(req.LocationID, "locationId"); err != nil {
		return common.SendValidationError(c, "locationId", err.Error())
	}
	if err := validateLabelIdentifiers(c, req.LabelIdentifiers); err != nil {
		return err
	}

	result, err := h.boxService.MoveBoxes(c.Request().Context(), req.LabelIdentifiers, req.LocationID)
	if err != nil {
		return sendGatewayError(c, err, "Failed to resolve the selected boxes")
	}
	return c.JSON(statusForOutcome(result.Outcome), result)
}

// DeleteBoxesRequest carries the selected boxes for soft deletion.
type DeleteBoxesRequest struct {
	LabelIdentifiers []string `json:"labelIdentifiers"`
}

// DeleteBoxes soft-deletes the selected boxes.
func (h *BoxHandlers) DeleteBoxes(c echo.Context) error {
	var req DeleteBoxesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if err := validateLabelIdentifiers(c, req.LabelIdentifiers); err != nil {
		return err
	}

	result, err := h.boxService.DeleteBoxes(c.Request().Context(), req.LabelIdentifiers)
	if err != nil {
		return sendGatewayError(c, err, "Failed to resolve the selected boxes")
	}
	return c.JSON(statusForOutcome(result.Outcome), result)
}
