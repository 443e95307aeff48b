package handlers

import (
	"github.com/labstack/echo/v4"

	"boxtribute/internal/common"
	"boxtribute/internal/services"
)

// TagHandlers handles tag assignment and deletion HTTP requests.
type TagHandlers struct {
	tagService services.TagService
}

func NewTagHandlers(tagService services.TagService) *TagHandlers {
	return &TagHandlers{tagService: tagService}
}

// TagBoxesRequest carries the selected boxes and tags.
type TagBoxesRequest struct {
	LabelIdentifiers []string `json:"labelIdentifiers"`
	TagIDs           []string `json:"tagIds"`
}

// AssignTags assigns the tags to the selected boxes.
func (h *TagHandlers) AssignTags(c echo.Context) error {
	var req TagBoxesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if len(req.TagIDs) == 0 {
		return common.SendValidationError(c, "tagIds", "tagIds is required")
	}
	if err := validateLabelIdentifiers(c, req.LabelIdentifiers); err != nil {
		return err
	}

	result, err := h.tagService.AssignTags(c.Request().Context(), req.LabelIdentifiers, req.TagIDs)
	if err != nil {
		return sendGatewayError(c, err, "Failed to resolve the selected boxes")
	}
	return c.JSON(statusForOutcome(result.Outcome), result)
}

// UnassignTags removes the tags from the selected boxes.
func (h *TagHandlers) UnassignTags(c echo.Context) error {
	var req TagBoxesRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}
	if len(req.TagIDs) == 0 {
		return common.SendValidationError(c, "tagIds", "tagIds is required")
	}
	if err := validateLabelIdentifiers(c, req.LabelIdentifiers); err != nil {
		return err
	}

	result, err := h.tagService.UnassignTags(c.Request().Context(), req.LabelIdentifiers, req.TagIDs)
	if err != nil {
		return sendGatewayError(c, err, "Failed to resolve the selected boxes")
	}
	return c.JSON(statusForOutcome(result.Outcome), result)
}

// DeleteTagsRequest carries the tags selected for deletion.
type DeleteTagsRequest struct {
	TagIDs []string `json:"tagIds"`
}

// DeleteTags soft-deletes the selected tags.
func (h *TagHandlers) DeleteTags(c echo.Context) error {
	var req DeleteTagsRequest
	if err := c.Bind(&req); err != nil {
		return common.SendClientError(c, "Invalid request format")
	}

	result, err := h.tagService.DeleteTags(c.Request().Context(), req.TagIDs)
	if err != nil {
		return sendGatewayError(c, err, "Failed to resolve the selected tags")
	}
	return c.JSON(statusForOutcome(result.Outcome), result)
}
