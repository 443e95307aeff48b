package common

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

const (
	ActorKey       contextKey = "actor"
	PermissionsKey contextKey = "permissions"
	BaseIDsKey     contextKey = "base_ids"
)

// GetActorFromContext extracts the authenticated actor (token subject or
// email) from the request context.
func GetActorFromContext(ctx context.Context) (string, bool) {
	actor, ok := ctx.Value(ActorKey).(string)
	return actor, ok
}

// GetPermissionsFromContext extracts the opaque permission strings carried
// by the token.
func GetPermissionsFromContext(ctx context.Context) ([]string, bool) {
	permissions, ok := ctx.Value(PermissionsKey).([]string)
	return permissions, ok
}

// GetBaseIDsFromContext extracts the base ids the actor may act on.
func GetBaseIDsFromContext(ctx context.Context) ([]string, bool) {
	baseIDs, ok := ctx.Value(BaseIDsKey).([]string)
	return baseIDs, ok
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendUnauthorizedError sends an unauthorized error response
func SendUnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, CreateErrorResponse("UNAUTHORIZED", "Unauthorized access", nil))
}

var labelIdentifierPattern = regexp.MustCompile(`^[0-9]{6,12}$`)

/// ValidateLabelIdentifier validates box label identifiers: digits only,
// printed labels carry between 6 and 12 of them.
func ValidateLabelIdentifier(label, fieldName string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	if !labelIdentifierPattern.MatchString(label) {
		return fmt.Errorf("%s has invalid label format", fieldName)
	}
	return nil
}

// ValidateRequiredString validates required string fields
func ValidateRequiredString(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}
