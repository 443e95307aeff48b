package gateway

import (
	"errors"
	"fmt"
)

// ErrorCode discriminates the typed error union returned by the remote
// service. Transport problems carry CodeNetwork.
type ErrorCode string

const (
	CodeInsufficientPermission ErrorCode = "INSUFFICIENT_PERMISSION"
	CodeUnauthorizedForBase    ErrorCode = "UNAUTHORIZED_FOR_BASE"
	CodeResourceDoesNotExist   ErrorCode = "RESOURCE_DOES_NOT_EXIST"
	CodeDeletedLocation        ErrorCode = "DELETED_LOCATION"
	CodeDeletedTag             ErrorCode = "DELETED_TAG"
	CodeDeletedBox             ErrorCode = "DELETED_BOX"
	CodeInvalidShipmentState   ErrorCode = "INVALID_SHIPMENT_STATE"
	CodeNetwork                ErrorCode = "NETWORK"
)

// Error is a structured failure from the remote service.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s: %s", e.Code, e.Message)
}

// NewError builds a typed gateway error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// CodeOf extracts the discriminator from an error returned by a Client.
// Anything that is not a typed gateway error is a transport failure.
func CodeOf(err error) ErrorCode {
	var gwErr *Error
	if errors.As(err, &gwErr) {
		return gwErr.Code
	}
	return CodeNetwork
}
