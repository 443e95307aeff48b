package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"boxtribute/internal/common"
	"boxtribute/internal/gateway"
	"boxtribute/internal/reconcile"
)

// statusForOutcome maps an operation outcome onto the HTTP status of the
// response. Partial failures are still 200: the body carries the per-item
// breakdown.
func statusForOutcome(outcome reconcile.Outcome) int {
	switch outcome {
	case reconcile.OutcomeSuccess, reconcile.OutcomePartialFail:
		return http.StatusOK
	case reconcile.OutcomeBadUserInput:
		return http.StatusBadRequest
	case reconcile.OutcomeNotAuthorized, reconcile.OutcomeUnauthorizedForBase:
		return http.StatusForbidden
	case reconcile.OutcomeResourceNotFound:
		return http.StatusNotFound
	case reconcile.OutcomeWrongTargetState, reconcile.OutcomeDeletedTarget:
		return http.StatusConflict
	case reconcile.OutcomeNetworkFail:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// statusForErrorCode maps a typed gateway error from the snapshot phase onto
// an HTTP status. Anything without a structured code is a transport failure.
func statusForErrorCode(code gateway.ErrorCode) int {
	switch code {
	case gateway.CodeInsufficientPermission, gateway.CodeUnauthorizedForBase:
		return http.StatusForbidden
	case gateway.CodeResourceDoesNotExist:
		return http.StatusNotFound
	case gateway.CodeDeletedLocation, gateway.CodeDeletedTag, gateway.CodeDeletedBox,
		gateway.CodeInvalidShipmentState:
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}

// sendGatewayError answers a coordinator error with the status and envelope
// matching its gateway error code.
func sendGatewayError(c echo.Context, err error, message string) error {
	code := gateway.CodeOf(err)
	return c.JSON(statusForErrorCode(code), common.CreateErrorResponse(string(code), message, nil))
}
