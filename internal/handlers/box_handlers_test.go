package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"boxtribute/internal/gateway"
	"boxtribute/internal/notify"
	"boxtribute/internal/reconcile"
	"boxtribute/internal/services"
)

type MockBoxService struct {
	mock.Mock
}

func (m *MockBoxService) MoveBoxes(ctx context.Context, labelIdentifiers []string, locationID string) (*services.OperationResult, error) {
	args := m.Called(ctx, labelIdentifiers, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OperationResult), args.Error(1)
}

func (m *MockBoxService) DeleteBoxes(ctx context.Context, labelIdentifiers []string) (*services.OperationResult, error) {
	args := m.Called(ctx, labelIdentifiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.OperationResult), args.Error(1)
}

func postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestMoveBoxes_OutcomeStatus(t *testing.T) {
	svc := new(MockBoxService)
	svc.On("MoveBoxes", mock.Anything, []string{"123456"}, "10").
		Return(&services.OperationResult{
			Outcome:      reconcile.OutcomeSuccess,
			Succeeded:    []string{"123456"},
			Notification: notify.BatchSuccess(1, "Box", "moved to the location"),
		}, nil)
	h := NewBoxHandlers(svc)

	c, rec := postJSON(`{"labelIdentifiers":["123456"],"locationId":"10"}`)
	err := h.MoveBoxes(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "successfully moved")
}

func TestMoveBoxes_GatewayErrorStatus(t *testing.T) {
	svc := new(MockBoxService)
	svc.On("MoveBoxes", mock.Anything, []string{"123456"}, "10").
		Return(nil, gateway.NewError(gateway.CodeInsufficientPermission, "forbidden"))
	h := NewBoxHandlers(svc)

	c, rec := postJSON(`{"labelIdentifiers":["123456"],"locationId":"10"}`)
	err := h.MoveBoxes(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), string(gateway.CodeInsufficientPermission))
}

func TestMoveBoxes_TransportErrorStatus(t *testing.T) {
	svc := new(MockBoxService)
	svc.On("MoveBoxes", mock.Anything, []string{"123456"}, "10").
		Return(nil, assert.AnError)
	h := NewBoxHandlers(svc)

	c, rec := postJSON(`{"labelIdentifiers":["123456"],"locationId":"10"}`)
	err := h.MoveBoxes(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestMoveBoxes_InvalidLabel(t *testing.T) {
	svc := new(MockBoxService)
	h := NewBoxHandlers(svc)

	c, rec := postJSON(`{"labelIdentifiers":["abc123"],"locationId":"10"}`)
	err := h.MoveBoxes(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
	svc.AssertNotCalled(t, "MoveBoxes", mock.Anything, mock.Anything, mock.Anything)
}

func TestMoveBoxes_MissingLocation(t *testing.T) {
	svc := new(MockBoxService)
	h := NewBoxHandlers(svc)

	c, rec := postJSON(`{"labelIdentifiers":["123456"]}`)
	err := h.MoveBoxes(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "locationId is required")
}

func TestDeleteBoxes_GatewayErrorStatus(t *testing.T) {
	svc := new(MockBoxService)
	svc.On("DeleteBoxes", mock.Anything, []string{"123456"}).
		Return(nil, gateway.NewError(gateway.CodeResourceDoesNotExist, "box not found"))
	h := NewBoxHandlers(svc)

	c, rec := postJSON(`{"labelIdentifiers":["123456"]}`)
	err := h.DeleteBoxes(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), string(gateway.CodeResourceDoesNotExist))
}
