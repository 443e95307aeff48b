package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"boxtribute/internal/gateway"
	"boxtribute/internal/models"
)

// Mock gateway, cache and audit repository

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) BoxesByLabel(ctx context.Context, labelIdentifiers []string) ([]models.Box, error) {
	args := m.Called(ctx, labelIdentifiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Box), args.Error(1)
}

func (m *MockGateway) ShipmentByID(ctx context.Context, id string) (*models.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockGateway) OpenShipments(ctx context.Context) ([]models.Shipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Shipment), args.Error(1)
}

func (m *MockGateway) TagsByID(ctx context.Context, ids []string) ([]models.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tag), args.Error(1)
}

func (m *MockGateway) AssignBoxesToShipment(ctx context.Context, shipmentID string, labelIdentifiers []string) (*gateway.BatchResult, error) {
	args := m.Called(ctx, shipmentID, labelIdentifiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.BatchResult), args.Error(1)
}

func (m *MockGateway) UnassignBoxesFromShipment(ctx context.Context, shipmentID string, labelIdentifiers []string) (*gateway.BatchResult, error) {
	args := m.Called(ctx, shipmentID, labelIdentifiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.BatchResult), args.Error(1)
}

func (m *MockGateway) MoveBoxesToLocation(ctx context.Context, labelIdentifiers []string, locationID string) (*gateway.BatchResult, error) {
	args := m.Called(ctx, labelIdentifiers, locationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.BatchResult), args.Error(1)
}

func (m *MockGateway) DeleteBoxes(ctx context.Context, labelIdentifiers []string) (*gateway.BatchResult, error) {
	args := m.Called(ctx, labelIdentifiers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.BatchResult), args.Error(1)
}

func (m *MockGateway) AssignTagsToBoxes(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*gateway.BatchResult, error) {
	args := m.Called(ctx, labelIdentifiers, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.BatchResult), args.Error(1)
}

func (m *MockGateway) UnassignTagsFromBoxes(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*gateway.BatchResult, error) {
	args := m.Called(ctx, labelIdentifiers, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.BatchResult), args.Error(1)
}

func (m *MockGateway) DeleteTags(ctx context.Context, tagIDs []string) (*gateway.TagBatchResult, error) {
	args := m.Called(ctx, tagIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TagBatchResult), args.Error(1)
}

type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetBox(ctx context.Context, labelIdentifier string) (*models.Box, error) {
	args := m.Called(ctx, labelIdentifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Box), args.Error(1)
}

func (m *MockCacheService) SetBox(ctx context.Context, box *models.Box, ttl time.Duration) error {
	args := m.Called(ctx, box, ttl)
	return args.Error(0)
}

func (m *MockCacheService) MergeBoxes(ctx context.Context, boxes []models.Box, ttl time.Duration) error {
	args := m.Called(ctx, boxes, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteBox(ctx context.Context, labelIdentifier string) error {
	args := m.Called(ctx, labelIdentifier)
	return args.Error(0)
}

func (m *MockCacheService) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Shipment), args.Error(1)
}

func (m *MockCacheService) SetShipment(ctx context.Context, shipment *models.Shipment, ttl time.Duration) error {
	args := m.Called(ctx, shipment, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteShipment(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Create(ctx context.Context, entry *models.BatchAuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.BatchAuditEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BatchAuditEntry), args.Error(1)
}

func (m *MockAuditRepo) List(ctx context.Context, filters *models.BatchAuditFilters) ([]*models.BatchAuditEntry, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BatchAuditEntry), args.Error(1)
}

func (m *MockAuditRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
