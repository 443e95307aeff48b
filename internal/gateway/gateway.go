package gateway

import (
	"context"

	"boxtribute/internal/models"
)

// BatchResult is the success channel of every box batch mutation: the
// authoritative after-states of whatever the server changed, plus the
// identifiers it rejected outright. Everything else has to be inferred by
// diffing against the request.
type BatchResult struct {
	UpdatedBoxes       []models.Box
	InvalidIdentifiers []string
	// TagErrors is only populated by tag unassignment: a single failing tag
	// can block the operation for boxes that are otherwise eligible.
	TagErrors []TagError
}

// TagBatchResult is the success channel of tag batch mutations.
type TagBatchResult struct {
	UpdatedTags        []models.Tag
	InvalidIdentifiers []string
}

// TagError reports a per-tag failure, orthogonal to per-box invalidity.
type TagError struct {
	TagID   string `json:"id"`
	Message string `json:"error"`
}

// Client is the remote mutation gateway. Each mutation submits exactly one
// batch call and returns either a result payload or an error from the typed
// union in errors.go; the gateway never decides why an item was rejected.
type Client interface {
	// Snapshot queries.
	BoxesByLabel(ctx context.Context, labelIdentifiers []string) ([]models.Box, error)
	ShipmentByID(ctx context.Context, id string) (*models.Shipment, error)
	OpenShipments(ctx context.Context) ([]models.Shipment, error)
	TagsByID(ctx context.Context, ids []string) ([]models.Tag, error)

	// Batch mutations.
	AssignBoxesToShipment(ctx context.Context, shipmentID string, labelIdentifiers []string) (*BatchResult, error)
	UnassignBoxesFromShipment(ctx context.Context, shipmentID string, labelIdentifiers []string) (*BatchResult, error)
	MoveBoxesToLocation(ctx context.Context, labelIdentifiers []string, locationID string) (*BatchResult, error)
	DeleteBoxes(ctx context.Context, labelIdentifiers []string) (*BatchResult, error)
	AssignTagsToBoxes(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*BatchResult, error)
	UnassignTagsFromBoxes(ctx context.Context, labelIdentifiers []string, tagIDs []string) (*BatchResult, error)
	DeleteTags(ctx context.Context, tagIDs []string) (*TagBatchResult, error)
}
