package services

import (
	"context"

	"boxtribute/internal/caching"
	"boxtribute/internal/gateway"
	"boxtribute/internal/models"
	"boxtribute/internal/reconcile"
	"boxtribute/internal/repositories"
)

// BoxService coordinates location moves and soft deletion of boxes.
type BoxService interface {
	MoveBoxes(ctx context.Context, labelIdentifiers []string, locationID string) (*OperationResult, error)
	DeleteBoxes(ctx context.Context, labelIdentifiers []string) (*OperationResult, error)
}

type boxService struct {
	coordinatorBase
	gw       gateway.Client
	resolver *SnapshotResolver
}

func NewBoxService(gw gateway.Client, cache caching.CacheService, auditRepo repositories.BatchAuditRepository) BoxService {
	return &boxService{
		coordinatorBase: coordinatorBase{cache: cache, auditRepo: auditRepo},
		gw:              gw,
		resolver:        NewSnapshotResolver(gw, cache),
	}
}

var moveFailureMessages = map[reconcile.Outcome]string{
	reconcile.OutcomeBadUserInput:        "No Boxes are eligible to be moved.",
	reconcile.OutcomeNotAuthorized:       "You don't have the permission to move these Boxes.",
	reconcile.OutcomeUnauthorizedForBase: "You don't have access to the base of this location.",
	reconcile.OutcomeResourceNotFound:    "The target location does not exist.",
	reconcile.OutcomeDeletedTarget:       "The target location was deleted.",
	reconcile.OutcomeNetworkFail:         "Could not reach the server. Please try again.",
	reconcile.OutcomeFail:                "The Boxes could not be moved to the location.",
}

var deleteBoxesFailureMessages = map[reconcile.Outcome]string{
	reconcile.OutcomeBadUserInput:  "No Boxes are eligible for deletion.",
	reconcile.OutcomeNotAuthorized: "You don't have the permission to delete these Boxes.",
	reconcile.OutcomeNetworkFail:   "Could not reach the server. Please try again.",
	reconcile.OutcomeFail:          "The Boxes could not be deleted.",
}

func (s *boxService) MoveBoxes(ctx context.Context, labelIdentifiers []string, locationID string) (*OperationResult, error) {
	boxes, unresolved, err := s.resolver.ResolveBoxes(ctx, labelIdentifiers)
	if err != nil {
		return nil, err
	}

	var updated []models.Box
	res := reconcile.Run(ctx, boxes, reconcile.Op[models.Box]{
		Key:      boxKeyFn,
		Eligible: func(b models.Box) bool { return b.CanMoveToLocation() },
		Execute: func(ctx context.Context, keys []string) (*reconcile.CallResult, error) {
			payload, err := s.gw.MoveBoxesToLocation(ctx, keys, locationID)
			if err != nil {
				return nil, err
			}
			updated = payload.UpdatedBoxes
			call := &reconcile.CallResult{InvalidKeys: payload.InvalidIdentifiers}
			for _, b := range payload.UpdatedBoxes {
				if b.Location != nil && b.Location.ID == locationID && b.State == b.Location.BoxStateOnArrival() {
					call.SucceededKeys = append(call.SucceededKeys, b.LabelIdentifier)
				}
			}
			return call, nil
		},
	})

	s.mergeBoxCache(ctx, res.Outcome, updated)
	out := operationResult(res, boxKeyFn, len(labelIdentifiers), unresolved)
	s.dropBoxes(ctx, out.Invalid)
	s.recordAudit(ctx, "move_boxes_to_location", &locationID, labelIdentifiers, out)
	if ctx.Err() == nil {
		out.buildNotification("Box", "moved to the location", moveFailureMessages)
	}
	return out, nil
}

func (s *boxService) DeleteBoxes(ctx context.Context, labelIdentifiers []string) (*OperationResult, error) {
	boxes, unresolved, err := s.resolver.ResolveBoxes(ctx, labelIdentifiers)
	if err != nil {
		return nil, err
	}

	var updated []models.Box
	res := reconcile.Run(ctx, boxes, reconcile.Op[models.Box]{
		Key:      boxKeyFn,
		Eligible: func(b models.Box) bool { return b.CanDelete() },
		Execute: func(ctx context.Context, keys []string) (*reconcile.CallResult, error) {
			payload, err := s.gw.DeleteBoxes(ctx, keys)
			if err != nil {
				return nil, err
			}
			updated = payload.UpdatedBoxes
			// The server's invalid list is authoritative for boxes it could
			// not process at all (already gone, wrong base).
			call := &reconcile.CallResult{InvalidKeys: payload.InvalidIdentifiers}
			for _, b := range payload.UpdatedBoxes {
				if b.IsDeleted() {
					call.SucceededKeys = append(call.SucceededKeys, b.LabelIdentifier)
				}
			}
			return call, nil
		},
	})

	s.mergeBoxCache(ctx, res.Outcome, updated)
	out := operationResult(res, boxKeyFn, len(labelIdentifiers), unresolved)
	s.dropBoxes(ctx, out.Invalid)
	s.recordAudit(ctx, "delete_boxes", nil, labelIdentifiers, out)
	if ctx.Err() == nil {
		out.buildNotification("Box", "deleted", deleteBoxesFailureMessages)
	}
	return out, nil
}
