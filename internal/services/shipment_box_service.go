package services

import (
	"context"

	"boxtribute/internal/caching"
	"boxtribute/internal/common"
	"boxtribute/internal/gateway"
	"boxtribute/internal/models"
	"boxtribute/internal/notify"
	"boxtribute/internal/reconcile"
	"boxtribute/internal/repositories"
)

// ShipmentBoxService coordinates assigning boxes to and unassigning boxes
// from shipments under preparation, including the composed cross-shipment
// reassignment.
type ShipmentBoxService interface {
	AssignBoxes(ctx context.Context, shipmentID string, labelIdentifiers []string) (*OperationResult, error)
	UnassignBoxes(ctx context.Context, shipmentID string, labelIdentifiers []string) (*OperationResult, error)
	ReassignBoxes(ctx context.Context, fromShipmentID, toShipmentID string, labelIdentifiers []string) (*OperationResult, error)
}

type shipmentBoxService struct {
	coordinatorBase
	gw       gateway.Client
	resolver *SnapshotResolver
}

func NewShipmentBoxService(gw gateway.Client, cache caching.CacheService, auditRepo repositories.BatchAuditRepository) ShipmentBoxService {
	return &shipmentBoxService{
		coordinatorBase: coordinatorBase{cache: cache, auditRepo: auditRepo},
		gw:              gw,
		resolver:        NewSnapshotResolver(gw, cache),
	}
}

var assignFailureMessages = map[reconcile.Outcome]string{
	reconcile.OutcomeBadUserInput:        "No Boxes are eligible for assignment.",
	reconcile.OutcomeNotAuthorized:       "You don't have the permission to assign Boxes to this shipment.",
	reconcile.OutcomeUnauthorizedForBase: "You don't have access to the base of this shipment.",
	reconcile.OutcomeWrongTargetState:    "The shipment is no longer in the Preparing state.",
	reconcile.OutcomeResourceNotFound:    "The shipment does not exist.",
	reconcile.OutcomeNetworkFail:         "Could not reach the server. Please try again.",
	reconcile.OutcomeFail:                "The Boxes could not be assigned to the shipment.",
}

var unassignFailureMessages = map[reconcile.Outcome]string{
	reconcile.OutcomeBadUserInput:        "No Boxes are eligible for unassignment.",
	reconcile.OutcomeNotAuthorized:       "You don't have the permission to unassign Boxes from this shipment.",
	reconcile.OutcomeUnauthorizedForBase: "You don't have access to the base of this shipment.",
	reconcile.OutcomeWrongTargetState:    "The shipment is no longer in the Preparing state.",
	reconcile.OutcomeResourceNotFound:    "The shipment does not exist.",
	reconcile.OutcomeNetworkFail:         "Could not reach the server. Please try again.",
	reconcile.OutcomeFail:                "The Boxes could not be unassigned from the shipment.",
}

// checkShipment resolves the target shipment and performs the local
// pre-checks: a missing shipment, one past the Preparing state, or one whose
// source base the actor cannot act on fails the whole batch before any box
// is touched. A non-nil OperationResult means the pre-check failed.
func (s *shipmentBoxService) checkShipment(ctx context.Context, shipmentID string, requestedCount int) (*models.Shipment, *OperationResult, error) {
	shipment, err := s.resolver.ResolveShipment(ctx, shipmentID)
	if err != nil {
		if gateway.CodeOf(err) == gateway.CodeResourceDoesNotExist {
			return nil, &OperationResult{
				Outcome:        reconcile.OutcomeResourceNotFound,
				RequestedCount: requestedCount,
			}, nil
		}
		return nil, nil, err
	}
	if !shipment.IsPreparing() {
		return nil, &OperationResult{
			Outcome:        reconcile.OutcomeWrongTargetState,
			RequestedCount: requestedCount,
		}, nil
	}
	if baseIDs, ok := common.GetBaseIDsFromContext(ctx); ok && !containsBase(baseIDs, shipment.SourceBase.ID) {
		return nil, &OperationResult{
			Outcome:        reconcile.OutcomeUnauthorizedForBase,
			RequestedCount: requestedCount,
		}, nil
	}
	return shipment, nil, nil
}

func containsBase(baseIDs []string, id string) bool {
	for _, b := range baseIDs {
		if b == id {
			return true
		}
	}
	return false
}

func (s *shipmentBoxService) AssignBoxes(ctx context.Context, shipmentID string, labelIdentifiers []string) (*OperationResult, error) {
	return s.assignBoxes(ctx, shipmentID, labelIdentifiers, false)
}

func (s *shipmentBoxService) assignBoxes(ctx context.Context, shipmentID string, labelIdentifiers []string, silent bool) (*OperationResult, error) {
	_, failed, err := s.checkShipment(ctx, shipmentID, len(labelIdentifiers))
	if err != nil {
		return nil, err
	}
	if failed != nil {
		if !silent && ctx.Err() == nil {
			failed.buildNotification("Box", "assigned to the shipment", assignFailureMessages)
		}
		return failed, nil
	}

	boxes, unresolved, err := s.resolver.ResolveBoxes(ctx, labelIdentifiers)
	if err != nil {
		return nil, err
	}

	// The item bound applies to what would actually be submitted, so
	// ineligible boxes do not count against it.
	eligible := make([]models.Box, 0, len(boxes))
	for _, b := range boxes {
		if b.CanAssignToShipment() {
			eligible = append(eligible, b)
		}
	}
	if err := models.ValidateItemsTotal(eligible); err != nil {
		out := &OperationResult{
			Outcome:        reconcile.OutcomeBadUserInput,
			RequestedCount: len(labelIdentifiers),
		}
		if !silent {
			out.Notification = notify.Failure(err.Error())
		}
		return out, nil
	}

	var updated []models.Box
	res := reconcile.Run(ctx, boxes, reconcile.Op[models.Box]{
		Key:      boxKeyFn,
		Eligible: func(b models.Box) bool { return b.CanAssignToShipment() },
		Execute: func(ctx context.Context, keys []string) (*reconcile.CallResult, error) {
			payload, err := s.gw.AssignBoxesToShipment(ctx, shipmentID, keys)
			if err != nil {
				return nil, err
			}
			updated = payload.UpdatedBoxes
			call := &reconcile.CallResult{InvalidKeys: payload.InvalidIdentifiers}
			for _, b := range payload.UpdatedBoxes {
				if b.State == models.BoxStateMarkedForShipment && b.AssignedToShipment(shipmentID) {
					call.SucceededKeys = append(call.SucceededKeys, b.LabelIdentifier)
				}
			}
			return call, nil
		},
	})

	s.mergeBoxCache(ctx, res.Outcome, updated, shipmentID)
	out := operationResult(res, boxKeyFn, len(labelIdentifiers), unresolved)
	s.dropBoxes(ctx, out.Invalid)
	s.recordAudit(ctx, "assign_boxes_to_shipment", &shipmentID, labelIdentifiers, out)
	if !silent && ctx.Err() == nil {
		out.buildNotification("Box", "assigned to the shipment", assignFailureMessages)
	}
	return out, nil
}

func (s *shipmentBoxService) UnassignBoxes(ctx context.Context, shipmentID string, labelIdentifiers []string) (*OperationResult, error) {
	out, err := s.unassignBoxes(ctx, shipmentID, labelIdentifiers)
	if err != nil {
		return nil, err
	}
	if ctx.Err() == nil {
		out.buildNotification("Box", "unassigned from the shipment", unassignFailureMessages)
	}
	return out, nil
}

func (s *shipmentBoxService) unassignBoxes(ctx context.Context, shipmentID string, labelIdentifiers []string) (*OperationResult, error) {
	shipment, failed, err := s.checkShipment(ctx, shipmentID, len(labelIdentifiers))
	if err != nil {
		return nil, err
	}
	if failed != nil {
		return failed, nil
	}

	boxes, unresolved, err := s.resolver.ResolveBoxes(ctx, labelIdentifiers)
	if err != nil {
		return nil, err
	}

	var updated []models.Box
	res := reconcile.Run(ctx, boxes, reconcile.Op[models.Box]{
		Key: boxKeyFn,
		// Both sides of the association must agree: the box claims the
		// shipment and the shipment's ledger carries an open detail for it.
		Eligible: func(b models.Box) bool {
			return b.CanUnassignFromShipment(shipmentID) && shipment.ActiveDetailFor(b.LabelIdentifier) != nil
		},
		Execute: func(ctx context.Context, keys []string) (*reconcile.CallResult, error) {
			payload, err := s.gw.UnassignBoxesFromShipment(ctx, shipmentID, keys)
			if err != nil {
				return nil, err
			}
			updated = payload.UpdatedBoxes
			call := &reconcile.CallResult{InvalidKeys: payload.InvalidIdentifiers}
			for _, b := range payload.UpdatedBoxes {
				if !b.AssignedToShipment(shipmentID) {
					call.SucceededKeys = append(call.SucceededKeys, b.LabelIdentifier)
				}
			}
			return call, nil
		},
	})

	s.mergeBoxCache(ctx, res.Outcome, updated, shipmentID)
	out := operationResult(res, boxKeyFn, len(labelIdentifiers), unresolved)
	s.dropBoxes(ctx, out.Invalid)
	s.recordAudit(ctx, "unassign_boxes_from_shipment", &shipmentID, labelIdentifiers, out)
	return out, nil
}

// ReassignBoxes moves boxes from one shipment under preparation straight
// into another: unassign, then assign, sequentially. The assign step is only
// issued when the unassign step fully succeeded; otherwise the unassign
// failure is what gets reported. Intermediate notifications are suppressed.
func (s *shipmentBoxService) ReassignBoxes(ctx context.Context, fromShipmentID, toShipmentID string, labelIdentifiers []string) (*OperationResult, error) {
	unassigned, err := s.unassignBoxes(ctx, fromShipmentID, labelIdentifiers)
	if err != nil {
		return nil, err
	}
	if unassigned.Outcome != reconcile.OutcomeSuccess {
		if ctx.Err() == nil {
			unassigned.buildNotification("Box", "unassigned from the shipment", unassignFailureMessages)
		}
		return unassigned, nil
	}
	return s.assignBoxes(ctx, toShipmentID, labelIdentifiers, false)
}

func boxKeyFn(b models.Box) string { return b.LabelIdentifier }
