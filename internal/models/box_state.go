package models

// legalTransitions is the box lifecycle transition table. Soft deletion is
// not a state transition; it is guarded separately by Box.IsDeleted.
var legalTransitions = map[BoxState][]BoxState{
	BoxStateInStock:           {BoxStateMarkedForShipment, BoxStateLost, BoxStateScrap},
	BoxStateMarkedForShipment: {BoxStateInStock, BoxStateInTransit},
	BoxStateInTransit:         {BoxStateReceiving},
	BoxStateReceiving:         {BoxStateInStock, BoxStateNotDelivered},
	BoxStateLost:              {BoxStateInStock},
	BoxStateScrap:             {BoxStateInStock},
	BoxStateNotDelivered:      {},
}

// CanTransition reports whether moving a box from one state to another is a
// legal lifecycle transition.
func CanTransition(from, to BoxState) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// nonMovableStates lists the states from which a box may not be moved to a
// location. Shipment-exclusive states are left to shipment transitions and
// the terminal states require an explicit toggle first.
var nonMovableStates = map[BoxState]bool{
	BoxStateLost:              true,
	BoxStateScrap:             true,
	BoxStateNotDelivered:      true,
	BoxStateMarkedForShipment: true,
	BoxStateInTransit:         true,
	BoxStateReceiving:         true,
}

// CanAssignToShipment is the client-side precondition for assigning a box to
// a shipment under preparation.
func (b *Box) CanAssignToShipment() bool {
	return !b.IsDeleted() && b.State == BoxStateInStock
}

// CanUnassignFromShipment is the client-side precondition for removing a box
// from the given shipment while it is still being prepared.
func (b *Box) CanUnassignFromShipment(shipmentID string) bool {
	return !b.IsDeleted() && b.State == BoxStateMarkedForShipment && b.AssignedToShipment(shipmentID)
}

// CanMoveToLocation is the client-side precondition for a location move.
func (b *Box) CanMoveToLocation() bool {
	return !b.IsDeleted() && !nonMovableStates[b.State]
}

// CanDelete is the client-side precondition for soft deletion. The remote
// service additionally rejects boxes in shipment-exclusive states; those
// come back as invalid identifiers.
func (b *Box) CanDelete() bool {
	return !b.IsDeleted()
}
