package models

import (
	"fmt"
	"math"
	"time"
)

// BoxState is the lifecycle state of a box. The shipment-exclusive states
// (MarkedForShipment, InTransit, Receiving) are only ever entered through
// shipment transitions, never through a location move.
type BoxState string

const (
	BoxStateInStock           BoxState = "InStock"
	BoxStateMarkedForShipment BoxState = "MarkedForShipment"
	BoxStateInTransit         BoxState = "InTransit"
	BoxStateReceiving         BoxState = "Receiving"
	BoxStateLost              BoxState = "Lost"
	BoxStateScrap             BoxState = "Scrap"
	BoxStateNotDelivered      BoxState = "NotDelivered"
)

// MaxTotalItems bounds the sum of numberOfItems across a batch request.
const MaxTotalItems = math.MaxInt32

type Box struct {
	LabelIdentifier string             `json:"labelIdentifier"`
	State           BoxState           `json:"state"`
	DeletedOn       *time.Time         `json:"deletedOn"`
	Location        *Location          `json:"location"`
	ShipmentDetail  *BoxShipmentDetail `json:"shipmentDetail"`
	NumberOfItems   int                `json:"numberOfItems"`
	Tags            []Tag              `json:"tags"`
}

// BoxShipmentDetail is the box-side view of its active shipment association.
type BoxShipmentDetail struct {
	ID        string      `json:"id"`
	Shipment  ShipmentRef `json:"shipment"`
	RemovedOn *time.Time  `json:"removedOn"`
}

type ShipmentRef struct {
	ID    string        `json:"id"`
	State ShipmentState `json:"state"`
}

// IsDeleted reports whether the box carries the soft-delete marker. A deleted
// box is immutable regardless of its state.
func (b *Box) IsDeleted() bool {
	return b.DeletedOn != nil
}

// InShipment reports whether the box currently belongs to an open shipment
// association, i.e. a shipment detail exists and has not been closed.
func (b *Box) InShipment() bool {
	return b.ShipmentDetail != nil && b.ShipmentDetail.RemovedOn == nil
}

// AssignedToShipment reports whether the box's open shipment association, if
// any, points at the given shipment.
func (b *Box) AssignedToShipment(shipmentID string) bool {
	return b.InShipment() && b.ShipmentDetail.Shipment.ID == shipmentID
}

// HasTag reports whether the box currently carries the given tag.
func (b *Box) HasTag(tagID string) bool {
	for _, t := range b.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

// ValidateItemsTotal rejects batches whose combined item count would not fit
// in a signed 32-bit integer.
func ValidateItemsTotal(boxes []Box) error {
	var total int64
	for _, b := range boxes {
		total += int64(b.NumberOfItems)
		if total > MaxTotalItems {
			return fmt.Errorf("total number of items exceeds %d", MaxTotalItems)
		}
	}
	return nil
}
