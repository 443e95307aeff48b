package models

import "time"

type ShipmentState string

const (
	ShipmentStatePreparing ShipmentState = "Preparing"
	ShipmentStateSent      ShipmentState = "Sent"
	ShipmentStateReceiving ShipmentState = "Receiving"
	ShipmentStateCompleted ShipmentState = "Completed"
	ShipmentStateCanceled  ShipmentState = "Canceled"
)

type Shipment struct {
	ID         string           `json:"id"`
	State      ShipmentState    `json:"state"`
	SourceBase Base             `json:"sourceBase"`
	TargetBase Base             `json:"targetBase"`
	Details    []ShipmentDetail `json:"details"`
}

// ShipmentDetail is one historical association between a box and a shipment.
/// The details list is an append-only ledger: an association is closed by
// setting RemovedOn, never by removing the record.
type ShipmentDetail struct {
	ID             string     `json:"id"`
	Box            BoxRef     `json:"box"`
	SourceLocation *Location  `json:"sourceLocation"`
	SourceProduct  string     `json:"sourceProduct"`
	SourceQuantity int        `json:"sourceQuantity"`
	SourceSize     string     `json:"sourceSize"`
	RemovedOn      *time.Time `json:"removedOn"`
}

type BoxRef struct {
	LabelIdentifier string `json:"labelIdentifier"`
}

type Base struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsPreparing reports whether boxes can still be assigned to or unassigned
// from the shipment.
func (s *Shipment) IsPreparing() bool {
	return s.State == ShipmentStatePreparing
}

// ActiveDetailFor returns the single open association for the given box, or
// nil if the box is not currently in this shipment.
func (s *Shipment) ActiveDetailFor(labelIdentifier string) *ShipmentDetail {
	for i := range s.Details {
		d := &s.Details[i]
		if d.RemovedOn == nil && d.Box.LabelIdentifier == labelIdentifier {
			return d
		}
	}
	return nil
}
