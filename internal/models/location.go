package models

import "time"

// Location is a place boxes can be stored at a base. DefaultBoxState is the
// state a box takes on when moved there; it is never a shipment-exclusive
// state.
type Location struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Base            Base       `json:"base"`
	DefaultBoxState BoxState   `json:"defaultBoxState"`
	DeletedOn       *time.Time `json:"deletedOn"`
}

func (l *Location) IsDeleted() bool {
	return l.DeletedOn != nil
}

// BoxStateOnArrival returns the state a box ends up in after being moved to
// this location. Only InStock, Lost and Scrap are valid location defaults;
// anything else falls back to InStock.
func (l *Location) BoxStateOnArrival() BoxState {
	switch l.DefaultBoxState {
	case BoxStateInStock, BoxStateLost, BoxStateScrap:
		return l.DefaultBoxState
	default:
		return BoxStateInStock
	}
}
