package services

import (
	"context"
	"log"

	"boxtribute/internal/caching"
	"boxtribute/internal/gateway"
	"boxtribute/internal/models"
)

// SnapshotResolver turns user-selected label identifiers into current box
// snapshots, cache-aside. Cache errors never fail the resolution; a gateway
// query failure does, since eligibility cannot be judged without snapshots.
type SnapshotResolver struct {
	gw    gateway.Client
	cache caching.CacheService
}

func NewSnapshotResolver(gw gateway.Client, cache caching.CacheService) *SnapshotResolver {
	return &SnapshotResolver{gw: gw, cache: cache}
}

// ResolveBoxes returns the snapshots for the requested labels, in request
// order with duplicates removed, plus the labels that could not be resolved.
func (r *SnapshotResolver) ResolveBoxes(ctx context.Context, labelIdentifiers []string) ([]models.Box, []string, error) {
	seen := make(map[string]bool, len(labelIdentifiers))
	labels := make([]string, 0, len(labelIdentifiers))
	for _, label := range labelIdentifiers {
		if !seen[label] {
			seen[label] = true
			labels = append(labels, label)
		}
	}

	found := make(map[string]models.Box, len(labels))
	var misses []string
	for _, label := range labels {
		box, err := r.cache.GetBox(ctx, label)
		if err != nil {
			log.Printf("Cache error for box %s: %v", label, err)
		}
		if box != nil {
			found[label] = *box
			continue
		}
		misses = append(misses, label)
	}

	if len(misses) > 0 {
		fetched, err := r.gw.BoxesByLabel(ctx, misses)
		if err != nil {
			return nil, nil, err
		}
		for _, box := range fetched {
			found[box.LabelIdentifier] = box
			if err := r.cache.SetBox(ctx, &box, boxCacheTTL); err != nil {
				log.Printf("Failed to cache box %s: %v", box.LabelIdentifier, err)
			}
		}
	}

	boxes := make([]models.Box, 0, len(labels))
	var unresolved []string
	for _, label := range labels {
		if box, ok := found[label]; ok {
			boxes = append(boxes, box)
		} else {
			unresolved = append(unresolved, label)
		}
	}
	return boxes, unresolved, nil
}

// ResolveShipment returns the current snapshot of a shipment, cache-aside.
// The background refresh job keeps shipments under preparation warm, so this
// usually answers without a remote round trip.
func (r *SnapshotResolver) ResolveShipment(ctx context.Context, id string) (*models.Shipment, error) {
	shipment, err := r.cache.GetShipment(ctx, id)
	if err != nil {
		log.Printf("Cache error for shipment %s: %v", id, err)
	}
	if shipment != nil {
		return shipment, nil
	}

	shipment, err = r.gw.ShipmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetShipment(ctx, shipment, shipmentCacheTTL); err != nil {
		log.Printf("Failed to cache shipment %s: %v", id, err)
	}
	return shipment, nil
}
