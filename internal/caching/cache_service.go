package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"boxtribute/internal/models"
)

// CacheService is the local snapshot store of remote objects, keyed by
// natural id. It is only ever written from a server response: MergeBoxes is
// called after a successful or partially successful batch call, never
// speculatively before it.
type CacheService interface {
	GetBox(ctx context.Context, labelIdentifier string) (*models.Box, error)
	SetBox(ctx context.Context, box *models.Box, ttl time.Duration) error
	MergeBoxes(ctx context.Context, boxes []models.Box, ttl time.Duration) error
	DeleteBox(ctx context.Context, labelIdentifier string) error

	GetShipment(ctx context.Context, id string) (*models.Shipment, error)
	SetShipment(ctx context.Context, shipment *models.Shipment, ttl time.Duration) error
	DeleteShipment(ctx context.Context, id string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// and rediss:// style addresses as well as plain host:port.
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})
	return &redisCacheService{client: client}
}

func boxKey(labelIdentifier string) string {
	return fmt.Sprintf("boxtribute:box:%s", labelIdentifier)
}

func shipmentKey(id string) string {
	return fmt.Sprintf("boxtribute:shipment:%s", id)
}

func (r *redisCacheService) GetBox(ctx context.Context, labelIdentifier string) (*models.Box, error) {
	data, err := r.client.Get(ctx, boxKey(labelIdentifier)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var box models.Box
	if err := json.Unmarshal(data, &box); err != nil {
		return nil, err
	}
	return &box, nil
}

func (r *redisCacheService) SetBox(ctx context.Context, box *models.Box, ttl time.Duration) error {
	data, err := json.Marshal(box)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, boxKey(box.LabelIdentifier), data, ttl).Err()
}

// MergeBoxes writes the authoritative after-states of a batch response into
// the cache in one round trip.
func (r *redisCacheService) MergeBoxes(ctx context.Context, boxes []models.Box, ttl time.Duration) error {
	if len(boxes) == 0 {
		return nil
	}
	pipe := r.client.Pipeline()
	for i := range boxes {
		data, err := json.Marshal(&boxes[i])
		if err != nil {
			return err
		}
		pipe.Set(ctx, boxKey(boxes[i].LabelIdentifier), data, ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisCacheService) DeleteBox(ctx context.Context, labelIdentifier string) error {
	return r.client.Del(ctx, boxKey(labelIdentifier)).Err()
}

func (r *redisCacheService) GetShipment(ctx context.Context, id string) (*models.Shipment, error) {
	data, err := r.client.Get(ctx, shipmentKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var shipment models.Shipment
	if err := json.Unmarshal(data, &shipment); err != nil {
		return nil, err
	}
	return &shipment, nil
}

func (r *redisCacheService) SetShipment(ctx context.Context, shipment *models.Shipment, ttl time.Duration) error {
	data, err := json.Marshal(shipment)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, shipmentKey(shipment.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteShipment(ctx context.Context, id string) error {
	return r.client.Del(ctx, shipmentKey(id)).Err()
}
