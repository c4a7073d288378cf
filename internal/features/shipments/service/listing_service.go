package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipment-dashboard/internal/core/cache"
	"shipment-dashboard/internal/core/logger"
	"shipment-dashboard/internal/features/shipments/domain"
	"shipment-dashboard/internal/features/shipments/ports"

	"go.uber.org/zap"
)

const (
	listCacheKey         = "shipments:list"
	detailCacheKeyPrefix = "shipments:detail:"
)

// ListingService serves shipment list and detail reads, caching upstream
// responses in Redis for the configured TTL. Cache failures degrade to a
// direct upstream call; they never fail the read.
type ListingService struct {
	api   ports.ShipmentAPI
	cache cache.Cache
	ttl   time.Duration
}

// NewListingService creates a new ListingService.
func NewListingService(api ports.ShipmentAPI, c cache.Cache, ttl time.Duration) *ListingService {
	return &ListingService{
		api:   api,
		cache: c,
		ttl:   ttl,
	}
}

// List returns all shipments, served from cache when fresh.
func (s *ListingService) List(ctx context.Context) ([]domain.Shipment, error) {
	if data, err := s.cache.Get(ctx, listCacheKey); err == nil {
		var shipments []domain.Shipment
		if err := json.Unmarshal(data, &shipments); err == nil {
			return shipments, nil
		}
	}

	shipments, err := s.api.ListShipments(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list shipments: %w", err)
	}

	s.store(ctx, listCacheKey, shipments)
	return shipments, nil
}

// Get returns one shipment by id, served from cache when fresh.
func (s *ListingService) Get(ctx context.Context, id string) (*domain.Shipment, error) {
	key := detailCacheKeyPrefix + id

	if data, err := s.cache.Get(ctx, key); err == nil {
		var shipment domain.Shipment
		if err := json.Unmarshal(data, &shipment); err == nil {
			return &shipment, nil
		}
	}

	shipment, err := s.api.GetShipment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get shipment: %w", err)
	}

	s.store(ctx, key, shipment)
	return shipment, nil
}

// Invalidate drops the cached list and the detail entry for each given id.
// Detail entries are keyed by whatever id the read used, so callers pass every
// id the shipment is reachable under (tracking id and server record id).
// Called after a successful submission so stale reads don't outlive a write.
func (s *ListingService) Invalidate(ctx context.Context, ids ...string) {
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		logger.Get().Warn("Failed to invalidate list cache", zap.Error(err))
	}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if err := s.cache.Delete(ctx, detailCacheKeyPrefix+id); err != nil {
			logger.Get().Warn("Failed to invalidate detail cache",
				zap.String("shipment_id", id),
				zap.Error(err),
			)
		}
	}
}

// store caches a value unless the request was canceled mid-flight; a result
// that arrives after cancellation must never be applied.
func (s *ListingService) store(ctx context.Context, key string, value interface{}) {
	if ctx.Err() != nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		logger.Get().Warn("Failed to cache shipments", zap.String("key", key), zap.Error(err))
	}
}
