package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"shipment-dashboard/internal/core/cache"
	"shipment-dashboard/internal/features/shipments/domain"
)

// draftKeyPrefix namespaces draft entries in the shared cache.
const draftKeyPrefix = "shipment_draft:"

// RedisDraftStore implements ports.DraftStore on top of the cache port.
// Drafts expire after the configured TTL so abandoned forms clean themselves
// up.
type RedisDraftStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewRedisDraftStore creates a new RedisDraftStore.
func NewRedisDraftStore(c cache.Cache, ttl time.Duration) *RedisDraftStore {
	return &RedisDraftStore{
		cache: c,
		ttl:   ttl,
	}
}

// Save stores the draft as JSON, refreshing its TTL.
func (s *RedisDraftStore) Save(ctx context.Context, draft *domain.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.cache.Set(ctx, draftKeyPrefix+draft.ID, data, s.ttl); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}

	return nil
}

// Get retrieves a draft by id, returning (nil, nil) when it does not exist.
func (s *RedisDraftStore) Get(ctx context.Context, id string) (*domain.Draft, error) {
	data, err := s.cache.Get(ctx, draftKeyPrefix+id)
	if err != nil {
		if errors.Is(err, cache.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft domain.Draft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &draft, nil
}

// Delete removes a draft by id.
func (s *RedisDraftStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, draftKeyPrefix+id); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}
