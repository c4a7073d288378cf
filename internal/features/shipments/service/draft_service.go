package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"shipment-dashboard/internal/core/logger"
	"shipment-dashboard/internal/features/shipments/domain"
	"shipment-dashboard/internal/features/shipments/ports"

	"go.uber.org/zap"
)

var (
	// ErrDraftNotFound is returned when no draft exists for the given id.
	ErrDraftNotFound = errors.New("draft not found")
	// ErrSubmissionInFlight is returned when a submit is attempted while a
	// previous submission for the same draft has not resolved yet.
	ErrSubmissionInFlight = errors.New("submission already in flight")
)

// DraftService orchestrates shipment drafts: it loads draft state from the
// store, applies form operations, and persists the result. Submission is
// serialized per draft with a busy flag so a second submit never issues a
// second upstream call.
type DraftService struct {
	store ports.DraftStore
	api   ports.ShipmentAPI

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewDraftService creates a new DraftService.
func NewDraftService(store ports.DraftStore, api ports.ShipmentAPI) *DraftService {
	return &DraftService{
		store:    store,
		api:      api,
		inflight: make(map[string]struct{}),
	}
}

// StartAdd initializes an "add" draft. A tracking id is generated immediately.
func (s *DraftService) StartAdd(ctx context.Context) (*domain.Draft, error) {
	draft := domain.NewDraft()
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("service: failed to save draft: %w", err)
	}
	return draft, nil
}

// StartEdit fetches the shipment by id from the upstream API and initializes
// an "edit" draft from it, reformatting every timestamp to the input format.
func (s *DraftService) StartEdit(ctx context.Context, shipmentID string) (*domain.Draft, error) {
	shipment, err := s.api.GetShipment(ctx, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch shipment: %w", err)
	}

	draft := domain.NewEditDraft(*shipment)
	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("service: failed to save draft: %w", err)
	}
	return draft, nil
}

// Get loads a draft by id.
func (s *DraftService) Get(ctx context.Context, id string) (*domain.Draft, error) {
	return s.load(ctx, id)
}

// Discard removes a draft.
func (s *DraftService) Discard(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to discard draft: %w", err)
	}
	return nil
}

// UpdateField applies one shipment-level field change.
func (s *DraftService) UpdateField(ctx context.Context, id string, name domain.FieldName, value string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.ApplyField(name, value)
	})
}

// RegenerateTrackingID replaces the draft's tracking id with a fresh one.
func (s *DraftService) RegenerateTrackingID(ctx context.Context, id string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		d.RegenerateTrackingID()
		return nil
	})
}

// OpenEvent opens the event sub-form in add or edit mode.
func (s *DraftService) OpenEvent(ctx context.Context, id string, mode domain.FormMode, eventID string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		d.OpenEvent(mode, eventID)
		return nil
	})
}

// UpdateEventField applies one event-level field change.
func (s *DraftService) UpdateEventField(ctx context.Context, id string, name domain.FieldName, value string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.ApplyEventField(name, value)
	})
}

// SaveEvent merges the event draft back into the shipment's event list.
func (s *DraftService) SaveEvent(ctx context.Context, id string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		return d.SaveEvent()
	})
}

// CloseEvent discards the event draft and closes the sub-form.
func (s *DraftService) CloseEvent(ctx context.Context, id string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		d.CloseEvent()
		return nil
	})
}

// DeleteEvent removes an event from the shipment by event id; a miss is a
// no-op.
func (s *DraftService) DeleteEvent(ctx context.Context, id, eventID string) (*domain.Draft, error) {
	return s.mutate(ctx, id, func(d *domain.Draft) error {
		d.DeleteEvent(eventID)
		return nil
	})
}

// SubmitResult reports a successful submission.
type SubmitResult struct {
	// Message is the server-provided success message.
	Message string `json:"message"`
	// TrackingID is the tracking id the document was submitted under.
	TrackingID string `json:"trackingId"`
	// RecordID is the server record id, when the draft carried one (edit mode).
	RecordID string `json:"recordId,omitempty"`
}

// Submit forwards the draft to the upstream API: POST for add mode, PATCH
// keyed by tracking id for edit mode. On success the draft is discarded and
// the server message returned. On failure the draft is left untouched so the
// user's input is never lost; no retry is attempted.
func (s *DraftService) Submit(ctx context.Context, id string) (*SubmitResult, error) {
	s.mu.Lock()
	if _, busy := s.inflight[id]; busy {
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	s.inflight[id] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inflight, id)
		s.mu.Unlock()
	}()

	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !draft.CanSubmit() {
		return nil, domain.ErrNotSubmittable
	}

	var message string
	if draft.Mode == domain.ModeEdit {
		message, err = s.api.UpdateShipment(ctx, draft.Shipment.TrackingID, &draft.Shipment)
	} else {
		message, err = s.api.CreateShipment(ctx, &draft.Shipment)
	}
	if err != nil {
		return nil, err
	}

	if err := s.store.Delete(ctx, id); err != nil {
		// The upstream accepted the document; an expiring leftover draft is
		// not worth failing the submission over.
		logger.Get().Warn("Failed to discard draft after submit",
			zap.String("draft_id", id),
			zap.Error(err),
		)
	}

	return &SubmitResult{
		Message:    message,
		TrackingID: draft.Shipment.TrackingID,
		RecordID:   draft.Shipment.RecordID,
	}, nil
}

// load fetches a draft and maps absence to ErrDraftNotFound.
func (s *DraftService) load(ctx context.Context, id string) (*domain.Draft, error) {
	draft, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load draft: %w", err)
	}
	if draft == nil {
		return nil, ErrDraftNotFound
	}
	return draft, nil
}

// mutate runs one load-apply-save cycle.
func (s *DraftService) mutate(ctx context.Context, id string, apply func(*domain.Draft) error) (*domain.Draft, error) {
	draft, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(draft); err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, draft); err != nil {
		return nil, fmt.Errorf("service: failed to save draft: %w", err)
	}

	return draft, nil
}
