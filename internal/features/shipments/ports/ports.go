package ports

import (
	"context"

	"shipment-dashboard/internal/features/shipments/domain"
)

// ShipmentAPI defines the interface to the upstream shipment REST API.
// This is a Secondary Port (Driven Port); the upstream owns persistence,
// collision handling and document normalization.
type ShipmentAPI interface {
	// ListShipments retrieves every shipment visible to the session.
	ListShipments(ctx context.Context) ([]domain.Shipment, error)
	// GetShipment retrieves a single shipment by id.
	GetShipment(ctx context.Context, id string) (*domain.Shipment, error)
	// CreateShipment submits a new shipment and returns the server message.
	CreateShipment(ctx context.Context, shipment *domain.Shipment) (string, error)
	// UpdateShipment replaces the shipment keyed by tracking id (full-document,
	// last-write-wins) and returns the server message.
	UpdateShipment(ctx context.Context, trackingID string, shipment *domain.Shipment) (string, error)
}

// DraftStore defines the secondary port for draft persistence between requests.
type DraftStore interface {
	// Save persists the draft under its id.
	Save(ctx context.Context, draft *domain.Draft) error
	// Get loads a draft by id; (nil, nil) when it does not exist.
	Get(ctx context.Context, id string) (*domain.Draft, error)
	// Delete removes a draft by id.
	Delete(ctx context.Context, id string) error
}
