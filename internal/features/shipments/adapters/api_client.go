package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"shipment-dashboard/internal/core/config"
	"shipment-dashboard/internal/core/httpclient"
	"shipment-dashboard/internal/core/logger"
	"shipment-dashboard/internal/features/shipments/domain"

	"go.uber.org/zap"
)

// RemoteError carries the message the upstream API returned for a failed call.
type RemoteError struct {
	// StatusCode is the HTTP status of the failed response.
	StatusCode int
	// Message is the user-facing message extracted from the response body.
	Message string
}

// Error implements the error interface.
func (e *RemoteError) Error() string {
	return fmt.Sprintf("shipment API returned status %d: %s", e.StatusCode, e.Message)
}

// ShipmentAPIAdapter implements the ShipmentAPI port against the upstream
// shipment REST API.
type ShipmentAPIAdapter struct {
	// client carries the session cookie and logging middleware.
	client *http.Client
	// baseURL is the API root, e.g. https://api.example.com/api/v1.
	baseURL string
}

// NewShipmentAPIAdapter creates a new adapter from the API configuration.
func NewShipmentAPIAdapter(cfg config.APIConfig) *ShipmentAPIAdapter {
	return &ShipmentAPIAdapter{
		client:  httpclient.NewSessionClient(time.Duration(cfg.TimeoutSeconds)*time.Second, cfg.SessionCookie),
		baseURL: cfg.BaseURL,
	}
}

// apiEnvelope is the upstream response wrapper. Success bodies carry a
// message and a data object; error bodies reuse the same shape with an
// optional validation message inside data.
type apiEnvelope struct {
	Message string `json:"message"`
	Data    struct {
		AllShipment            []domain.Shipment `json:"allShipment"`
		Shipment               *domain.Shipment  `json:"shipment"`
		ValidationErrorMessage string            `json:"validation_error_message"`
	} `json:"data"`
}

// ListShipments fetches GET /shipment.
func (a *ShipmentAPIAdapter) ListShipments(ctx context.Context) ([]domain.Shipment, error) {
	env, err := a.do(ctx, http.MethodGet, "/shipment", nil)
	if err != nil {
		return nil, err
	}
	return env.Data.AllShipment, nil
}

// GetShipment fetches GET /shipment/{id}.
func (a *ShipmentAPIAdapter) GetShipment(ctx context.Context, id string) (*domain.Shipment, error) {
	env, err := a.do(ctx, http.MethodGet, "/shipment/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	if env.Data.Shipment == nil {
		return nil, &RemoteError{StatusCode: http.StatusNotFound, Message: "shipment not found"}
	}
	return env.Data.Shipment, nil
}

// CreateShipment sends POST /shipment with the full draft document.
func (a *ShipmentAPIAdapter) CreateShipment(ctx context.Context, shipment *domain.Shipment) (string, error) {
	env, err := a.do(ctx, http.MethodPost, "/shipment", shipment)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// UpdateShipment sends PATCH /shipment/{trackingId} with the full draft
// document; the upstream applies it as a full replace.
func (a *ShipmentAPIAdapter) UpdateShipment(ctx context.Context, trackingID string, shipment *domain.Shipment) (string, error) {
	env, err := a.do(ctx, http.MethodPatch, "/shipment/"+url.PathEscape(trackingID), shipment)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// do executes one API call and decodes the response envelope. Non-2xx
// responses become a RemoteError carrying the server's message.
func (a *ShipmentAPIAdapter) do(ctx context.Context, method, path string, body interface{}) (*apiEnvelope, error) {
	var reqBody *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	var env apiEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && resp.StatusCode < 300 {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Data.ValidationErrorMessage
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = "shipment service request failed"
		}
		logger.Get().Warn("Shipment API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return nil, &RemoteError{StatusCode: resp.StatusCode, Message: msg}
	}

	return &env, nil
}
