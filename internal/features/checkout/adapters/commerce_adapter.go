package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"toystore-api/internal/core/config"
	"toystore-api/internal/core/httpclient"
	authdomain "toystore-api/internal/features/auth/domain"
	"toystore-api/internal/features/checkout/domain"
)

// CommerceAdapter implements the VerificationProvider and OrderPlacer
// ports against the commerce backend's REST API.
type CommerceAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the backend connection details.
	config config.CommerceConfig
}

// NewCommerceAdapter creates a new instance of CommerceAdapter.
func NewCommerceAdapter(cfg config.CommerceConfig) *CommerceAdapter {
	return &CommerceAdapter{
		client: httpclient.NewBearerClient(10*time.Second, cfg.APIKey),
		config: cfg,
	}
}

// Verify asks the backend for tax, shipping, availability and wallet
// data for the given cart. The customer token, when present, is sent so
// the backend can include the customer's wallet balance.
func (a *CommerceAdapter) Verify(ctx context.Context, token string, req domain.VerifyRequest) (*domain.VerifiedResponse, error) {
	var verified domain.VerifiedResponse
	if err := a.post(ctx, "/orders/checkout/verify", token, req, &verified); err != nil {
		return nil, err
	}
	if verified.UnavailableProducts == nil {
		verified.UnavailableProducts = []string{}
	}
	return &verified, nil
}

// PlaceOrder submits the order to the backend and returns its receipt.
func (a *CommerceAdapter) PlaceOrder(ctx context.Context, token string, order domain.OrderPayload) (*domain.OrderReceipt, error) {
	var receipt domain.OrderReceipt
	if err := a.post(ctx, "/orders", token, order, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// post sends a JSON request and decodes the JSON response, mapping
// backend status codes onto domain errors.
func (a *CommerceAdapter) post(ctx context.Context, path, token string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		// customer token overrides the service key set by the transport
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return authdomain.ErrUnauthorized
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("commerce API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
