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
	"toystore-api/internal/features/auth/domain"
)

// CommerceAuthAdapter implements the TokenProvider port against the
// commerce backend's token endpoint.
type CommerceAuthAdapter struct {
	client *http.Client
	config config.CommerceConfig
}

// NewCommerceAuthAdapter creates a new instance of CommerceAuthAdapter.
func NewCommerceAuthAdapter(cfg config.CommerceConfig) *CommerceAuthAdapter {
	return &CommerceAuthAdapter{
		client: httpclient.NewBearerClient(10*time.Second, cfg.APIKey),
		config: cfg,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Customer struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"customer"`
}

// Login exchanges the email and password for a customer bearer token.
// A 401 or 422 from the backend means the credentials were rejected.
func (a *CommerceAuthAdapter) Login(ctx context.Context, email, password string) (*domain.Credential, error) {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL+"/token", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, domain.ErrInvalidCredentials
	case resp.StatusCode >= http.StatusBadRequest:
		return nil, fmt.Errorf("commerce API returned status: %d", resp.StatusCode)
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Token == "" {
		// backend answers 200 with an empty token on bad credentials
		return nil, domain.ErrInvalidCredentials
	}

	return &domain.Credential{
		Authenticated: true,
		Token:         payload.Token,
		CustomerID:    payload.Customer.ID,
		Email:         payload.Customer.Email,
	}, nil
}
