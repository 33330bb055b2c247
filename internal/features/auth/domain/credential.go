package domain

import "errors"

// ErrUnauthorized is returned when the commerce backend rejects a
// request with 401. Observing it anywhere in the checkout or auth flow
// clears the session's stored credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidCredentials is returned when a login attempt is rejected.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credential is the session's stored auth state. The Authenticated flag
// gates client-facing account routes; Token is the actual bearer
// credential attached to backend requests. The two can disagree after a
// token expires server-side, until the next 401 is observed.
type Credential struct {
	// Authenticated is true only after an explicit login success.
	Authenticated bool `json:"authenticated"`
	// Token is the bearer credential issued by the backend.
	Token string `json:"token,omitempty"`
	// CustomerID identifies the logged-in customer at the backend.
	CustomerID string `json:"customer_id,omitempty"`
	// Email is the customer's login email, kept for display.
	Email string `json:"email,omitempty"`
}

// Anonymous returns the unauthenticated default credential.
func Anonymous() *Credential {
	return &Credential{}
}
