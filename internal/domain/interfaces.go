package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound indicates no session is remembered under a key.
var ErrSessionNotFound = errors.New("checkout session not found")

// CheckoutSession is the handle the validator returns for one purchase attempt.
// Clients treat ID as opaque and pass it to the payment collaborator unchanged.
type CheckoutSession struct {
	ID               string             `json:"id"`
	Gateway          string             `json:"gateway"`
	URL              string             `json:"url,omitempty"`
	AmountMinorUnits int64              `json:"amountMinorUnits"`
	Currency         string             `json:"currency"`
	RulesVersion     string             `json:"rulesVersion"`
	Configuration    ConfigurationInput `json:"configuration"`
	ExpiresAt        time.Time          `json:"expiresAt,omitzero"`
}

// SessionRequest asks a payment gateway to open a session for a fixed amount.
type SessionRequest struct {
	AmountMinorUnits int64
	Currency         string
	Description      string
	IdempotencyKey   string
	Metadata         map[string]string
}

// PaymentGateway is the payment collaborator that hosts the card checkout.
type PaymentGateway interface {
	// CreateSession opens a hosted checkout session for exactly req.AmountMinorUnits.
	CreateSession(ctx context.Context, req *SessionRequest) (*CheckoutSession, error)

	// ResolveSession looks up an open session so the user can be sent to it.
	ResolveSession(ctx context.Context, sessionID string) (*CheckoutSession, error)

	// Name returns the gateway identifier.
	Name() string
}

// GatewayRegistry manages available payment gateways.
type GatewayRegistry interface {
	// Register adds a gateway to the registry.
	Register(ctx context.Context, gateway PaymentGateway) error

	// Get retrieves a gateway by name.
	Get(ctx context.Context, name string) (PaymentGateway, error)

	// List returns all registered gateway names.
	List(ctx context.Context) ([]string, error)
}

// SessionStore remembers sessions by idempotency key so a repeated attempt
// never opens a second session.
type SessionStore interface {
	// Claim marks key as in progress. It returns false if key is already claimed.
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Recall returns the session stored under key, or ErrSessionNotFound.
	Recall(ctx context.Context, key string) (*CheckoutSession, error)

	// Remember stores session under key.
	Remember(ctx context.Context, key string, session *CheckoutSession, ttl time.Duration) error

	// Release drops a claim that did not produce a session.
	Release(ctx context.Context, key string) error
}

// EventPublisher publishes events for observability.
type EventPublisher interface {
	// Publish publishes an event with the given type and data.
	Publish(ctx context.Context, eventType string, data map[string]interface{})
}
