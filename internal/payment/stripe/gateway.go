// Package stripe provides a payment gateway backed by Stripe Checkout.
// It implements the domain.PaymentGateway interface with card-only,
// one-off payment sessions.
package stripe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	stripego "github.com/stripe/stripe-go/v79"
	stripeclient "github.com/stripe/stripe-go/v79/client"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/observability"
)

const (
	gatewayName        = "stripe"
	defaultProductName = "Game server"
)

var (
	// ErrProviderDown is returned when Stripe answers with a server error.
	ErrProviderDown = errors.New("stripe is unavailable")

	// ErrIdempotencyConflict is returned when Stripe saw the same idempotency key with different parameters.
	ErrIdempotencyConflict = errors.New("stripe idempotency key reused with different parameters")
)

// Gateway implements the domain.PaymentGateway interface for Stripe.
type Gateway struct {
	api        *stripeclient.API
	successURL string
	cancelURL  string
}

// NewGateway creates a new Stripe gateway.
func NewGateway(config Config) (*Gateway, error) {
	if config.SecretKey == "" {
		return nil, errors.New("stripe secret key is required")
	}

	return &Gateway{
		api:        newAPI(config),
		successURL: config.SuccessURL,
		cancelURL:  config.CancelURL,
	}, nil
}

// CreateSession opens a hosted checkout session for exactly req.AmountMinorUnits.
func (g *Gateway) CreateSession(ctx context.Context, req *domain.SessionRequest) (*domain.CheckoutSession, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if req.AmountMinorUnits <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", req.AmountMinorUnits)
	}

	logger := observability.FromContext(ctx)
	logger.Debug("creating Stripe checkout session",
		observability.Int64("amount_minor_units", req.AmountMinorUnits),
		observability.String("currency", req.Currency))

	productName := req.Description
	if productName == "" {
		productName = defaultProductName
	}

	params := &stripego.CheckoutSessionParams{
		Mode:               stripego.String(string(stripego.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripego.StringSlice([]string{"card"}),
		LineItems: []*stripego.CheckoutSessionLineItemParams{
			{
				Quantity: stripego.Int64(1),
				PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripego.String(req.Currency),
					UnitAmount: stripego.Int64(req.AmountMinorUnits),
					ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripego.String(productName),
					},
				},
			},
		},
		SuccessURL: stripego.String(g.successURL),
		CancelURL:  stripego.String(g.cancelURL),
	}
	if req.IdempotencyKey != "" {
		params.IdempotencyKey = stripego.String(req.IdempotencyKey)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		logger.Error("Stripe session creation failed", observability.Error(err))
		return nil, mapStripeError(err)
	}

	// Stripe must echo the amount we asked for; anything else is not safe to hand out.
	if session.AmountTotal != 0 && session.AmountTotal != req.AmountMinorUnits {
		return nil, fmt.Errorf("stripe session amount %d does not match requested %d",
			session.AmountTotal, req.AmountMinorUnits)
	}

	return toDomainSession(session), nil
}

// ResolveSession looks up an open session so the user can be redirected to it.
func (g *Gateway) ResolveSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	if sessionID == "" {
		return nil, errors.New("session id cannot be empty")
	}

	params := &stripego.CheckoutSessionParams{}
	params.Context = ctx

	session, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return nil, mapStripeError(err)
	}

	if session.Status != "" && session.Status != stripego.CheckoutSessionStatusOpen {
		return nil, fmt.Errorf("stripe session %s is %s", sessionID, session.Status)
	}

	if session.URL == "" {
		return nil, fmt.Errorf("stripe session %s has no checkout url", sessionID)
	}

	return toDomainSession(session), nil
}

// Name returns the gateway identifier.
func (g *Gateway) Name() string {
	return gatewayName
}

// mapStripeError keeps the *stripego.Error reachable through errors.As and
// classifies the failures callers act on.
func mapStripeError(err error) error {
	var stripeErr *stripego.Error
	if !errors.As(err, &stripeErr) {
		return fmt.Errorf("stripe request failed: %w", err)
	}

	switch {
	case stripeErr.Code == stripego.ErrorCodeIdempotencyKeyInUse:
		return fmt.Errorf("%w: %w", ErrIdempotencyConflict, stripeErr)
	case stripeErr.HTTPStatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %w", ErrProviderDown, stripeErr)
	case stripeErr.Code != "":
		return fmt.Errorf("stripe rejected the request (%s): %s: %w", stripeErr.Code, stripeErr.Msg, stripeErr)
	default:
		return fmt.Errorf("stripe rejected the request (%s): %s: %w", stripeErr.Type, stripeErr.Msg, stripeErr)
	}
}

func toDomainSession(session *stripego.CheckoutSession) *domain.CheckoutSession {
	var expiresAt time.Time
	if session.ExpiresAt > 0 {
		expiresAt = time.Unix(session.ExpiresAt, 0).UTC()
	}

	return &domain.CheckoutSession{
		ID:               session.ID,
		Gateway:          gatewayName,
		URL:              session.URL,
		AmountMinorUnits: session.AmountTotal,
		Currency:         string(session.Currency),
		ExpiresAt:        expiresAt,
	}
}
