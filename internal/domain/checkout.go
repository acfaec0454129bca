package domain

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/davidbz/gamehost/internal/observability"
)

const (
	defaultClaimTTL   = 30 * time.Second
	defaultSessionTTL = 24 * time.Hour
)

// CheckoutService is the authoritative validator: it re-validates and re-prices
// every configuration it receives and is the only issuer of payment sessions.
type CheckoutService struct {
	calculator PriceCalculator
	gateway    PaymentGateway
	store      SessionStore
	events     EventPublisher
	sessionTTL time.Duration
}

// NewCheckoutService creates a new checkout service (DI constructor).
// store and events may be nil.
func NewCheckoutService(
	calculator PriceCalculator,
	gateway PaymentGateway,
	store SessionStore,
	events EventPublisher,
) *CheckoutService {
	return &CheckoutService{
		calculator: calculator,
		gateway:    gateway,
		store:      store,
		events:     events,
		sessionTTL: defaultSessionTTL,
	}
}

// SetSessionTTL sets how long a created session is remembered per idempotency key.
func (s *CheckoutService) SetSessionTTL(ttl time.Duration) {
	if ttl > 0 {
		s.sessionTTL = ttl
	}
}

// Rules returns the rule table the service prices with.
func (s *CheckoutService) Rules() *RuleTable {
	return s.calculator.Rules()
}

// Quote validates input against the service's own rule table and prices it.
func (s *CheckoutService) Quote(_ context.Context, input ConfigurationInput) (PriceQuote, error) {
	config, err := NewConfiguration(input, s.calculator.Rules().Schema())
	if err != nil {
		observability.RecordQuote("invalid")
		return PriceQuote{}, err
	}

	quote, err := s.calculator.Price(config)
	if err != nil {
		observability.RecordQuote("invalid")
		return PriceQuote{}, err
	}

	observability.RecordQuote("ok")
	return quote, nil
}

// CreateSession opens a checkout session for input. The amount charged is always
// the one recomputed here; nothing the client computed is consulted.
// A non-empty idempotencyKey makes repeated calls return the same session.
func (s *CheckoutService) CreateSession(
	ctx context.Context,
	input ConfigurationInput,
	idempotencyKey string,
) (*CheckoutSession, error) {
	ctx = observability.WithRegion(ctx, string(input.Region))
	logger := observability.FromContext(ctx)

	if s.gateway == nil {
		return nil, &RejectionError{Code: RejectionUnavailable, Message: "payment gateway not configured"}
	}

	config, err := NewConfiguration(input, s.calculator.Rules().Schema())
	if err != nil {
		var errs ValidationErrors
		if errors.As(err, &errs) {
			logger.Info("configuration rejected", observability.Strings("fields", errs.Fields()))
		}
		return nil, rejectInvalid(err)
	}

	quote, err := s.calculator.Price(config)
	if err != nil {
		return nil, rejectInvalid(err)
	}

	logger.Info("configuration priced",
		observability.Int64("amount_minor_units", quote.AmountMinorUnits),
		observability.String("rules_version", quote.RulesVersion))

	if s.store != nil && idempotencyKey != "" {
		return s.createOnce(ctx, config, quote, idempotencyKey)
	}

	return s.open(ctx, config, quote, idempotencyKey)
}

func (s *CheckoutService) createOnce(
	ctx context.Context,
	config Configuration,
	quote PriceQuote,
	key string,
) (*CheckoutSession, error) {
	logger := observability.FromContext(ctx)

	existing, err := s.store.Recall(ctx, key)
	switch {
	case err == nil:
		if existing.Configuration != config.Input() {
			return nil, &RejectionError{
				Code:    RejectionMalformedRequest,
				Message: "idempotency key reused with a different configuration",
			}
		}
		logger.Info("returning remembered checkout session",
			observability.String("session_id", existing.ID))
		return existing, nil
	case !errors.Is(err, ErrSessionNotFound):
		logger.Warn("session store lookup failed, continuing without de-duplication",
			observability.Error(err))
		return s.open(ctx, config, quote, key)
	}

	claimed, err := s.store.Claim(ctx, key, defaultClaimTTL)
	if err != nil {
		logger.Warn("session store claim failed, continuing without de-duplication",
			observability.Error(err))
		return s.open(ctx, config, quote, key)
	}
	if !claimed {
		return nil, &RejectionError{
			Code:    RejectionConflict,
			Message: "a checkout for this attempt is already being created",
		}
	}

	session, err := s.open(ctx, config, quote, key)
	if err != nil {
		if releaseErr := s.store.Release(ctx, key); releaseErr != nil {
			logger.Warn("failed to release session claim", observability.Error(releaseErr))
		}
		return nil, err
	}

	if rememberErr := s.store.Remember(ctx, key, session, s.sessionTTL); rememberErr != nil {
		logger.Warn("failed to remember checkout session", observability.Error(rememberErr))
	}

	return session, nil
}

func (s *CheckoutService) open(
	ctx context.Context,
	config Configuration,
	quote PriceQuote,
	key string,
) (*CheckoutSession, error) {
	logger := observability.FromContext(ctx)

	session, err := s.gateway.CreateSession(ctx, &SessionRequest{
		AmountMinorUnits: quote.AmountMinorUnits,
		Currency:         quote.Currency.Code,
		Description:      describe(config),
		IdempotencyKey:   key,
		Metadata: map[string]string{
			FieldPlayers:    strconv.Itoa(config.Players()),
			FieldRAMGB:      strconv.Itoa(config.RAMGB()),
			FieldStorageGB:  strconv.Itoa(config.StorageGB()),
			FieldSupport:    string(config.Support()),
			FieldRegion:     string(config.Region()),
			"rules_version": quote.RulesVersion,
		},
	})
	if err != nil {
		logger.Error("payment gateway rejected session", observability.Error(err))
		observability.RecordCheckout(s.gateway.Name(), "payment_error")
		return nil, &RejectionError{
			Code:    RejectionPaymentError,
			Message: "payment provider could not create a checkout session",
			Err:     err,
		}
	}

	session.Gateway = s.gateway.Name()
	session.AmountMinorUnits = quote.AmountMinorUnits
	session.Currency = quote.Currency.Code
	session.RulesVersion = quote.RulesVersion
	session.Configuration = config.Input()

	ctx = observability.WithSessionID(ctx, session.ID)
	observability.FromContext(ctx).Info("checkout session created")
	observability.RecordCheckout(s.gateway.Name(), "created")

	if s.events != nil {
		s.events.Publish(ctx, "checkout.session_created", map[string]interface{}{
			"gateway":            session.Gateway,
			"amount_minor_units": session.AmountMinorUnits,
			"currency":           session.Currency,
			"rules_version":      session.RulesVersion,
		})
	}

	return session, nil
}

// ResolveSession asks the gateway where the user should be sent to pay for sessionID.
func (s *CheckoutService) ResolveSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	if s.gateway == nil {
		return nil, &RejectionError{Code: RejectionUnavailable, Message: "payment gateway not configured"}
	}

	ctx = observability.WithSessionID(ctx, sessionID)

	session, err := s.gateway.ResolveSession(ctx, sessionID)
	if err != nil {
		observability.FromContext(ctx).Warn("checkout session could not be resolved", observability.Error(err))
		return nil, &RejectionError{
			Code:    RejectionPaymentError,
			Message: "checkout session is not available",
			Err:     err,
		}
	}

	return session, nil
}

func rejectInvalid(err error) *RejectionError {
	rejection := &RejectionError{Code: RejectionInvalidField, Message: err.Error(), Err: err}

	var fieldErr *ValidationError
	if errors.As(err, &fieldErr) {
		rejection.Field = fieldErr.Field
	}

	return rejection
}

func describe(config Configuration) string {
	return fmt.Sprintf("Game server: %d players, %d GB RAM, %d GB storage, %s support, %s",
		config.Players(), config.RAMGB(), config.StorageGB(), config.Support(), config.Region())
}
