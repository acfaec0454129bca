// Package checkout is the client side of a purchase: it validates and prices a
// configuration locally for display, asks the validator for a payment session
// and hands that session to the payment collaborator.
package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/observability"
)

// State is the orchestrator's position in a checkout attempt.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateRedirecting
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateRedirecting:
		return "redirecting"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SessionCreator is the validator as seen by the orchestrator.
type SessionCreator interface {
	CreateSession(ctx context.Context, input domain.ConfigurationInput, idempotencyKey string) (*domain.CheckoutSession, error)
}

// Orchestrator runs at most one checkout attempt at a time.
type Orchestrator struct {
	calculator domain.PriceCalculator
	validator  SessionCreator
	redirector Redirector
	newKey     func() string

	mu      sync.Mutex
	state   State
	attempt uint64
	cancel  context.CancelFunc
	lastErr error
}

// NewOrchestrator creates an orchestrator. calculator prices locally for
// display only; the validator decides the amount charged.
func NewOrchestrator(calculator domain.PriceCalculator, validator SessionCreator, redirector Redirector) *Orchestrator {
	return &Orchestrator{
		calculator: calculator,
		validator:  validator,
		redirector: redirector,
		newKey:     uuid.NewString,
		state:      StateIdle,
	}
}

// State returns the current state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// Err returns the error of the last failed attempt, if the orchestrator is in StateFailed.
func (o *Orchestrator) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateFailed {
		return nil
	}
	return o.lastErr
}

// Quote validates input and prices it with the local rule table, for display.
func (o *Orchestrator) Quote(input domain.ConfigurationInput) (domain.PriceQuote, error) {
	config, err := domain.NewConfiguration(input, o.calculator.Rules().Schema())
	if err != nil {
		return domain.PriceQuote{}, err
	}

	return o.calculator.Price(config)
}

// InitiateCheckout validates input, obtains a session from the validator and
// redirects to it. It blocks until the redirect has been handed off or the
// attempt fails. Local validation failures make no network call.
func (o *Orchestrator) InitiateCheckout(ctx context.Context, input domain.ConfigurationInput) error {
	config, err := domain.NewConfiguration(input, o.calculator.Rules().Schema())
	if err != nil {
		return err
	}

	ctx, attempt, err := o.begin(ctx)
	if err != nil {
		return err
	}

	logger := observability.FromContext(ctx)

	local, err := o.calculator.Price(config)
	if err != nil {
		return o.fail(attempt, err)
	}
	logger.Info("checkout submitted",
		observability.String("display_price", local.Display()),
		observability.String("rules_version", local.RulesVersion))

	session, err := o.validator.CreateSession(ctx, config.Input(), o.newKey())
	if err != nil {
		return o.fail(attempt, err)
	}

	if session.RulesVersion != "" && session.RulesVersion != local.RulesVersion {
		logger.Warn("validator priced with a different rule table",
			observability.String("local_rules_version", local.RulesVersion),
			observability.String("validator_rules_version", session.RulesVersion))
	}
	if session.AmountMinorUnits != 0 && session.AmountMinorUnits != local.AmountMinorUnits {
		logger.Warn("validator price differs from displayed price",
			observability.Int64("displayed", local.AmountMinorUnits),
			observability.Int64("charged", session.AmountMinorUnits))
	}

	if !o.advance(attempt, StateRedirecting) {
		return domain.ErrCheckoutAbandoned
	}

	if err := o.redirector.Redirect(ctx, session.ID); err != nil {
		var redirectErr *domain.RedirectError
		if !errors.As(err, &redirectErr) && !errors.Is(err, context.Canceled) {
			err = &domain.RedirectError{SessionID: session.ID, Err: err}
		}
		return o.fail(attempt, err)
	}

	if !o.advance(attempt, StateIdle) {
		return domain.ErrCheckoutAbandoned
	}

	return nil
}

// Abandon cancels the in-flight attempt, if any. Its eventual response is discarded.
func (o *Orchestrator) Abandon() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateSubmitting && o.state != StateRedirecting {
		return
	}

	o.attempt++
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.state = StateIdle
}

func (o *Orchestrator) begin(ctx context.Context) (context.Context, uint64, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateSubmitting || o.state == StateRedirecting {
		return nil, 0, domain.ErrCheckoutInFlight
	}

	ctx, cancel := context.WithCancel(ctx)
	o.attempt++
	o.cancel = cancel
	o.state = StateSubmitting
	o.lastErr = nil

	return ctx, o.attempt, nil
}

// advance moves the current attempt to next. It reports false if the attempt
// was abandoned in the meantime.
func (o *Orchestrator) advance(attempt uint64, next State) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.attempt != attempt {
		return false
	}

	o.state = next
	if next == StateIdle && o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	return true
}

func (o *Orchestrator) fail(attempt uint64, err error) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.attempt != attempt {
		return domain.ErrCheckoutAbandoned
	}

	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.state = StateFailed
	o.lastErr = err
	return err
}
