package checkout

import (
	"context"
	"errors"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/observability"
)

// Redirector hands a session to the payment collaborator's hosted page.
type Redirector interface {
	Redirect(ctx context.Context, sessionID string) error
}

// SessionResolver turns a session ID into the hosted payment page.
type SessionResolver interface {
	ResolveSession(ctx context.Context, sessionID string) (*domain.CheckoutSession, error)
}

// Navigator sends the user to url.
type Navigator func(ctx context.Context, url string) error

// HostedRedirector resolves a session and navigates to its hosted page.
type HostedRedirector struct {
	resolver SessionResolver
	navigate Navigator
}

// NewHostedRedirector creates a redirector over resolver and navigate.
func NewHostedRedirector(resolver SessionResolver, navigate Navigator) *HostedRedirector {
	return &HostedRedirector{resolver: resolver, navigate: navigate}
}

// Redirect sends the user to the page for sessionID. Failures are *domain.RedirectError.
func (r *HostedRedirector) Redirect(ctx context.Context, sessionID string) error {
	session, err := r.resolver.ResolveSession(ctx, sessionID)
	if err != nil {
		var rejection *domain.RejectionError
		message := ""
		if errors.As(err, &rejection) {
			message = rejection.Message
		}
		return &domain.RedirectError{SessionID: sessionID, Message: message, Err: err}
	}

	if session.URL == "" {
		return &domain.RedirectError{SessionID: sessionID, Message: "payment page has no address"}
	}

	observability.FromContext(ctx).Info("redirecting to payment page",
		observability.String("session_id", sessionID))

	if err := r.navigate(ctx, session.URL); err != nil {
		return &domain.RedirectError{SessionID: sessionID, Err: err}
	}

	return nil
}
