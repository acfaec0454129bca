// Package sandbox provides an in-memory payment gateway for development and tests.
// It implements the domain.PaymentGateway interface without calling out to a
// payment collaborator and hands out deterministic-looking session handles.
package sandbox

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/observability"
)

const (
	gatewayName    = "sandbox"
	sessionPrefix  = "cs_sandbox_"
	sessionTTL     = 24 * time.Hour
	defaultPageURL = "http://localhost:8080/sandbox/pay"
)

// Gateway implements the domain.PaymentGateway interface in memory.
type Gateway struct {
	mu       sync.RWMutex
	pageURL  string
	sessions map[string]*domain.CheckoutSession
	now      func() time.Time
}

// NewGateway creates a sandbox gateway whose hosted pages live under pageURL.
func NewGateway(pageURL string) *Gateway {
	if pageURL == "" {
		pageURL = defaultPageURL
	}

	return &Gateway{
		mu:       sync.RWMutex{},
		pageURL:  strings.TrimRight(pageURL, "/"),
		sessions: make(map[string]*domain.CheckoutSession),
		now:      time.Now,
	}
}

// CreateSession records a new open session for req.
func (g *Gateway) CreateSession(ctx context.Context, req *domain.SessionRequest) (*domain.CheckoutSession, error) {
	if req == nil {
		return nil, errors.New("request cannot be nil")
	}

	if req.AmountMinorUnits <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %d", req.AmountMinorUnits)
	}

	id := sessionPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
	session := &domain.CheckoutSession{
		ID:               id,
		Gateway:          gatewayName,
		URL:              g.pageURL + "/" + id,
		AmountMinorUnits: req.AmountMinorUnits,
		Currency:         req.Currency,
		ExpiresAt:        g.now().Add(sessionTTL).UTC(),
	}

	g.mu.Lock()
	g.sessions[id] = session
	g.mu.Unlock()

	observability.FromContext(ctx).Debug("sandbox session created",
		observability.String("session_id", id),
		observability.Int64("amount_minor_units", req.AmountMinorUnits))

	copied := *session
	return &copied, nil
}

// ResolveSession returns an open, unexpired session.
func (g *Gateway) ResolveSession(_ context.Context, sessionID string) (*domain.CheckoutSession, error) {
	if sessionID == "" {
		return nil, errors.New("session id cannot be empty")
	}

	g.mu.RLock()
	defer g.mu.RUnlock()

	session, exists := g.sessions[sessionID]
	if !exists {
		return nil, fmt.Errorf("no such checkout session: %s", sessionID)
	}

	if !g.now().Before(session.ExpiresAt) {
		return nil, fmt.Errorf("checkout session %s has expired", sessionID)
	}

	copied := *session
	return &copied, nil
}

// Expire marks a session as expired.
func (g *Gateway) Expire(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if session, exists := g.sessions[sessionID]; exists {
		session.ExpiresAt = g.now()
	}
}

// Count returns the number of sessions opened so far.
func (g *Gateway) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return len(g.sessions)
}

// Name returns the gateway identifier.
func (g *Gateway) Name() string {
	return gatewayName
}
