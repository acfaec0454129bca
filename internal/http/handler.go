package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/observability"
	"github.com/davidbz/gamehost/internal/rules"
)

// Handler handles HTTP requests.
type Handler struct {
	checkout *domain.CheckoutService
	validate *validator.Validate
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(checkout *domain.CheckoutService) *Handler {
	return &Handler{
		checkout: checkout,
		validate: newValidator(),
	}
}

// QuoteResponse is the body of a successful quote.
type QuoteResponse struct {
	AmountMinorUnits int64  `json:"amountMinorUnits"`
	Currency         string `json:"currency"`
	Display          string `json:"display"`
	RulesVersion     string `json:"rulesVersion"`
}

// SessionResponse is the body of a successful checkout session request.
type SessionResponse struct {
	ID               string    `json:"id"`
	URL              string    `json:"url,omitempty"`
	AmountMinorUnits int64     `json:"amountMinorUnits"`
	Currency         string    `json:"currency"`
	Display          string    `json:"display"`
	RulesVersion     string    `json:"rulesVersion"`
	ExpiresAt        time.Time `json:"expiresAt,omitzero"`
}

// HandleCreateSession re-validates and re-prices the posted configuration and
// opens a payment session for the recomputed amount.
func (h *Handler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Early validation.
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	input, err := decodeConfiguration(r, h.validate)
	if err != nil {
		observability.FromContext(ctx).Info("malformed checkout request", observability.Error(err))
		observability.RecordCheckout("", string(domain.RejectionMalformedRequest))
		writeFailure(w, err)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("checkout request received",
		observability.Int("players", input.Players),
		observability.Int("ram_gb", input.RAMGB),
		observability.Int("storage_gb", input.StorageGB),
		observability.String("support", string(input.Support)),
		observability.String("region", string(input.Region)),
	)

	session, err := h.checkout.CreateSession(ctx, input, r.Header.Get("Idempotency-Key"))
	if err != nil {
		logger.Info("checkout rejected", observability.Error(err))
		writeFailure(w, err)
		return
	}

	quote := domain.PriceQuote{
		AmountMinorUnits: session.AmountMinorUnits,
		Currency:         h.checkout.Rules().Currency,
		RulesVersion:     session.RulesVersion,
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		ID:               session.ID,
		URL:              session.URL,
		AmountMinorUnits: session.AmountMinorUnits,
		Currency:         session.Currency,
		Display:          quote.Display(),
		RulesVersion:     session.RulesVersion,
		ExpiresAt:        session.ExpiresAt,
	})
}

// HandleResolveSession returns where the user should be sent to pay for a session.
func (h *Handler) HandleResolveSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, ErrorBody{
			Code:    domain.RejectionMalformedRequest,
			Message: "session id is required",
		})
		return
	}

	session, err := h.checkout.ResolveSession(r.Context(), sessionID)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SessionResponse{
		ID:               session.ID,
		URL:              session.URL,
		AmountMinorUnits: session.AmountMinorUnits,
		Currency:         session.Currency,
		ExpiresAt:        session.ExpiresAt,
	})
}

// HandleQuote prices a configuration without opening a session.
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	input, err := decodeConfiguration(r, h.validate)
	if err != nil {
		writeFailure(w, err)
		return
	}

	quote, err := h.checkout.Quote(r.Context(), input)
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, QuoteResponse{
		AmountMinorUnits: quote.AmountMinorUnits,
		Currency:         quote.Currency.Code,
		Display:          quote.Display(),
		RulesVersion:     quote.RulesVersion,
	})
}

// HandleRules serves the active rule table.
func (h *Handler) HandleRules(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, rules.FromTable(h.checkout.Rules()))
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":       "healthy",
		"rulesVersion": h.checkout.Rules().Version,
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}
