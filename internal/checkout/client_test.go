package checkout_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gamehost/internal/checkout"
	"github.com/davidbz/gamehost/internal/config"
	"github.com/davidbz/gamehost/internal/domain"
	httpapi "github.com/davidbz/gamehost/internal/http"
	"github.com/davidbz/gamehost/internal/http/middleware"
	"github.com/davidbz/gamehost/internal/payment/sandbox"
)

func TestClient_CreateSession_SendsOnlyConfiguration(t *testing.T) {
	var (
		body   map[string]any
		header http.Header
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Clone()
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"cs_1","url":"https://pay.example/cs_1","amountMinorUnits":1180,` +
			`"currency":"gbp","display":"£11.80","rulesVersion":"2025-08-01"}`))
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, server.Client())

	session, err := client.CreateSession(context.Background(), domain.DefaultInput(), "attempt-1")
	require.NoError(t, err)
	require.Equal(t, "cs_1", session.ID)
	require.Equal(t, "2025-08-01", session.RulesVersion)

	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	require.Equal(t, []string{"players", "ramGb", "region", "storageGb", "support"}, keys)
	require.Equal(t, "attempt-1", header.Get("Idempotency-Key"))
}

func TestClient_CreateSession_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    domain.RejectionCode
		wantMessage string
		wantField   string
	}{
		{
			name:        "structured error",
			status:      http.StatusUnprocessableEntity,
			body:        `{"error":{"code":"invalid_field","message":"players=501 exceeds max 500","field":"players"}}`,
			wantCode:    domain.RejectionInvalidField,
			wantMessage: "players=501 exceeds max 500",
			wantField:   "players",
		},
		{
			name:        "plain error string",
			status:      http.StatusBadRequest,
			body:        `{"error":"Invalid configuration"}`,
			wantCode:    domain.RejectionMalformedRequest,
			wantMessage: "Invalid configuration",
		},
		{
			name:        "payment failure",
			status:      http.StatusBadGateway,
			body:        `{"error":"Payment provider error"}`,
			wantCode:    domain.RejectionPaymentError,
			wantMessage: "Payment provider error",
		},
		{
			name:        "non json body",
			status:      http.StatusServiceUnavailable,
			body:        "upstream timeout",
			wantCode:    domain.RejectionUnavailable,
			wantMessage: "upstream timeout",
		},
		{
			name:        "empty body",
			status:      http.StatusInternalServerError,
			body:        "",
			wantCode:    domain.RejectionUnavailable,
			wantMessage: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			client := checkout.NewClient(server.URL, server.Client())

			_, err := client.CreateSession(context.Background(), domain.DefaultInput(), "k")

			var rejection *domain.RejectionError
			require.True(t, errors.As(err, &rejection))
			require.Equal(t, tt.wantCode, rejection.Code)
			require.Equal(t, tt.wantMessage, rejection.Message)
			require.Equal(t, tt.wantField, rejection.Field)
			require.Equal(t, tt.status, rejection.StatusCode)
		})
	}
}

func TestClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := checkout.NewClient(url, nil)

	_, err := client.CreateSession(context.Background(), domain.DefaultInput(), "k")

	var rejection *domain.RejectionError
	require.True(t, errors.As(err, &rejection))
	require.Equal(t, domain.RejectionUnavailable, rejection.Code)
}

// newValidatorServer runs the real validator routes over a sandbox gateway.
func newValidatorServer(t *testing.T) (*httptest.Server, *sandbox.Gateway) {
	t.Helper()

	gateway := sandbox.NewGateway("https://sandbox.example/pay")
	service := domain.NewCheckoutService(newEngine(t), gateway, nil, nil)

	cfg := &config.Config{Server: config.ServerConfig{Port: 0}}
	routes := httpapi.NewServer(cfg, httpapi.NewHandler(service), middleware.Chain(middleware.Trace()), nil).Routes()

	server := httptest.NewServer(routes)
	t.Cleanup(server.Close)

	return server, gateway
}

func TestCheckout_EndToEnd(t *testing.T) {
	server, gateway := newValidatorServer(t)
	client := checkout.NewClient(server.URL, server.Client())

	var navigated string
	redirector := checkout.NewHostedRedirector(client, func(_ context.Context, url string) error {
		navigated = url
		return nil
	})

	t.Run("should fetch the same rule table the server prices with", func(t *testing.T) {
		table, err := client.Rules(context.Background())
		require.NoError(t, err)
		require.Equal(t, newEngine(t).Rules().Fingerprint(), table.Fingerprint())

		quote, err := client.Quote(context.Background(), domain.DefaultInput())
		require.NoError(t, err)
		require.Equal(t, int64(1180), quote.AmountMinorUnits)
	})

	t.Run("should open a session and redirect to its page", func(t *testing.T) {
		orchestrator := checkout.NewOrchestrator(newEngine(t), client, redirector)

		in := domain.DefaultInput()
		in.Support = domain.SupportPremium

		require.NoError(t, orchestrator.InitiateCheckout(context.Background(), in))
		require.Contains(t, navigated, "https://sandbox.example/pay/cs_sandbox_")
		require.Equal(t, 1, gateway.Count())
	})

	t.Run("should report an expired session as a redirect error", func(t *testing.T) {
		session, err := client.CreateSession(context.Background(), domain.DefaultInput(), "")
		require.NoError(t, err)
		require.Equal(t, int64(1180), session.AmountMinorUnits)

		gateway.Expire(session.ID)

		err = redirector.Redirect(context.Background(), session.ID)

		var redirectErr *domain.RedirectError
		require.True(t, errors.As(err, &redirectErr))
		require.Equal(t, session.ID, redirectErr.SessionID)
	})

	t.Run("should surface the validator's rejection for an out of range field", func(t *testing.T) {
		in := domain.DefaultInput()
		in.Players = 501

		_, err := client.CreateSession(context.Background(), in, "")

		var rejection *domain.RejectionError
		require.True(t, errors.As(err, &rejection))
		require.Equal(t, domain.RejectionInvalidField, rejection.Code)
		require.Equal(t, domain.FieldPlayers, rejection.Field)
		require.Equal(t, http.StatusUnprocessableEntity, rejection.StatusCode)
	})
}
