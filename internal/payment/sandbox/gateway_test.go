package sandbox_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/gamehost/internal/domain"
	"github.com/davidbz/gamehost/internal/payment/sandbox"
)

func TestGateway_CreateAndResolve(t *testing.T) {
	gateway := sandbox.NewGateway("https://sandbox.example/pay/")
	ctx := context.Background()

	session, err := gateway.CreateSession(ctx, &domain.SessionRequest{AmountMinorUnits: 1180, Currency: "gbp"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(session.ID, "cs_sandbox_"))
	require.Equal(t, "https://sandbox.example/pay/"+session.ID, session.URL)
	require.Equal(t, int64(1180), session.AmountMinorUnits)
	require.Equal(t, "sandbox", session.Gateway)
	require.False(t, session.ExpiresAt.IsZero())

	resolved, err := gateway.ResolveSession(ctx, session.ID)
	require.NoError(t, err)
	require.Equal(t, session.URL, resolved.URL)

	other, err := gateway.CreateSession(ctx, &domain.SessionRequest{AmountMinorUnits: 1880, Currency: "gbp"})
	require.NoError(t, err)
	require.NotEqual(t, session.ID, other.ID)
	require.Equal(t, 2, gateway.Count())
}

func TestGateway_Errors(t *testing.T) {
	gateway := sandbox.NewGateway("")
	ctx := context.Background()

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		_, err := gateway.CreateSession(ctx, &domain.SessionRequest{AmountMinorUnits: 0})
		require.Error(t, err)
	})

	t.Run("should reject a nil request", func(t *testing.T) {
		_, err := gateway.CreateSession(ctx, nil)
		require.Error(t, err)
	})

	t.Run("should not resolve an unknown session", func(t *testing.T) {
		_, err := gateway.ResolveSession(ctx, "cs_sandbox_missing")
		require.ErrorContains(t, err, "no such checkout session")
	})

	t.Run("should not resolve an expired session", func(t *testing.T) {
		session, err := gateway.CreateSession(ctx, &domain.SessionRequest{AmountMinorUnits: 300})
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(session.URL, "http://localhost:8080/sandbox/pay/"))

		gateway.Expire(session.ID)

		_, err = gateway.ResolveSession(ctx, session.ID)
		require.ErrorContains(t, err, "has expired")
	})
}
