package stripe

import (
	"context"
	"net/http"
	"strings"
	"time"

	stripego "github.com/stripe/stripe-go/v79"
	stripeclient "github.com/stripe/stripe-go/v79/client"

	"github.com/davidbz/gamehost/internal/observability"
)

// newAPI builds a Stripe client with its own backends, pointed at config.BaseURL.
// Requests are never retried by the SDK.
func newAPI(config Config) *stripeclient.API {
	backendConfig := &stripego.BackendConfig{
		HTTPClient: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
		LeveledLogger:     observability.FromContext(context.Background()).Sugar(),
		MaxNetworkRetries: stripego.Int64(0),
	}
	if config.BaseURL != "" {
		backendConfig.URL = stripego.String(strings.TrimRight(config.BaseURL, "/"))
	}

	backend := stripego.GetBackendWithConfig(stripego.APIBackend, backendConfig)

	return stripeclient.New(config.SecretKey, &stripego.Backends{
		API:     backend,
		Connect: backend,
		Uploads: backend,
	})
}
