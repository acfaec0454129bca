package stripe

import "strings"

// Config contains Stripe Checkout configuration.
type Config struct {
	SecretKey  string `env:"STRIPE_SECRET_KEY"`
	BaseURL    string `env:"STRIPE_BASE_URL"    envDefault:"https://api.stripe.com"`
	SuccessURL string `env:"STRIPE_SUCCESS_URL" envDefault:"http://localhost:5173/?checkout=success"`
	CancelURL  string `env:"STRIPE_CANCEL_URL"  envDefault:"http://localhost:5173/?checkout=cancelled"`
	Timeout    int    `env:"STRIPE_TIMEOUT"     envDefault:"30"`
}

// IsTestMode reports whether the configured key is a test-mode key.
func (c Config) IsTestMode() bool {
	return strings.HasPrefix(c.SecretKey, "sk_test_")
}
