package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/davidbz/gamehost/internal/payment/stripe"
)

// Config represents the validator service configuration.
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Stripe    stripe.Config
	Redis     RedisConfig
	RateLimit RateLimitConfig
	Rules     RulesConfig
	Payment   PaymentConfig
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"30"`
}

// CORSConfig contains CORS policy settings.
type CORSConfig struct {
	AllowedOrigins   []string `env:"CORS_ALLOWED_ORIGINS"   envSeparator:"," envDefault:"*"`
	AllowedMethods   []string `env:"CORS_ALLOWED_METHODS"   envSeparator:"," envDefault:"GET,POST,OPTIONS"`
	AllowedHeaders   []string `env:"CORS_ALLOWED_HEADERS"   envSeparator:"," envDefault:"Content-Type,Idempotency-Key,X-Request-Id"`
	ExposedHeaders   []string `env:"CORS_EXPOSED_HEADERS"   envSeparator:"," envDefault:"X-Request-Id,X-RateLimit-Limit,X-RateLimit-Remaining,Retry-After"`
	AllowCredentials bool     `env:"CORS_ALLOW_CREDENTIALS"                  envDefault:"false"`
	MaxAge           int      `env:"CORS_MAX_AGE"                            envDefault:"86400"`
}

// RedisConfig contains the session de-duplication store settings.
// An empty Addr disables de-duplication and rate limiting.
type RedisConfig struct {
	Addr       string `env:"REDIS_ADDR"`
	Password   string `env:"REDIS_PASSWORD"`
	DB         int    `env:"REDIS_DB"          envDefault:"0"`
	SessionTTL int    `env:"REDIS_SESSION_TTL" envDefault:"86400"`
}

// RateLimitConfig bounds checkout requests per client address.
type RateLimitConfig struct {
	Requests int `env:"RATE_LIMIT_REQUESTS" envDefault:"20"`
	Window   int `env:"RATE_LIMIT_WINDOW"   envDefault:"60"`
}

// RulesConfig points at an optional rule table overriding the embedded one.
type RulesConfig struct {
	File string `env:"RULES_FILE"`
}

// PaymentConfig selects the payment gateway.
type PaymentConfig struct {
	Gateway        string `env:"PAYMENT_GATEWAY"          envDefault:"sandbox"`
	SandboxPageURL string `env:"PAYMENT_SANDBOX_PAGE_URL" envDefault:"http://localhost:8080/sandbox/pay"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*stripe.Config
	*RedisConfig
	*RateLimitConfig
	*RulesConfig
	*PaymentConfig
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Stripe,
		&cfg.Redis,
		&cfg.RateLimit,
		&cfg.Rules,
		&cfg.Payment,
	}
}
