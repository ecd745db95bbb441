package config

import "time"

// Config is the full exerciser configuration
type Config struct {
	REST    REST        `yaml:"rest"`            // REST collaborator
	GraphQL GraphQL     `yaml:"graphql"`         // GraphQL collaborator
	HTTP    HTTP        `yaml:"http,omitempty"`  // Shared HTTP client settings
	Retry   RetryConfig `yaml:"retry,omitempty"` // Optional retries, off by default
	Log     Log         `yaml:"log,omitempty"`   // Logging
}

// REST locates the reservations collection
type REST struct {
	BaseURL string `yaml:"base_url" validate:"required"` // e.g. http://localhost:8080
	Path    string `yaml:"path,omitempty"`               // collection path, default /api/reservations
}

// CollectionURL joins base URL and path
func (r REST) CollectionURL() string {
	return r.BaseURL + r.Path
}

// GraphQL locates the GraphQL endpoint
type GraphQL struct {
	Endpoint string `yaml:"endpoint" validate:"required"` // full URL, e.g. http://localhost:8080/graphql
}

// HTTP holds settings shared by both transports
type HTTP struct {
	// Timeout of zero leaves the client without a deadline.
	Timeout time.Duration     `yaml:"timeout,omitempty"`
	Headers map[string]string `yaml:"headers,omitempty" validate:"dive,keys,required,endkeys"`
}

// RetryConfig controls the retry transport. MaxAttempts <= 1 disables it.
type RetryConfig struct {
	MaxAttempts       int     `yaml:"max_attempts,omitempty"`
	InitialBackoff    float64 `yaml:"initial_backoff,omitempty"` // seconds
	BackoffMultiplier float64 `yaml:"backoff_multiplier,omitempty"`
	RetryableStatuses []int   `yaml:"retryable_statuses,omitempty"`
}

// Log configures the slog handler
type Log struct {
	Level  string `yaml:"level,omitempty" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=text json"`
}

// Default values
const (
	DefaultBaseURL         = "http://localhost:8080"
	DefaultCollectionPath  = "/api/reservations"
	DefaultGraphQLEndpoint = "http://localhost:8080/graphql"
)
