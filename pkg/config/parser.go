package config

import (
	"fmt"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/saturnines/reservation-exerciser/pkg/errors"
)

type ValidationError struct {
	Field   string
	Message string
}

// Returns the string representation of validation error
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Validator interface {
	Validate(cfg *Config) []ValidationError
}

// DefaultValueSetter fills in values the file left out
type DefaultValueSetter interface {
	SetDefaults(cfg *Config)
}

// VariableExpander defines the interface for expanding variables
type VariableExpander interface {
	Expand(data []byte) []byte
}

// EnvExpander implements VariableExpander using environment variables
type EnvExpander struct{}

// Expand expands environment variables with the given data
func (e *EnvExpander) Expand(data []byte) []byte {
	expanded := os.Expand(string(data), os.Getenv)
	return []byte(expanded)
}

// Loader reads exerciser configuration
type Loader struct {
	expander      VariableExpander
	validators    []Validator
	defaultSetter DefaultValueSetter
}

// NewLoader creates a new Loader with the given components
func NewLoader(
	expander VariableExpander,
	defaultSetter DefaultValueSetter,
	validators ...Validator,
) *Loader {
	return &Loader{
		expander:      expander,
		validators:    validators,
		defaultSetter: defaultSetter,
	}
}

// NewDefaultLoader wires env expansion, defaults and every validator.
func NewDefaultLoader() *Loader {
	return NewLoader(
		&EnvExpander{},
		&Defaults{},
		NewTagValidator(),
		&EndpointValidator{},
		&RetryValidator{},
	)
}

// Load reads a YAML file. An empty path yields the defaults.
func (l *Loader) Load(path string) (*Config, error) {
	if path == "" {
		return l.Parse(nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to read file")
	}

	return l.Parse(data)
}

// Parse parses a yaml config
func (l *Loader) Parse(data []byte) (*Config, error) {
	if l.expander != nil && len(data) > 0 {
		data = l.expander.Expand(data)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.WrapError(err, errors.ErrConfiguration, "failed to parse YAML")
	}

	if l.defaultSetter != nil {
		l.defaultSetter.SetDefaults(&cfg)
	}

	if err := l.Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate runs every validator and joins their findings.
func (l *Loader) Validate(cfg *Config) error {
	var allErrors []ValidationError
	for _, validator := range l.validators {
		allErrors = append(allErrors, validator.Validate(cfg)...)
	}

	if len(allErrors) > 0 {
		return fmt.Errorf("%w: %v", errors.ErrValidation, allErrors)
	}
	return nil
}

// Defaults implements DefaultValueSetter for Config
type Defaults struct{}

// SetDefaults points both transports at a local service and leaves
// retries off.
func (d *Defaults) SetDefaults(cfg *Config) {
	if cfg.REST.BaseURL == "" {
		cfg.REST.BaseURL = DefaultBaseURL
	}
	if cfg.REST.Path == "" {
		cfg.REST.Path = DefaultCollectionPath
	}
	if cfg.GraphQL.Endpoint == "" {
		cfg.GraphQL.Endpoint = DefaultGraphQLEndpoint
	}
	if cfg.Retry.MaxAttempts == 0 {
		cfg.Retry.MaxAttempts = 1
	}
	if cfg.Retry.MaxAttempts > 1 {
		if cfg.Retry.InitialBackoff == 0 {
			cfg.Retry.InitialBackoff = 0.2
		}
		if cfg.Retry.BackoffMultiplier == 0 {
			cfg.Retry.BackoffMultiplier = 2
		}
		if len(cfg.Retry.RetryableStatuses) == 0 {
			cfg.Retry.RetryableStatuses = []int{502, 503, 504}
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// EndpointValidator checks that both collaborators have absolute http(s) URLs
type EndpointValidator struct{}

// Validate checks the REST base URL and the GraphQL endpoint
func (v *EndpointValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	if msg := checkURL(cfg.REST.BaseURL); msg != "" {
		errs = append(errs, ValidationError{Field: "rest.base_url", Message: msg})
	}
	if cfg.REST.Path != "" && cfg.REST.Path[0] != '/' {
		errs = append(errs, ValidationError{Field: "rest.path", Message: "must start with '/'"})
	}
	if msg := checkURL(cfg.GraphQL.Endpoint); msg != "" {
		errs = append(errs, ValidationError{Field: "graphql.endpoint", Message: msg})
	}
	if cfg.HTTP.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "http.timeout", Message: "must not be negative"})
	}

	return errs
}

// checkURL leaves empty values to the required tag.
func checkURL(raw string) string {
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "missing host"
	}
	return ""
}

// RetryValidator validates retry settings
type RetryValidator struct{}

// Validate checks that retry configuration is usable
func (v *RetryValidator) Validate(cfg *Config) []ValidationError {
	var errs []ValidationError

	r := cfg.Retry
	if r.MaxAttempts < 0 {
		errs = append(errs, ValidationError{Field: "retry.max_attempts", Message: "must not be negative"})
	}
	if r.MaxAttempts <= 1 {
		return errs
	}
	if r.InitialBackoff < 0 {
		errs = append(errs, ValidationError{Field: "retry.initial_backoff", Message: "must not be negative"})
	}
	if r.BackoffMultiplier < 1 {
		errs = append(errs, ValidationError{Field: "retry.backoff_multiplier", Message: "must be at least 1"})
	}
	for _, status := range r.RetryableStatuses {
		if status < 100 || status > 599 {
			errs = append(errs, ValidationError{
				Field:   "retry.retryable_statuses",
				Message: fmt.Sprintf("invalid HTTP status: %d", status),
			})
		}
	}

	return errs
}
