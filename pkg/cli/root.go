package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/saturnines/reservation-exerciser/pkg/config"
	"github.com/saturnines/reservation-exerciser/pkg/dispatcher"
	"github.com/saturnines/reservation-exerciser/pkg/logging"
)

const (
	name           = "exerciser"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
)

// app carries what the Before hook builds for the subcommands.
type app struct {
	doer       dispatcher.HTTPDoer
	logOut     io.Writer
	cfg        *config.Config
	dispatcher *dispatcher.Dispatcher
}

// Option tunes the command tree, mostly for tests.
type Option func(*app)

// WithHTTPDoer routes every call through doer instead of the configured client.
func WithHTTPDoer(doer dispatcher.HTTPDoer) Option {
	return func(a *app) {
		a.doer = doer
	}
}

// WithLogOutput sends log records to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *app) {
		a.logOut = w
	}
}

// NewCommand builds the root command.
func NewCommand(opts ...Option) *cli.Command {
	a := &app{}
	for _, opt := range opts {
		opt(a)
	}
	return newCommand(a)
}

func newCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               fmt.Sprintf("%s (%s)", version, commit),
		EnableShellCompletion: true,
		Usage:                 "Exercise a hotel reservation service over REST and GraphQL",
		Description: `Send create, get, update, delete and list calls for reservations to a
service that exposes both a REST collection and a GraphQL endpoint, and
print the response as indented JSON or as an "Error: ..." line.

# Examples

  exerciser rest create --start 2024-01-01 --end 2024-01-05 --preferences "quiet room"
  exerciser graphql get --id 42
  exerciser form`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file (defaults are used when empty)",
				Sources: cli.EnvVars("EXERCISER_CONFIG"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error)",
				Sources: cli.EnvVars("EXERCISER_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "log format (text, json)",
				Sources: cli.EnvVars("EXERCISER_LOG_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "rest-url",
				Usage:   "REST base URL, overrides rest.base_url",
				Sources: cli.EnvVars("EXERCISER_REST_URL"),
			},
			&cli.StringFlag{
				Name:    "graphql-url",
				Usage:   "GraphQL endpoint, overrides graphql.endpoint",
				Sources: cli.EnvVars("EXERCISER_GRAPHQL_URL"),
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Usage:   "per-call timeout, overrides http.timeout (0 waits forever)",
				Sources: cli.EnvVars("EXERCISER_TIMEOUT"),
			},
			&cli.StringSliceFlag{
				Name:  "header",
				Usage: "extra request header as key=value, repeatable",
			},
		},
		Before: a.before,
		Commands: []*cli.Command{
			transportCmd(a, dispatcher.REST),
			transportCmd(a, dispatcher.GraphQL),
			formCmd(a),
		},
	}
}

// before loads config, applies flag overrides and builds the dispatcher.
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	loader := config.NewDefaultLoader()
	cfg, err := loader.Load(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	if err := applyOverrides(cfg, cmd); err != nil {
		return ctx, err
	}
	if err := loader.Validate(cfg); err != nil {
		return ctx, err
	}

	logger := logging.New(a.logOut, logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	slog.SetDefault(logger)
	slog.Debug("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"rest", cfg.REST.CollectionURL(),
		"graphql", cfg.GraphQL.Endpoint)

	a.cfg = cfg
	a.dispatcher = dispatcher.New(cfg, a.doer, dispatcher.WithLogger(logger))
	return ctx, nil
}

func applyOverrides(cfg *config.Config, cmd *cli.Command) error {
	if v := cmd.String("rest-url"); v != "" {
		cfg.REST.BaseURL = strings.TrimRight(v, "/")
	}
	if v := cmd.String("graphql-url"); v != "" {
		cfg.GraphQL.Endpoint = v
	}
	if cmd.IsSet("timeout") {
		cfg.HTTP.Timeout = cmd.Duration("timeout")
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v := cmd.String("log-format"); v != "" {
		cfg.Log.Format = v
	}

	headers, err := parseHeaders(cmd.StringSlice("header"))
	if err != nil {
		return err
	}
	if len(headers) > 0 && cfg.HTTP.Headers == nil {
		cfg.HTTP.Headers = make(map[string]string, len(headers))
	}
	for k, v := range headers {
		cfg.HTTP.Headers[k] = v
	}
	return nil
}

func parseHeaders(raw []string) (map[string]string, error) {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		k, v, ok := strings.Cut(h, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid header %q, expected key=value", h)
		}
		headers[k] = strings.TrimSpace(v)
	}
	return headers, nil
}

// Execute runs the root command with os.Args and exits non-zero on error.
func Execute(ctx context.Context) {
	if err := NewCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
