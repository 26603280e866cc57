// Package connector is the entry point the host calls to open a search
// cluster as a tabular data source. It orchestrates credential resolution,
// descriptor construction, capability declaration, and the driver-open call,
// and classifies driver failures into user-facing errors.
//
// # Usage
//
//	cfg := config.NewConnectorConfig("analytics", "search")
//	cfg.Connection.Server = "search.internal"
//
//	conn, err := connector.New(cfg)
//	if err != nil {
//	    return err
//	}
//
//	handle, err := conn.Open(ctx, connstring.Parameters{
//	    Server:         cfg.Connection.Server,
//	    Port:           cfg.Connection.Port,
//	    UseSSL:         cfg.Connection.UseSSL,
//	    VerifyHostname: cfg.Connection.VerifyHostname,
//	}, credentials.Static(cred))
//
// # Concurrency
//
// A Connector holds no mutable state between opens: descriptor construction
// is pure, the capability profile is immutable, and the trace switch is fixed
// at construction. Concurrent Open calls are safe.
package connector

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/datalith-io/searchlink/pkg/capabilities"
	"github.com/datalith-io/searchlink/pkg/config"
	"github.com/datalith-io/searchlink/pkg/connstring"
	"github.com/datalith-io/searchlink/pkg/credentials"
	"github.com/datalith-io/searchlink/pkg/errors"
	"github.com/datalith-io/searchlink/pkg/logger"
	"github.com/datalith-io/searchlink/pkg/metrics"
	"github.com/datalith-io/searchlink/pkg/observability"
	"github.com/datalith-io/searchlink/pkg/odbc"
)

// Version is the connector version reported to the host.
const Version = "1.0.0"

// Connector opens search-cluster data sources through a registered ODBC
// driver. Construct with New; safe for concurrent use.
type Connector struct {
	cfg     *config.ConnectorConfig
	logger  *zap.Logger
	driver  odbc.Driver
	profile capabilities.Profile

	collector *metrics.Collector
	tracer    *observability.ConnectorTracer

	// traceEnabled gates the diagnostic metadata hooks and the per-open
	// span. Fixed for the connector's lifetime.
	traceEnabled bool
}

// Option customizes a Connector during construction.
type Option func(*Connector)

// WithDriver injects the driver directly, bypassing the registry. Used by
// hosts that manage their own driver instance and by tests.
func WithDriver(d odbc.Driver) Option {
	return func(c *Connector) { c.driver = d }
}

// WithLogger overrides the default structured logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Connector) { c.logger = l }
}

// New validates the configuration and assembles a connector. The driver is
// resolved from the global registry by the configured name unless one is
// injected with WithDriver.
func New(cfg *config.ConnectorConfig, opts ...Option) (*Connector, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrorTypeConfig, "configuration is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "invalid connector configuration")
	}

	c := &Connector{
		cfg:          cfg,
		logger:       logger.Get().With(zap.String("connector", cfg.Name)),
		profile:      capabilities.Default(),
		tracer:       observability.NewConnectorTracer(cfg.Type, cfg.Name),
		traceEnabled: cfg.Observability.EnableTracing,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.driver == nil {
		drv, err := odbc.Create(cfg.Connection.Driver)
		if err != nil {
			return nil, err
		}
		c.driver = drv
	}

	if cfg.Observability.EnableMetrics {
		c.collector = metrics.NewCollector(cfg.Name)
	}

	c.logger.Info("connector initialized",
		zap.String("type", cfg.Type),
		zap.String("driver", c.driver.Name()),
		zap.String("version", Version),
		zap.Bool("tracing", c.traceEnabled))

	return c, nil
}

// Name returns the connector instance name
func (c *Connector) Name() string {
	return c.cfg.Name
}

// Capabilities returns the static capability profile shared by every
// connection attempt.
func (c *Connector) Capabilities() capabilities.Profile {
	return c.profile
}

// Describe builds the connection descriptor for the given parameters and
// credential without opening a connection. Used for configuration
// validation and diagnostics.
func (c *Connector) Describe(ctx context.Context, params connstring.Parameters, provider credentials.Provider) (connstring.Descriptor, error) {
	cred, err := provider.Resolve(ctx)
	if err != nil {
		return connstring.Descriptor{}, err
	}
	return connstring.Build(params, cred)
}

// Open resolves the credential, builds the connection descriptor, attaches
// the capability profile and diagnostic hooks, and invokes the driver.
// Malformed input fails before any driver call; driver failures come back
// classified. No retries happen here; retry policy belongs to the host.
func (c *Connector) Open(ctx context.Context, params connstring.Parameters, provider credentials.Provider) (odbc.Handle, error) {
	var span *observability.Span
	if c.traceEnabled {
		ctx, span = c.tracer.StartSpan(ctx, "open")
		defer span.End()
	}

	cred, err := provider.Resolve(ctx)
	if err != nil {
		c.logger.Error("credential resolution failed", zap.Error(err))
		return nil, errors.Wrap(err, errors.ErrorTypeCredential, "failed to resolve credential")
	}

	desc, err := connstring.Build(params, cred)
	if err != nil {
		// Fails fast; the driver is never called with malformed input.
		c.logger.Error("descriptor construction failed", zap.Error(err))
		return nil, err
	}

	cs := desc.ConnString()
	opts := odbc.Options{
		Capabilities:   c.profile,
		OnTypeInfo:     capabilities.NewTypeInfoHook(c.logger, c.traceEnabled),
		OnColumns:      capabilities.NewColumnsHook(c.logger, c.traceEnabled),
		ConnectTimeout: c.cfg.Timeouts.Connection,
	}

	if span != nil {
		span.SetAttribute("data_source", desc.Address())
		span.SetAttribute("auth", desc.Auth)
	}

	c.logger.Debug("opening data source",
		zap.String("data_source", desc.Address()),
		zap.String("conn_string", cs.Redacted()))

	start := time.Now()
	handle, err := c.driver.Open(ctx, cs, opts)
	elapsed := time.Since(start)

	if c.collector != nil {
		c.collector.RecordOpen(c.driver.Name(), err == nil, elapsed)
	}

	if err != nil {
		classified := Classify(err)
		if c.collector != nil {
			c.collector.RecordFailure(c.driver.Name(), Category(classified))
		}
		c.logger.Error("open failed",
			zap.String("data_source", desc.Address()),
			zap.String("category", Category(classified)),
			zap.Error(classified))
		return nil, classified
	}

	if c.collector != nil {
		c.collector.HandleOpened()
	}

	c.logger.Info("data source opened",
		zap.String("data_source", desc.Address()),
		zap.Duration("elapsed", elapsed))

	return &trackedHandle{Handle: handle, c: c}, nil
}

// trackedHandle decrements the active-handle gauge when the host closes
// the data source.
type trackedHandle struct {
	odbc.Handle
	c *Connector
}

func (h *trackedHandle) Close(ctx context.Context) error {
	if h.c.collector != nil {
		h.c.collector.HandleClosed()
	}
	return h.Handle.Close(ctx)
}
