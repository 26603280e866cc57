package connector

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datalith-io/searchlink/pkg/config"
	"github.com/datalith-io/searchlink/pkg/connstring"
	"github.com/datalith-io/searchlink/pkg/credentials"
	"github.com/datalith-io/searchlink/pkg/errors"
	"github.com/datalith-io/searchlink/pkg/odbc"
)

// fakeDriver records the connection strings it is opened with and returns a
// scripted handle or error.
type fakeDriver struct {
	mu      sync.Mutex
	opens   []odbc.ConnString
	lastOpt odbc.Options
	openErr error
}

func (d *fakeDriver) Name() string { return "fake" }

func (d *fakeDriver) Open(ctx context.Context, cs odbc.ConnString, opts odbc.Options) (odbc.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opens = append(d.opens, cs)
	d.lastOpt = opts
	if d.openErr != nil {
		return nil, d.openErr
	}
	return &fakeHandle{path: cs["SERVER"]}, nil
}

func (d *fakeDriver) openCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.opens)
}

type fakeHandle struct {
	path   string
	closed bool
}

func (h *fakeHandle) DataSourcePath() string { return h.path }

func (h *fakeHandle) Close(ctx context.Context) error {
	h.closed = true
	return nil
}

// failingProvider always fails credential resolution.
type failingProvider struct{}

func (failingProvider) Resolve(ctx context.Context) (credentials.Credential, error) {
	return credentials.Credential{}, errors.New(errors.ErrorTypeCredential, "vault unavailable")
}

func testConfig() *config.ConnectorConfig {
	cfg := config.NewConnectorConfig("test", "search")
	cfg.Connection.Server = "localhost"
	cfg.Connection.Port = 9200
	cfg.Observability.EnableMetrics = false
	return cfg
}

func testParams(cfg *config.ConnectorConfig) connstring.Parameters {
	return connstring.Parameters{
		Server:         cfg.Connection.Server,
		Port:           cfg.Connection.Port,
		UseSSL:         cfg.Connection.UseSSL,
		VerifyHostname: cfg.Connection.VerifyHostname,
	}
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Connection.Port = -1
	_, err := New(cfg, WithDriver(&fakeDriver{}))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeConfig))
}

func TestOpenSuccess(t *testing.T) {
	drv := &fakeDriver{}
	cfg := testConfig()
	conn, err := New(cfg, WithDriver(drv))
	require.NoError(t, err)

	cred := credentials.Credential{
		Kind:     credentials.KindUsernamePassword,
		Username: "analyst",
		Password: "pw",
	}

	handle, err := conn.Open(context.Background(), testParams(cfg), credentials.Static(cred))
	require.NoError(t, err)
	require.NotNil(t, handle)
	defer handle.Close(context.Background())

	require.Equal(t, 1, drv.openCount())
	cs := drv.opens[0]
	assert.Equal(t, connstring.DriverName, cs["DRIVER"])
	assert.Equal(t, "https://localhost:9200", cs["SERVER"])
	assert.Equal(t, "BASIC", cs["AUTH"])
	assert.Equal(t, "analyst", cs["UID"])
	assert.Equal(t, "pw", cs["PWD"])
	assert.Equal(t, "1", cs["USESSL"])
	assert.Equal(t, "1", cs["HOSTNAMEVERIFICATION"])

	assert.Equal(t, "https://localhost:9200", handle.DataSourcePath())

	// The capability profile and both hooks ride along on every open.
	assert.Equal(t, conn.Capabilities(), drv.lastOpt.Capabilities)
	assert.NotNil(t, drv.lastOpt.OnTypeInfo)
	assert.NotNil(t, drv.lastOpt.OnColumns)
	assert.Equal(t, cfg.Timeouts.Connection, drv.lastOpt.ConnectTimeout)
}

func TestOpenInvalidInputSkipsDriver(t *testing.T) {
	drv := &fakeDriver{}
	cfg := testConfig()
	conn, err := New(cfg, WithDriver(drv))
	require.NoError(t, err)

	params := testParams(cfg)
	params.Server = "   "

	_, err = conn.Open(context.Background(), params,
		credentials.Static(credentials.Credential{Kind: credentials.KindImplicit}))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeInvalidInput))
	assert.Equal(t, 0, drv.openCount(), "driver must not be called with malformed input")
}

func TestOpenCredentialFailureSkipsDriver(t *testing.T) {
	drv := &fakeDriver{}
	cfg := testConfig()
	conn, err := New(cfg, WithDriver(drv))
	require.NoError(t, err)

	_, err = conn.Open(context.Background(), testParams(cfg), failingProvider{})
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeCredential))
	assert.Equal(t, 0, drv.openCount())
}

func TestOpenClassifiesDriverFailure(t *testing.T) {
	drv := &fakeDriver{openErr: &odbc.DriverError{
		Message: "connection refused",
		Detail: odbc.ErrorDetail{
			DataSourcePath: "https://localhost:9200",
			OdbcErrors:     []odbc.SQLError{{NativeError: 202, SQLState: "08001", Message: "connection refused"}},
		},
	}}

	cfg := testConfig()
	conn, err := New(cfg, WithDriver(drv))
	require.NoError(t, err)

	_, err = conn.Open(context.Background(), testParams(cfg),
		credentials.Static(credentials.Credential{Kind: credentials.KindImplicit}))
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeHostUnreachable))
	assert.Contains(t, err.Error(), "localhost:9200")
}

func TestOpenPassesThroughUnrecognizedFailure(t *testing.T) {
	openErr := &odbc.DriverError{
		Message: "quota exceeded",
		Detail: odbc.ErrorDetail{
			DataSourcePath: "https://localhost:9200",
			OdbcErrors:     []odbc.SQLError{{NativeError: 9000, SQLState: "HY000", Message: "quota exceeded"}},
		},
	}
	drv := &fakeDriver{openErr: openErr}

	cfg := testConfig()
	conn, err := New(cfg, WithDriver(drv))
	require.NoError(t, err)

	_, err = conn.Open(context.Background(), testParams(cfg),
		credentials.Static(credentials.Credential{Kind: credentials.KindImplicit}))
	require.Error(t, err)
	assert.Same(t, openErr, err, "unrecognized driver errors surface verbatim")
}

func TestDescribeDoesNotTouchDriver(t *testing.T) {
	drv := &fakeDriver{}
	cfg := testConfig()
	conn, err := New(cfg, WithDriver(drv))
	require.NoError(t, err)

	desc, err := conn.Describe(context.Background(), testParams(cfg),
		credentials.Static(credentials.Credential{Kind: credentials.KindImplicit}))
	require.NoError(t, err)
	assert.Equal(t, "https://localhost:9200", desc.Address())
	assert.Equal(t, 0, drv.openCount())
}

func TestCapabilitiesStableAcrossCalls(t *testing.T) {
	cfg := testConfig()
	conn, err := New(cfg, WithDriver(&fakeDriver{}))
	require.NoError(t, err)

	first := conn.Capabilities()
	second := conn.Capabilities()
	assert.Equal(t, first, second)

	// Mutating a returned copy does not leak back into the connector.
	first.ConnectionPooling = false
	assert.True(t, conn.Capabilities().ConnectionPooling)
}
