// Package odbc defines the boundary between the connector and the platform
// ODBC driver: the connection-string map handed to the driver, the options
// (capability profile plus diagnostic hooks) attached to an open call, and
// the structured error record drivers raise on failure.
//
// The driver itself is an external collaborator. This package only carries
// the types that cross the boundary and a registry through which hosts plug
// in the concrete bridge implementation at process start.
package odbc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/datalith-io/searchlink/pkg/capabilities"
)

// ConnString is the key-value connection string handed to the driver-open
// call. Built fresh per attempt and consumed exactly once.
type ConnString map[string]string

// String renders the connection string in canonical KEY=value; form with
// stable key order.
func (cs ConnString) String() string {
	keys := make([]string, 0, len(cs))
	for k := range cs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(cs[k])
		b.WriteByte(';')
	}
	return b.String()
}

// Redacted renders the connection string with secret values masked,
// suitable for logs and diagnostics.
func (cs ConnString) Redacted() string {
	masked := make(ConnString, len(cs))
	for k, v := range cs {
		if k == "PWD" {
			masked[k] = "****"
			continue
		}
		masked[k] = v
	}
	return masked.String()
}

// Options carries the per-open configuration attached alongside the
// connection string: the static capability profile and the diagnostic
// metadata hooks.
type Options struct {
	Capabilities capabilities.Profile
	OnTypeInfo   capabilities.TypeInfoHook
	OnColumns    capabilities.ColumnsHook

	// ConnectTimeout is enforced by the driver and transport, not by the
	// connector itself. Zero means driver default.
	ConnectTimeout time.Duration
}

// Handle is an open tabular data source returned by a successful driver
// open. Query execution against the handle belongs to the host application.
type Handle interface {
	// DataSourcePath returns the resolved address the handle is bound to
	DataSourcePath() string
	// Close releases the underlying driver connection
	Close(ctx context.Context) error
}

// Driver opens data sources from connection strings. Implementations wrap
// the platform ODBC layer; they are registered once at process start.
type Driver interface {
	// Name returns the driver identifier used for registry lookup
	Name() string
	// Open establishes a connection, returning a handle or a *DriverError
	Open(ctx context.Context, cs ConnString, opts Options) (Handle, error)
}

// SQLError is one entry of the driver's diagnostic record.
type SQLError struct {
	// NativeError is the vendor-specific numeric error code
	NativeError int
	// SQLState is the five-character ODBC state code
	SQLState string
	// Message is the driver-reported diagnostic text
	Message string
}

// ErrorDetail is the structured detail attached to a raised driver error.
type ErrorDetail struct {
	// DataSourcePath is the resolved address of the failed attempt
	DataSourcePath string
	// OdbcErrors lists the driver diagnostic records, most specific first
	OdbcErrors []SQLError
}

// DriverError is the error record the driver boundary raises on a failed
// open. It preserves the full original detail so unrecognized failures can
// surface verbatim.
type DriverError struct {
	Message string
	Detail  ErrorDetail
}

// Error implements the error interface.
func (e *DriverError) Error() string {
	return fmt.Sprintf("odbc: %s (data source %s)", e.Message, e.Detail.DataSourcePath)
}

// NativeError returns the first native error code in the diagnostic record,
// or 0 when the record is empty.
func (e *DriverError) NativeError() int {
	if len(e.Detail.OdbcErrors) == 0 {
		return 0
	}
	return e.Detail.OdbcErrors[0].NativeError
}
