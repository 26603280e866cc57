// Package capabilities declares the feature surface the connector advertises
// to its host: which SQL features the underlying driver supports and which
// type-info behaviors it exposes. The profile is a plain immutable value,
// computed once and shared by every connection attempt without locking.
package capabilities

// Profile describes the SQL features and type-info behaviors the driver
// should expose to the host. It is static configuration, never mutated at
// runtime, and safe to share across arbitrarily many concurrent opens.
type Profile struct {
	// SupportedAggregateFunctions advertises aggregate-function support
	SupportedAggregateFunctions string `json:"supported_aggregate_functions"`
	// SQLConformance is the declared SQL standard conformance level
	SQLConformance string `json:"sql_conformance"`

	// Literal support
	SupportsNumericLiterals      bool `json:"supports_numeric_literals"`
	SupportsStringLiterals       bool `json:"supports_string_literals"`
	SupportsOdbcDateLiterals     bool `json:"supports_odbc_date_literals"`
	SupportsOdbcTimeLiterals     bool `json:"supports_odbc_time_literals"`
	SupportsOdbcTimestampLiteral bool `json:"supports_odbc_timestamp_literals"`

	// SupportsTop is false: the driver paginates with LIMIT/OFFSET, not TOP
	SupportsTop bool `json:"supports_top"`
	// SupportsNativeQuery is false: no passthrough SQL surface
	SupportsNativeQuery bool `json:"supports_native_query"`
	// HierarchicalNavigation is false: tables are navigated schema-flattened
	HierarchicalNavigation bool `json:"hierarchical_navigation"`

	// Conversion tolerances
	TolerantNumericUpconversion bool `json:"tolerant_numeric_upconversion"`
	TolerantConcatOverflow      bool `json:"tolerant_concat_overflow"`

	// ConnectionPooling enables driver-side connection pooling
	ConnectionPooling bool `json:"connection_pooling"`
}

// Conformance and aggregate constants mirror the ODBC capability vocabulary.
const (
	SQLConformanceSQL92Full = "SQL_SC_SQL92_FULL"
	AggregateFunctionsAll   = "ALL"
)

var defaultProfile = Profile{
	SupportedAggregateFunctions:  AggregateFunctionsAll,
	SQLConformance:               SQLConformanceSQL92Full,
	SupportsNumericLiterals:      true,
	SupportsStringLiterals:       true,
	SupportsOdbcDateLiterals:     true,
	SupportsOdbcTimeLiterals:     true,
	SupportsOdbcTimestampLiteral: true,
	SupportsTop:                  false,
	SupportsNativeQuery:          false,
	HierarchicalNavigation:       false,
	TolerantNumericUpconversion:  true,
	TolerantConcatOverflow:       true,
	ConnectionPooling:            true,
}

// Default returns the process-wide capability profile. The returned value is
// a copy; mutating it does not affect other callers.
func Default() Profile {
	return defaultProfile
}
