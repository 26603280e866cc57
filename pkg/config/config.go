// Package config provides the unified configuration system for searchlink.
// It defines a single ConnectorConfig structure that every connection attempt
// is parameterized by, ensuring consistent configuration across the module.
//
// The configuration is organized into logical sections:
//   - Connection: Server address, port, SSL, hostname verification
//   - Timeouts: Connection and credential-resolution timeouts
//   - Security: Authentication kind and credential material
//   - Observability: Logging, tracing, metrics
//
// Example usage:
//
//	cfg := config.NewConnectorConfig("analytics", "search")
//	cfg.Connection.Server = "search.internal"
//	cfg.Connection.Port = 9200
//
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"time"
)

// ConnectorConfig is the single unified configuration structure for the
// connector. The Connection section carries per-attempt parameters supplied
// by the host UI; the remaining sections are process-lifetime settings fixed
// at construction time.
type ConnectorConfig struct {
	// Name identifies the connector instance
	Name string `yaml:"name" json:"name"`
	// Type specifies the connector flavor (e.g., "search", "search-aws")
	Type string `yaml:"type" json:"type"`
	// Version indicates the configuration version
	Version string `yaml:"version" json:"version"`

	// Connection holds the host-supplied connection parameters
	Connection ConnectionConfig `yaml:"connection" json:"connection"`

	// Timeouts define various timeout durations
	Timeouts TimeoutConfig `yaml:"timeouts" json:"timeouts"`

	// Security configuration for authentication and encryption
	Security SecurityConfig `yaml:"security" json:"security"`

	// Observability settings for monitoring and debugging
	Observability ObservabilityConfig `yaml:"observability" json:"observability"`
}

// ConnectionConfig carries the four host-supplied connection parameters.
// Server may contain a full URL pasted by the user; only its host component
// is retained when the descriptor is built.
type ConnectionConfig struct {
	// Server is the cluster hostname, or a URL whose host component is used
	Server string `yaml:"server" json:"server"`
	// Port is the cluster port; always authoritative over any port embedded in Server
	Port int `yaml:"port" json:"port"`
	// UseSSL selects https over http for the cluster address
	UseSSL bool `yaml:"use_ssl" json:"use_ssl"`
	// VerifyHostname controls certificate hostname verification;
	// independent of channel encryption
	VerifyHostname bool `yaml:"verify_hostname" json:"verify_hostname"`
	// Driver names the registered driver to open the data source with;
	// empty selects the default driver
	Driver string `yaml:"driver" json:"driver"`
}

// TimeoutConfig contains all timeout-related settings.
// These prevent operations from hanging indefinitely.
type TimeoutConfig struct {
	// Connection timeout for establishing connections
	Connection time.Duration `yaml:"connection" json:"connection"`
	// Credential timeout for resolving credential material
	Credential time.Duration `yaml:"credential" json:"credential"`
}

// SecurityConfig contains security and authentication settings.
type SecurityConfig struct {
	// AuthKind specifies the authentication method
	// ("implicit", "username_password", "key")
	AuthKind string `yaml:"auth_kind" json:"auth_kind"`
	// Credentials stores authentication material (use env vars in production)
	Credentials map[string]string `yaml:"credentials" json:"credentials"`
	// EncryptConnection controls channel encryption; nil defaults to encrypted
	EncryptConnection *bool `yaml:"encrypt_connection" json:"encrypt_connection"`
}

// ObservabilityConfig contains monitoring and observability settings.
// EnableTracing also gates the diagnostic metadata hooks the connector
// installs on the driver; it is fixed for the process lifetime.
type ObservabilityConfig struct {
	// EnableMetrics activates metrics collection
	EnableMetrics bool `yaml:"enable_metrics" json:"enable_metrics"`
	// EnableTracing activates tracing and the metadata trace hooks
	EnableTracing bool `yaml:"enable_tracing" json:"enable_tracing"`
	// EnableLogging controls logging output
	EnableLogging bool `yaml:"enable_logging" json:"enable_logging"`
	// LogLevel sets logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`
	// TracingSampleRate controls trace sampling (0.0-1.0)
	TracingSampleRate float64 `yaml:"tracing_sample_rate" json:"tracing_sample_rate"`
}

// NewConnectorConfig creates a new ConnectorConfig with sensible defaults.
// Specific deployments override these as needed.
//
// Parameters:
//   - name: The connector instance name
//   - connectorType: The connector flavor (e.g., "search")
//
// Example:
//
//	cfg := config.NewConnectorConfig("analytics", "search")
//	cfg.Connection.Server = "search.internal"
func NewConnectorConfig(name, connectorType string) *ConnectorConfig {
	return &ConnectorConfig{
		Name:    name,
		Type:    connectorType,
		Version: "1.0.0",
		Connection: ConnectionConfig{
			Port:           9200,
			UseSSL:         true,
			VerifyHostname: true,
		},
		Timeouts: TimeoutConfig{
			Connection: 10 * time.Second,
			Credential: 5 * time.Second,
		},
		Security: SecurityConfig{
			AuthKind:    "implicit",
			Credentials: make(map[string]string),
		},
		Observability: ObservabilityConfig{
			EnableMetrics:     true,
			EnableTracing:     false,
			EnableLogging:     true,
			LogLevel:          "info",
			TracingSampleRate: 0.1,
		},
	}
}

// Validate validates the configuration for correctness.
// It checks required fields and ensures values are within acceptable ranges.
// Callers should invoke this after loading configuration to catch errors early.
func (cc *ConnectorConfig) Validate() error {
	if cc.Name == "" {
		return fmt.Errorf("name is required")
	}
	if cc.Type == "" {
		return fmt.Errorf("type is required")
	}
	if cc.Connection.Server == "" {
		return fmt.Errorf("connection.server is required")
	}
	if cc.Connection.Port <= 0 {
		return fmt.Errorf("connection.port must be positive")
	}
	if cc.Connection.Port > 65535 {
		return fmt.Errorf("connection.port must not exceed 65535")
	}
	switch cc.Security.AuthKind {
	case "implicit", "username_password", "key":
	default:
		return fmt.Errorf("security.auth_kind must be one of implicit, username_password, key")
	}
	if cc.Observability.TracingSampleRate < 0 || cc.Observability.TracingSampleRate > 1 {
		return fmt.Errorf("observability.tracing_sample_rate must be between 0 and 1")
	}
	return nil
}

// HasCredentials returns true if credential material is configured
func (s *SecurityConfig) HasCredentials() bool {
	return len(s.Credentials) > 0
}

// IsEncrypted returns the effective channel-encryption setting;
// an unset EncryptConnection defaults to encrypted.
func (s *SecurityConfig) IsEncrypted() bool {
	return s.EncryptConnection == nil || *s.EncryptConnection
}
