package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *ConnectorConfig {
	cfg := NewConnectorConfig("analytics", "search")
	cfg.Connection.Server = "search.internal"
	return cfg
}

func TestNewConnectorConfigDefaults(t *testing.T) {
	cfg := NewConnectorConfig("analytics", "search")

	assert.Equal(t, "analytics", cfg.Name)
	assert.Equal(t, "search", cfg.Type)
	assert.Equal(t, 9200, cfg.Connection.Port)
	assert.True(t, cfg.Connection.UseSSL)
	assert.True(t, cfg.Connection.VerifyHostname)
	assert.Equal(t, 10*time.Second, cfg.Timeouts.Connection)
	assert.Equal(t, "implicit", cfg.Security.AuthKind)
	assert.True(t, cfg.Security.IsEncrypted(), "encryption defaults on")
	assert.False(t, cfg.Security.HasCredentials())
	assert.Equal(t, "info", cfg.Observability.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ConnectorConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(c *ConnectorConfig) {}},
		{name: "missing name", mutate: func(c *ConnectorConfig) { c.Name = "" }, wantErr: "name is required"},
		{name: "missing type", mutate: func(c *ConnectorConfig) { c.Type = "" }, wantErr: "type is required"},
		{name: "missing server", mutate: func(c *ConnectorConfig) { c.Connection.Server = "" }, wantErr: "connection.server is required"},
		{name: "zero port", mutate: func(c *ConnectorConfig) { c.Connection.Port = 0 }, wantErr: "connection.port must be positive"},
		{name: "port too large", mutate: func(c *ConnectorConfig) { c.Connection.Port = 70000 }, wantErr: "connection.port must not exceed 65535"},
		{name: "bad auth kind", mutate: func(c *ConnectorConfig) { c.Security.AuthKind = "basic" }, wantErr: "auth_kind"},
		{name: "bad sample rate", mutate: func(c *ConnectorConfig) { c.Observability.TracingSampleRate = 1.5 }, wantErr: "tracing_sample_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEncryptionToggle(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.Security.IsEncrypted())

	off := false
	cfg.Security.EncryptConnection = &off
	assert.False(t, cfg.Security.IsEncrypted())
}

func TestLoadYAML(t *testing.T) {
	content := `
name: analytics
type: search
connection:
  server: search.internal
  port: 9243
  use_ssl: true
  verify_hostname: false
security:
  auth_kind: username_password
  credentials:
    username: analyst
    password: ${SLTEST_CONFIG_PASSWORD}
observability:
  enable_tracing: true
  log_level: debug
`
	t.Setenv("SLTEST_CONFIG_PASSWORD", "fromenv")

	path := filepath.Join(t.TempDir(), "connector.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg := NewConnectorConfig("placeholder", "placeholder")
	require.NoError(t, Load(path, cfg))

	assert.Equal(t, "analytics", cfg.Name)
	assert.Equal(t, "search", cfg.Type)
	assert.Equal(t, "search.internal", cfg.Connection.Server)
	assert.Equal(t, 9243, cfg.Connection.Port)
	assert.True(t, cfg.Connection.UseSSL)
	assert.False(t, cfg.Connection.VerifyHostname)
	assert.Equal(t, "username_password", cfg.Security.AuthKind)
	assert.Equal(t, "fromenv", cfg.Security.Credentials["password"], "env vars substitute into values")
	assert.True(t, cfg.Observability.EnableTracing)
	assert.Equal(t, "debug", cfg.Observability.LogLevel)

	require.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	err := Load(filepath.Join(t.TempDir(), "absent.yaml"), &ConnectorConfig{})
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	cfg := validConfig()
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, Save(path, cfg))

	loaded := &ConnectorConfig{}
	require.NoError(t, Load(path, loaded))
	assert.Equal(t, cfg.Name, loaded.Name)
	assert.Equal(t, cfg.Connection, loaded.Connection)
}
