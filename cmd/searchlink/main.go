package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/datalith-io/searchlink/pkg/capabilities"
	"github.com/datalith-io/searchlink/pkg/config"
	"github.com/datalith-io/searchlink/pkg/connector"
	"github.com/datalith-io/searchlink/pkg/connstring"
	"github.com/datalith-io/searchlink/pkg/credentials"
	"github.com/datalith-io/searchlink/pkg/errors"
	"github.com/datalith-io/searchlink/pkg/logger"
	"github.com/datalith-io/searchlink/pkg/observability"
	"github.com/datalith-io/searchlink/pkg/odbc"
)

var version = "1.0.0"

func main() {
	// Load .env file if it exists
	_ = godotenv.Load() // Ignore error if .env doesn't exist

	viper.SetEnvPrefix("SEARCHLINK")
	viper.AutomaticEnv()

	root := &cobra.Command{
		Use:   "searchlink",
		Short: "SearchLink - BI data-source connector for search clusters",
		Long: `SearchLink lets desktop analytics tools query a search-engine cluster
through an ODBC driver. It builds the connection descriptor from host
parameters and stored credentials, declares driver capabilities, and
classifies low-level driver errors into actionable messages.`,
	}

	var configFile, logLevel string
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to connector configuration YAML file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	// Version command
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("SearchLink v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	// Drivers command to show registered drivers
	root.AddCommand(&cobra.Command{
		Use:   "drivers",
		Short: "List registered ODBC drivers",
		Run: func(cmd *cobra.Command, args []string) {
			names := odbc.List()
			if len(names) == 0 {
				fmt.Println("No drivers registered.")
				return
			}
			fmt.Println("Registered drivers:")
			for _, name := range names {
				fmt.Printf("  - %s\n", name)
			}
		},
	})

	// Capabilities command
	root.AddCommand(&cobra.Command{
		Use:   "capabilities",
		Short: "Print the capability profile the connector advertises",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(capabilities.Default())
		},
	})

	// Validate command: build the descriptor without opening a connection
	root.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Build and print the connection descriptor from configuration",
		Long: `Validate loads the connector configuration, resolves the credential,
and builds the connection descriptor without touching the driver. The
printed descriptor has its password redacted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			cred, err := resolveCredential(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			desc, err := connstring.Build(paramsFromConfig(cfg), cred)
			if err != nil {
				return err
			}

			fmt.Println(desc.ConnString().Redacted())
			return nil
		},
	})

	// Connect command: full open against the registered driver
	root.AddCommand(&cobra.Command{
		Use:   "connect",
		Short: "Open the configured data source and report the outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			if err := initObservability(cfg); err != nil {
				return err
			}

			conn, err := connector.New(cfg)
			if err != nil {
				return err
			}

			provider := providerFromConfig(cfg)
			handle, err := conn.Open(cmd.Context(), paramsFromConfig(cfg), provider)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(exitCode(err))
			}
			defer func() {
				if cerr := handle.Close(cmd.Context()); cerr != nil {
					logger.Warn("failed to close handle", zap.Error(cerr))
				}
			}()

			fmt.Printf("Connected to %s\n", handle.DataSourcePath())
			return nil
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig loads the connector configuration from the --config flag or
// the SEARCHLINK_CONFIG environment variable.
func loadConfig() (*config.ConnectorConfig, error) {
	path := viper.GetString("config")
	if path == "" {
		return nil, fmt.Errorf("no configuration file specified; use --config or SEARCHLINK_CONFIG")
	}

	cfg := config.NewConnectorConfig("searchlink", "search")
	if err := config.Load(path, cfg); err != nil {
		return nil, err
	}
	if lvl := viper.GetString("log_level"); lvl != "" {
		cfg.Observability.LogLevel = lvl
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// providerFromConfig selects the credential provider: configured material
// when present, the process environment otherwise.
func providerFromConfig(cfg *config.ConnectorConfig) credentials.Provider {
	if cfg.Security.HasCredentials() {
		return &credentials.ConfigProvider{
			AuthKind:          cfg.Security.AuthKind,
			Material:          cfg.Security.Credentials,
			EncryptConnection: cfg.Security.EncryptConnection,
		}
	}
	return &credentials.EnvProvider{}
}

func resolveCredential(ctx context.Context, cfg *config.ConnectorConfig) (credentials.Credential, error) {
	return providerFromConfig(cfg).Resolve(ctx)
}

func paramsFromConfig(cfg *config.ConnectorConfig) connstring.Parameters {
	return connstring.Parameters{
		Server:         cfg.Connection.Server,
		Port:           cfg.Connection.Port,
		UseSSL:         cfg.Connection.UseSSL,
		VerifyHostname: cfg.Connection.VerifyHostname,
	}
}

// initObservability initializes logging and, when enabled, tracing.
func initObservability(cfg *config.ConnectorConfig) error {
	if err := logger.Init(logger.Config{
		Level:    cfg.Observability.LogLevel,
		Encoding: "console",
	}); err != nil {
		return err
	}

	if cfg.Observability.EnableTracing {
		tc := observability.DefaultConfig()
		tc.ServiceVersion = version
		tc.SamplingRate = cfg.Observability.TracingSampleRate
		if err := observability.Initialize(tc); err != nil {
			return err
		}
	}
	return nil
}

// printJSON pretty-prints a value as JSON to stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// exitCode maps classified errors onto distinct exit codes so scripts can
// branch on the failure category.
func exitCode(err error) int {
	switch {
	case errors.IsType(err, errors.ErrorTypeDriverNotInstalled):
		return 2
	case errors.IsType(err, errors.ErrorTypeHostUnreachable):
		return 3
	case errors.IsType(err, errors.ErrorTypeInvalidInput):
		return 4
	default:
		return 1
	}
}
