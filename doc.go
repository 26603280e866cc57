// Package searchlink connects desktop analytics tools to a search-engine
// cluster through an ODBC driver.
//
// The module owns everything that happens before a connection exists: it
// normalizes the user-entered server address, merges connection parameters
// with a resolved credential into the ODBC connection string, declares the
// SQL capability profile the driver should advertise, and classifies
// low-level driver failures into actionable user-facing errors. Query
// execution against the opened data source belongs to the host application
// and the driver.
//
// # Quick Start
//
// Open a cluster as a tabular data source:
//
//	import (
//	    "context"
//	    "github.com/datalith-io/searchlink/pkg/config"
//	    "github.com/datalith-io/searchlink/pkg/connector"
//	    "github.com/datalith-io/searchlink/pkg/connstring"
//	    "github.com/datalith-io/searchlink/pkg/credentials"
//	)
//
//	cfg := config.NewConnectorConfig("analytics", "search")
//	cfg.Connection.Server = "search.internal"
//
//	conn, err := connector.New(cfg)
//	if err != nil {
//	    return err
//	}
//
//	handle, err := conn.Open(context.Background(), connstring.Parameters{
//	    Server:         cfg.Connection.Server,
//	    Port:           cfg.Connection.Port,
//	    UseSSL:         cfg.Connection.UseSSL,
//	    VerifyHostname: cfg.Connection.VerifyHostname,
//	}, credentials.Static(credentials.Credential{
//	    Kind:     credentials.KindUsernamePassword,
//	    Username: "analyst",
//	    Password: "secret",
//	}))
//
// # Key Packages
//
//	pkg/connector    - Facade orchestrating one connection attempt
//	pkg/connstring   - Host normalization and descriptor construction
//	pkg/capabilities - Static capability profile and trace hooks
//	pkg/credentials  - Credential records and providers
//	pkg/odbc         - Driver boundary types and registry
//	pkg/errors       - Structured errors with classification types
//	pkg/config       - Unified YAML configuration
//
// # Driver Registration
//
// The concrete ODBC bridge is an external collaborator. Hosts register it
// once at process start:
//
//	odbc.Register("searchlink", func() (odbc.Driver, error) {
//	    return platformdriver.New(), nil
//	})
package searchlink
