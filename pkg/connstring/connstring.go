// Package connstring builds the fully resolved connection descriptor for one
// connection attempt. It merges the host-supplied connection parameters with
// the resolved credential into the key-value connection string the driver
// boundary consumes.
//
// Everything here is pure data transformation: no network I/O, no shared
// state, one descriptor per attempt.
package connstring

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/datalith-io/searchlink/pkg/credentials"
	"github.com/datalith-io/searchlink/pkg/errors"
	"github.com/datalith-io/searchlink/pkg/odbc"
)

// DriverName is the ODBC driver name stamped into every descriptor.
const DriverName = "SearchLink ODBC Driver"

// Auth field values handed to the driver.
const (
	AuthNone     = "NONE"
	AuthBasic    = "BASIC"
	AuthAWSSigV4 = "AWS_SIGV4"
)

// Parameters are the host-supplied inputs for one connection attempt.
// Server may itself contain a scheme or port fragment pasted by the user;
// only its host component is retained, with Port and UseSSL authoritative.
type Parameters struct {
	Server         string
	Port           int
	UseSSL         bool
	VerifyHostname bool
}

// Descriptor is the merged output of parameters and credential: the fully
// resolved set of fields used to open one connection attempt. Built fresh
// per attempt, never mutated after construction.
type Descriptor struct {
	DriverName string
	Host       string
	Port       int
	Scheme     string

	// HostnameVerification and UseSSL are independent 0/1 toggles; a
	// connection may disable certificate validation while still encrypting.
	HostnameVerification int
	UseSSL               int

	Auth     string
	Username string
	Password string
	Region   string
}

// Address returns the composed cluster address, scheme://host:port.
func (d Descriptor) Address() string {
	return d.Scheme + "://" + d.Host + ":" + strconv.Itoa(d.Port)
}

// ConnString renders the descriptor as the key-value map the driver-open
// call consumes.
func (d Descriptor) ConnString() odbc.ConnString {
	cs := odbc.ConnString{
		"DRIVER":               d.DriverName,
		"SERVER":               d.Address(),
		"AUTH":                 d.Auth,
		"USESSL":               strconv.Itoa(d.UseSSL),
		"HOSTNAMEVERIFICATION": strconv.Itoa(d.HostnameVerification),
	}
	switch d.Auth {
	case AuthBasic:
		cs["UID"] = d.Username
		cs["PWD"] = d.Password
	case AuthAWSSigV4:
		cs["REGION"] = d.Region
	}
	return cs
}

// NormalizeServer extracts the host component from a user-entered server
// string, discarding any scheme or embedded port. Users routinely paste full
// URLs ("http://localhost", "https://srv.com:9999"); only the structured
// Port and UseSSL inputs govern the final address.
//
// Empty strings, embedded whitespace, and strings with no extractable host
// fail with an invalid_input error.
func NormalizeServer(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errors.New(errors.ErrorTypeInvalidInput, "server cannot be empty").
			WithDetail("server", raw)
	}
	if strings.ContainsAny(trimmed, " \t") {
		return "", errors.New(errors.ErrorTypeInvalidInput, "server cannot contain whitespace").
			WithDetail("server", raw)
	}

	candidate := trimmed
	if !strings.Contains(candidate, "://") {
		// Force URL-style parsing so an embedded port is split off the host.
		candidate = "//" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeInvalidInput, "cannot parse server string").
			WithDetail("server", raw)
	}

	host := u.Hostname()
	if host == "" {
		return "", errors.New(errors.ErrorTypeInvalidInput, "cannot extract host from server string").
			WithDetail("server", raw)
	}
	return host, nil
}

// Build combines connection parameters and a resolved credential into a
// descriptor. It fails with invalid_input for malformed parameters and with
// a credential error for unrecognized authentication kinds; no silent
// defaulting takes place.
func Build(params Parameters, cred credentials.Credential) (Descriptor, error) {
	host, err := NormalizeServer(params.Server)
	if err != nil {
		return Descriptor{}, err
	}

	if params.Port <= 0 {
		return Descriptor{}, errors.New(errors.ErrorTypeInvalidInput, "port must be positive").
			WithDetail("port", params.Port)
	}

	scheme := "http"
	if params.UseSSL {
		scheme = "https"
	}

	d := Descriptor{
		DriverName: DriverName,
		Host:       host,
		Port:       params.Port,
		Scheme:     scheme,
	}

	switch cred.Kind {
	case credentials.KindImplicit:
		d.Auth = AuthNone
	case credentials.KindUsernamePassword:
		d.Auth = AuthBasic
		d.Username = cred.Username
		d.Password = cred.Password
	case credentials.KindKey:
		d.Auth = AuthAWSSigV4
		d.Region = cred.Region
	default:
		return Descriptor{}, errors.New(errors.ErrorTypeCredential, "unrecognized authentication kind").
			WithDetail("auth_kind", string(cred.Kind))
	}

	// Channel encryption defaults on; only an explicit false disables it.
	// Independent of the transport scheme above.
	if cred.Encrypted() {
		d.UseSSL = 1
	}

	if params.VerifyHostname {
		d.HostnameVerification = 1
	}

	return d, nil
}
