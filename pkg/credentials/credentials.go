// Package credentials defines the authentication record the connector reads
// for the duration of a single connection attempt, and the Provider interface
// through which the host supplies it.
//
// The original host environment exposed the credential as ambient state; here
// it is an explicit Provider parameter passed into the connector facade, so
// tests and embedding hosts control exactly what the connector sees.
package credentials

import (
	"context"
	"os"
	"strconv"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/datalith-io/searchlink/pkg/errors"
)

// Kind is the authentication mode of a credential record.
type Kind string

const (
	// KindImplicit carries no authentication material
	KindImplicit Kind = "implicit"
	// KindUsernamePassword carries a username and password pair
	KindUsernamePassword Kind = "username_password"
	// KindKey carries a signature-based key (an AWS SigV4 region identifier)
	KindKey Kind = "key"
)

// ParseKind converts an authentication-kind string into a Kind.
// It fails fast on unrecognized values rather than silently defaulting.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindImplicit:
		return KindImplicit, nil
	case KindUsernamePassword:
		return KindUsernamePassword, nil
	case KindKey:
		return KindKey, nil
	default:
		return "", errors.New(errors.ErrorTypeCredential, "unrecognized authentication kind").
			WithDetail("auth_kind", s)
	}
}

// Credential is the caller-supplied authentication record. It is owned by the
// host; the connector only reads it while building one connection descriptor.
//
// EncryptConnection is an independent toggle from the transport scheme: nil
// means "not specified" and defaults to encrypted.
type Credential struct {
	Kind     Kind
	Username string
	Password string
	// Region is the AWS SigV4 region identifier used in place of a password
	// for KindKey credentials.
	Region string
	// EncryptConnection controls the ODBC channel-encryption flag;
	// nil defaults to encrypted.
	EncryptConnection *bool
}

// Validate checks that the credential carries the material its kind requires.
func (c Credential) Validate() error {
	switch c.Kind {
	case KindImplicit:
		return nil
	case KindUsernamePassword:
		if c.Username == "" {
			return errors.New(errors.ErrorTypeCredential, "username is required for username_password credentials")
		}
		return nil
	case KindKey:
		if c.Region == "" {
			return errors.New(errors.ErrorTypeCredential, "region is required for key credentials")
		}
		return nil
	default:
		return errors.New(errors.ErrorTypeCredential, "unrecognized authentication kind").
			WithDetail("auth_kind", string(c.Kind))
	}
}

// Encrypted returns the effective channel-encryption setting.
// An unset EncryptConnection defaults to encrypted.
func (c Credential) Encrypted() bool {
	return c.EncryptConnection == nil || *c.EncryptConnection
}

// Provider supplies the credential record for a connection attempt.
// Implementations must be safe for concurrent use.
type Provider interface {
	Resolve(ctx context.Context) (Credential, error)
}

// StaticProvider returns a fixed credential record. Useful for tests and
// hosts that manage credential storage themselves.
type StaticProvider struct {
	Credential Credential
}

// Static wraps a credential in a StaticProvider.
func Static(c Credential) *StaticProvider {
	return &StaticProvider{Credential: c}
}

// Resolve returns the stored credential after validating it.
func (p *StaticProvider) Resolve(ctx context.Context) (Credential, error) {
	if err := p.Credential.Validate(); err != nil {
		return Credential{}, err
	}
	return p.Credential, nil
}

// EnvProvider reads the credential record from environment variables:
//
//	<PREFIX>_AUTH_KIND  — implicit | username_password | key
//	<PREFIX>_USERNAME   — username for username_password
//	<PREFIX>_PASSWORD   — password for username_password
//	<PREFIX>_REGION     — SigV4 region for key
//	<PREFIX>_ENCRYPT    — true | false; unset defaults to encrypted
//
// An empty Prefix defaults to "SEARCHLINK". For key credentials with no
// region set, the AWS default configuration chain (shared config files,
// instance metadata) is consulted for a region.
type EnvProvider struct {
	Prefix string
}

// Resolve reads and validates the credential from the environment.
func (p *EnvProvider) Resolve(ctx context.Context) (Credential, error) {
	prefix := p.Prefix
	if prefix == "" {
		prefix = "SEARCHLINK"
	}

	kindRaw := os.Getenv(prefix + "_AUTH_KIND")
	if kindRaw == "" {
		kindRaw = string(KindImplicit)
	}
	kind, err := ParseKind(kindRaw)
	if err != nil {
		return Credential{}, err
	}

	cred := Credential{
		Kind:     kind,
		Username: os.Getenv(prefix + "_USERNAME"),
		Password: os.Getenv(prefix + "_PASSWORD"),
		Region:   os.Getenv(prefix + "_REGION"),
	}

	if raw := os.Getenv(prefix + "_ENCRYPT"); raw != "" {
		enc, err := strconv.ParseBool(raw)
		if err != nil {
			return Credential{}, errors.Wrap(err, errors.ErrorTypeCredential, "invalid encrypt flag").
				WithDetail("variable", prefix+"_ENCRYPT").
				WithDetail("value", raw)
		}
		cred.EncryptConnection = &enc
	}

	if cred.Kind == KindKey && cred.Region == "" {
		region, err := defaultRegion(ctx)
		if err != nil {
			return Credential{}, err
		}
		cred.Region = region
	}

	if err := cred.Validate(); err != nil {
		return Credential{}, err
	}
	return cred, nil
}

// defaultRegion resolves the SigV4 region from the AWS default configuration
// chain when the environment record does not carry one.
func defaultRegion(ctx context.Context) (string, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrorTypeCredential, "failed to load AWS configuration for SigV4 region")
	}
	if cfg.Region == "" {
		return "", errors.New(errors.ErrorTypeCredential, "no SigV4 region configured")
	}
	return cfg.Region, nil
}
