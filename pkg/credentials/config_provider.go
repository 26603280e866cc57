package credentials

import "context"

// FromConfig assembles a credential record from configuration material:
// the auth kind string, a key-value credential map ("username", "password",
// "region"), and the optional encrypt flag. The record is validated before
// being returned.
func FromConfig(authKind string, material map[string]string, encrypt *bool) (Credential, error) {
	kind, err := ParseKind(authKind)
	if err != nil {
		return Credential{}, err
	}

	cred := Credential{
		Kind:              kind,
		Username:          material["username"],
		Password:          material["password"],
		Region:            material["region"],
		EncryptConnection: encrypt,
	}

	if err := cred.Validate(); err != nil {
		return Credential{}, err
	}
	return cred, nil
}

// ConfigProvider resolves a credential from already-loaded configuration.
// Region defaulting through the AWS configuration chain applies to key
// credentials that carry no region, matching EnvProvider behavior.
type ConfigProvider struct {
	AuthKind          string
	Material          map[string]string
	EncryptConnection *bool
}

// Resolve assembles and validates the configured credential.
func (p *ConfigProvider) Resolve(ctx context.Context) (Credential, error) {
	kind, err := ParseKind(p.AuthKind)
	if err != nil {
		return Credential{}, err
	}

	cred := Credential{
		Kind:              kind,
		Username:          p.Material["username"],
		Password:          p.Material["password"],
		Region:            p.Material["region"],
		EncryptConnection: p.EncryptConnection,
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
