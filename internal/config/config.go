// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Relaygate Authors

package config

// FileName is the declarative configuration file the engine reads from the
// working directory and the wizard writes back to it.
const FileName = "gateway.json"

// EncryptionMode controls whether the gateway requires encrypted payloads
// from connecting clients.
type EncryptionMode string

// Encryption modes accepted by the gateway.
const (
	EncryptionOptional EncryptionMode = "OPTIONAL"
	EncryptionRequired EncryptionMode = "REQUIRED"
	EncryptionDisabled EncryptionMode = "DISABLED"
)

// DefaultEncryptionMode is applied after merge when no source supplied an
// encryption mode.
const DefaultEncryptionMode = EncryptionOptional

// Config is the resolved, validated runtime configuration for a gateway
// process. It is constructed once per invocation by [Resolve] and is not
// mutated afterwards.
type Config struct {
	// Server is the command that launches the proxied server process:
	// the executable followed by its arguments. Always non-empty.
	Server []string

	// PrivateKey is the hex-encoded signing key of the gateway. The engine
	// treats it as opaque and only enforces a minimum length of 64.
	PrivateKey string

	// Relays are the relay endpoint URIs the gateway announces itself on.
	// Order is preserved but carries no meaning. Always non-empty.
	Relays []string

	// Public marks the gateway as open to any client key. Defaults to false.
	Public bool

	// ServerInfo is optional announcement metadata. Nil when no source
	// supplied any of its sub-fields.
	ServerInfo *ServerInfo

	// AllowedPublicKeys optionally restricts which client keys may connect
	// when the gateway is not public.
	AllowedPublicKeys []string

	// EncryptionMode is one of OPTIONAL, REQUIRED or DISABLED.
	// Defaults to OPTIONAL.
	EncryptionMode EncryptionMode
}

// ServerInfo is the optional announcement metadata block of a resolved
// configuration.
type ServerInfo struct {
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	Website string `json:"website,omitempty"`
}

// Partial is a configuration where only explicitly supplied fields are
// present. Each source extractor produces one Partial; absence is a nil
// pointer or nil slice, never a zero value. The JSON tags double as the
// top-level keys of the declarative file.
type Partial struct {
	Server            []string           `json:"server,omitempty"`
	PrivateKey        *string            `json:"privateKey,omitempty"`
	Relays            []string           `json:"relays,omitempty"`
	Public            *bool              `json:"public,omitempty"`
	ServerInfo        *ServerInfoPartial `json:"serverInfo,omitempty"`
	AllowedPublicKeys []string           `json:"allowedPublicKeys,omitempty"`
	EncryptionMode    *EncryptionMode    `json:"encryptionMode,omitempty"`
}

// ServerInfoPartial mirrors [ServerInfo] with presence-aware fields.
type ServerInfoPartial struct {
	Name    *string `json:"name,omitempty"`
	Picture *string `json:"picture,omitempty"`
	Website *string `json:"website,omitempty"`
}

// finalize converts a fully merged Partial into a Config, applying defaults
// for fields no source supplied. Validation is the caller's business.
func (p *Partial) finalize() *Config {
	cfg := &Config{
		Server:            p.Server,
		Relays:            p.Relays,
		AllowedPublicKeys: p.AllowedPublicKeys,
		EncryptionMode:    DefaultEncryptionMode,
	}
	if p.PrivateKey != nil {
		cfg.PrivateKey = *p.PrivateKey
	}
	if p.Public != nil {
		cfg.Public = *p.Public
	}
	if p.EncryptionMode != nil {
		cfg.EncryptionMode = *p.EncryptionMode
	}
	if p.ServerInfo != nil {
		si := &ServerInfo{}
		if p.ServerInfo.Name != nil {
			si.Name = *p.ServerInfo.Name
		}
		if p.ServerInfo.Picture != nil {
			si.Picture = *p.ServerInfo.Picture
		}
		if p.ServerInfo.Website != nil {
			si.Website = *p.ServerInfo.Website
		}
		cfg.ServerInfo = si
	}
	return cfg
}

// Redacted returns a copy of the configuration safe for logging: the private
// key is masked, everything else is carried over unchanged.
func (cfg *Config) Redacted() *Config {
	out := *cfg
	if out.PrivateKey != "" {
		out.PrivateKey = "<redacted>"
	}
	return &out
}

// Resolve loads, merges, and validates the gateway configuration from all
// three sources in ascending precedence order (last source wins per field):
//  1. Environment variables (environ is an explicit snapshot, GATEWAY_ prefix)
//  2. The gateway.json file in dir, when present
//  3. The already parsed command-line partial
//
// Returns a fully populated *Config or an error if any source fails to load
// or the merged result fails validation.
func Resolve(environ map[string]string, dir string, cli *Partial) (*Config, error) {
	return newConfigBuilder().
		withEnv(environ).
		withFile(dir).
		withPartial(cli).
		build()
}
