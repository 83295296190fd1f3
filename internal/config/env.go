// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Relaygate Authors

package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every configuration variable name.
const EnvPrefix = "GATEWAY_"

// envConfig is the environment-facing schema consumed by caarlos0/env.
// Pointer and slice fields keep absence distinct from an empty value: a
// variable that is not set leaves its field nil.
type envConfig struct {
	Server            *string  `env:"SERVER"`
	PrivateKey        *string  `env:"PRIVATE_KEY"`
	Relays            []string `env:"RELAYS"`
	Public            *bool    `env:"PUBLIC"`
	ServerInfoName    *string  `env:"SERVER_INFO_NAME"`
	ServerInfoPicture *string  `env:"SERVER_INFO_PICTURE"`
	ServerInfoWebsite *string  `env:"SERVER_INFO_WEBSITE"`
	AllowedPublicKeys []string `env:"ALLOWED_PUBLIC_KEYS"`
	EncryptionMode    *string  `env:"ENCRYPTION_MODE"`
}

// parseEnv extracts a partial configuration from the given read-only
// environment snapshot. The snapshot is passed explicitly so the extractor
// stays pure; callers use env.ToMap(os.Environ()) for the real process
// environment.
//
// GATEWAY_SERVER is split into an ordered sequence on whitespace, list
// variables are split on comma, and GATEWAY_PUBLIC is true only for the
// literal string "true".
func parseEnv(environ map[string]string) (*Partial, error) {
	var raw envConfig
	opts := env.Options{
		Environment: environ,
		Prefix:      EnvPrefix,
		FuncMap: map[reflect.Type]env.ParserFunc{
			// strconv.ParseBool also accepts "1", "t", "TRUE" and friends;
			// the gateway only honors the exact literal.
			reflect.TypeOf(true): func(v string) (any, error) {
				return v == "true", nil
			},
		},
	}
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return nil, fmt.Errorf("error reading environment configs: %w", err)
	}

	p := &Partial{
		Relays:            dropEmpty(raw.Relays),
		AllowedPublicKeys: dropEmpty(raw.AllowedPublicKeys),
		Public:            raw.Public,
	}
	if raw.Server != nil && *raw.Server != "" {
		p.Server = strings.Fields(*raw.Server)
	}
	if raw.PrivateKey != nil && *raw.PrivateKey != "" {
		p.PrivateKey = raw.PrivateKey
	}
	if raw.EncryptionMode != nil && *raw.EncryptionMode != "" {
		m := EncryptionMode(*raw.EncryptionMode)
		p.EncryptionMode = &m
	}
	assignInfo(p, raw.ServerInfoName, func(si *ServerInfoPartial, v *string) { si.Name = v })
	assignInfo(p, raw.ServerInfoPicture, func(si *ServerInfoPartial, v *string) { si.Picture = v })
	assignInfo(p, raw.ServerInfoWebsite, func(si *ServerInfoPartial, v *string) { si.Website = v })

	return p, nil
}

func assignInfo(p *Partial, v *string, set func(*ServerInfoPartial, *string)) {
	if v == nil || *v == "" {
		return
	}
	set(serverInfo(p), v)
}

// dropEmpty trims list entries and removes empty segments so that a variable
// set to a bare comma or blank string does not count as a supplied value.
func dropEmpty(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
