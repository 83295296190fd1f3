// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Relaygate Authors

package gateway

import (
	"encoding/hex"
	"fmt"

	"github.com/relaygate/relaygate/internal/config"
	"github.com/relaygate/relaygate/internal/logger"
)

// Gateway holds the runtime view of a resolved configuration: the decoded
// signing key, the server command to supervise and the admission policy for
// client keys.
type Gateway struct {
	privateKey []byte
	server     []string
	relays     []string
	public     bool
	allowed    map[string]struct{}
	info       *config.ServerInfo
	mode       config.EncryptionMode

	log *logger.Logger
}

// New builds a Gateway from an already validated configuration.
// The private key must be valid hex; anything else is a startup error.
func New(cfg *config.Config, log *logger.Logger) (*Gateway, error) {
	key, err := hex.DecodeString(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("error decoding private key: %w", err)
	}

	allowed := make(map[string]struct{}, len(cfg.AllowedPublicKeys))
	for _, pub := range cfg.AllowedPublicKeys {
		allowed[pub] = struct{}{}
	}

	g := &Gateway{
		privateKey: key,
		server:     cfg.Server,
		relays:     cfg.Relays,
		public:     cfg.Public,
		allowed:    allowed,
		info:       cfg.ServerInfo,
		mode:       cfg.EncryptionMode,
		log:        log,
	}

	log.Info().
		Strs("relays", g.relays).
		Str("server", g.server[0]).
		Bool("public", g.public).
		Int("allowed_keys", len(g.allowed)).
		Str("encryption_mode", string(g.mode)).
		Msg("gateway configured")

	return g, nil
}

// Allows reports whether a client with the given public key may connect.
// A public gateway admits everyone; otherwise the key must be listed.
func (g *Gateway) Allows(pub string) bool {
	if g.public {
		return true
	}
	_, ok := g.allowed[pub]
	return ok
}

// ServerCommand returns the executable and arguments of the supervised
// server process.
func (g *Gateway) ServerCommand() (name string, args []string) {
	return g.server[0], g.server[1:]
}

// Relays returns the relay endpoints the gateway announces itself on.
func (g *Gateway) Relays() []string {
	return g.relays
}

// EncryptionMode returns the payload encryption requirement.
func (g *Gateway) EncryptionMode() config.EncryptionMode {
	return g.mode
}

// Info returns the announced gateway metadata, or nil when none was
// configured.
func (g *Gateway) Info() *config.ServerInfo {
	return g.info
}
