package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind distinguishes the value shapes the engine works with. The wizard uses
// it to pick the prompt style and input parsing for a field.
type Kind int

const (
	// KindString is a single free-form string.
	KindString Kind = iota
	// KindStringList is an ordered sequence entered as comma-separated text.
	KindStringList
	// KindCommand is an ordered sequence entered as whitespace-separated text.
	KindCommand
	// KindBool is a yes/no value.
	KindBool
	// KindEnum is a string restricted to a fixed set of choices.
	KindEnum
)

// FieldSpec describes one configuration field: its declarative-file path,
// shape, optionality, validation rule and the human-readable description the
// wizard prompts with. The table returned by [Fields] is the single source
// of truth consumed by both the post-merge validation pass and the wizard.
type FieldSpec struct {
	// Path is the camel-case field path, matching the declarative file keys
	// (nested sub-fields use a dotted path such as "serverInfo.name").
	Path string

	// Kind selects how raw input is parsed and prompted for.
	Kind Kind

	// Optional marks fields the schema accepts as absent.
	Optional bool

	// Secret marks fields whose input should be masked when prompted for.
	Secret bool

	// Description is the prompt text shown by the wizard.
	Description string

	// Choices lists the accepted values for KindEnum fields.
	Choices []string

	rule   string
	value  func(*Config) any
	assign func(*Partial, string)
}

var validate = validator.New()

// Fields returns the schema as an ordered field-descriptor table. The order
// matches the wizard's prompt sequence.
func Fields() []FieldSpec {
	return []FieldSpec{
		{
			Path:        "server",
			Kind:        KindCommand,
			Description: "Command that starts the server process (executable and arguments)",
			rule:        "required,min=1",
			value:       func(c *Config) any { return c.Server },
			assign:      func(p *Partial, raw string) { p.Server = strings.Fields(raw) },
		},
		{
			Path:        "privateKey",
			Kind:        KindString,
			Secret:      true,
			Description: "Hex-encoded signing key of the gateway (at least 64 characters)",
			rule:        "required,min=64",
			value:       func(c *Config) any { return c.PrivateKey },
			assign:      func(p *Partial, raw string) { p.PrivateKey = &raw },
		},
		{
			Path:        "relays",
			Kind:        KindStringList,
			Description: "Relay endpoint URIs the gateway announces itself on",
			rule:        "required,min=1,dive,required",
			value:       func(c *Config) any { return c.Relays },
			assign:      func(p *Partial, raw string) { p.Relays = splitList(raw) },
		},
		{
			Path:        "public",
			Kind:        KindBool,
			Optional:    true,
			Description: "Accept connections from any client key",
			assign: func(p *Partial, raw string) {
				v := raw == "true"
				p.Public = &v
			},
		},
		{
			Path:        "serverInfo.name",
			Kind:        KindString,
			Optional:    true,
			Description: "Announced display name of the gateway",
			assign: func(p *Partial, raw string) {
				serverInfo(p).Name = &raw
			},
		},
		{
			Path:        "serverInfo.picture",
			Kind:        KindString,
			Optional:    true,
			Description: "Announced picture URL of the gateway",
			assign: func(p *Partial, raw string) {
				serverInfo(p).Picture = &raw
			},
		},
		{
			Path:        "serverInfo.website",
			Kind:        KindString,
			Optional:    true,
			Description: "Announced website URL of the gateway",
			assign: func(p *Partial, raw string) {
				serverInfo(p).Website = &raw
			},
		},
		{
			Path:        "allowedPublicKeys",
			Kind:        KindStringList,
			Optional:    true,
			Description: "Client public keys allowed to connect",
			assign:      func(p *Partial, raw string) { p.AllowedPublicKeys = splitList(raw) },
		},
		{
			Path:        "encryptionMode",
			Kind:        KindEnum,
			Optional:    true,
			Description: "Payload encryption requirement",
			Choices:     []string{string(EncryptionOptional), string(EncryptionRequired), string(EncryptionDisabled)},
			rule:        "required,oneof=OPTIONAL REQUIRED DISABLED",
			value:       func(c *Config) any { return string(c.EncryptionMode) },
			assign: func(p *Partial, raw string) {
				m := EncryptionMode(raw)
				p.EncryptionMode = &m
			},
		},
	}
}

// Validate checks a single raw wizard input against the field's rule and
// returns the violation messages, or nil when the candidate is acceptable.
// Sequence-typed fields are parsed before validation so that length rules
// apply to the split value, not the raw text.
func (f FieldSpec) Validate(raw string) []string {
	if f.rule == "" {
		return nil
	}

	var err error
	switch f.Kind {
	case KindStringList:
		err = validate.Var(splitList(raw), f.rule)
	case KindCommand:
		err = validate.Var(strings.Fields(raw), f.rule)
	default:
		err = validate.Var(raw, f.rule)
	}
	if err == nil {
		return nil
	}

	var msgs []string
	for _, v := range violations(f, err) {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

// Apply stores raw input into the partial, parsing it according to the
// field's kind. Callers validate first; Apply never rejects.
func (f FieldSpec) Apply(p *Partial, raw string) {
	f.assign(p, raw)
}

// violations maps a validator error to field-level violations attributed to
// the descriptor's path.
func violations(f FieldSpec, err error) []FieldViolation {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldViolation{{Field: f.Path, Message: err.Error()}}
	}

	out := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldViolation{Field: f.Path, Message: violationMessage(f, fe)})
	}
	return out
}

func violationMessage(f FieldSpec, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min", "gte":
		if f.Kind == KindStringList || f.Kind == KindCommand {
			return "must not be empty"
		}
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "oneof":
		return "must be one of " + strings.Join(f.Choices, ", ")
	}
	return "is invalid"
}

// splitList splits raw comma-separated input into an ordered sequence,
// trimming whitespace and dropping empty segments.
func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// serverInfo returns the partial's nested ServerInfo block, creating it on
// first use so the block is present only when a sub-field was supplied.
func serverInfo(p *Partial) *ServerInfoPartial {
	if p.ServerInfo == nil {
		p.ServerInfo = &ServerInfoPartial{}
	}
	return p.ServerInfo
}
