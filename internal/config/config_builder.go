package config

import (
	"errors"
	"fmt"
	"reflect"

	"dario.cat/mergo"
)

type configBuilder struct {
	partials []*Partial
	err      error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		partials: make([]*Partial, 0, 3),
	}
}

// build merges the collected partials in the order they were added, with
// each later partial overriding the earlier ones per field. Sequence fields
// are replaced wholesale; the nested serverInfo block is the one exception
// and merges sub-field by sub-field. The merged result is defaulted and
// validated before it is handed out.
func (b *configBuilder) build() (*Config, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error building config: %w", b.err)
	}

	merged := new(Partial)
	for _, p := range b.partials {
		err := mergo.Merge(merged, p, mergo.WithOverride, mergo.WithTransformers(presenceTransformer{}))
		if err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	cfg := merged.finalize()
	return cfg, cfg.validate()
}

func (b *configBuilder) withEnv(environ map[string]string) *configBuilder {
	envCfg, err := parseEnv(environ)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.partials = append(b.partials, envCfg)
	return b
}

func (b *configBuilder) withFile(dir string) *configBuilder {
	fileCfg, err := parseFile(dir)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.partials = append(b.partials, fileCfg)
	return b
}

func (b *configBuilder) withPartial(p *Partial) *configBuilder {
	if p != nil {
		b.partials = append(b.partials, p)
	}
	return b
}

// presenceTransformer makes mergo honor presence semantics for scalar
// pointer fields: a non-nil source pointer always wins, even when it points
// at a zero value such as false or "". Without it mergo would keep a lower
// layer's true over an explicit --public=false.
type presenceTransformer struct{}

func (presenceTransformer) Transformer(t reflect.Type) func(dst, src reflect.Value) error {
	switch t {
	case reflect.TypeOf((*bool)(nil)),
		reflect.TypeOf((*string)(nil)),
		reflect.TypeOf((*EncryptionMode)(nil)):
		return func(dst, src reflect.Value) error {
			if !src.IsNil() && dst.CanSet() {
				dst.Set(src)
			}
			return nil
		}
	}
	return nil
}
