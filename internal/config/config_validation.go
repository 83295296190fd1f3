// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Relaygate Authors

package config

import (
	"strings"
)

// FieldViolation is one schema violation, attributed to the camel-case field
// path it occurred on.
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError collects every field-level violation found during one
// validation pass. Validation is fail-fast per field but never stops at the
// first offending field.
type ValidationError []FieldViolation

func (e ValidationError) Error() string {
	parts := make([]string, 0, len(e))
	for _, v := range e {
		parts = append(parts, v.Field+" "+v.Message)
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// validate checks the resolved configuration against every descriptor rule
// in the schema table. All violations are collected; a non-nil return is
// always a [ValidationError].
func (cfg *Config) validate() error {
	var verr ValidationError
	for _, f := range Fields() {
		if f.rule == "" {
			continue
		}
		if err := validate.Var(f.value(cfg), f.rule); err != nil {
			verr = append(verr, violations(f, err)...)
		}
	}

	if len(verr) > 0 {
		return verr
	}
	return nil
}
