// Package config resolves the gateway's runtime configuration from three
// layered sources and validates the result.
//
// Configuration is assembled in ascending precedence order (later sources
// override earlier ones per field):
//  1. GATEWAY_* environment variables
//  2. The gateway.json file in the working directory, when present
//  3. Command-line flags and positional arguments
//
// Sequence-typed fields are replaced wholesale by a higher-precedence
// source; the nested serverInfo block is the one exception and merges
// sub-field by sub-field. The main entry points are [ParseFlags] for the
// argument vector and [Resolve] for the full merge-and-validate pass.
// [Fields] exposes the schema as a descriptor table consumed by both the
// validation pass and the interactive wizard.
package config
