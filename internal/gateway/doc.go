// Package gateway turns a resolved configuration into the runtime state the
// process operates on: the decoded signing key, the server command and the
// client admission policy.
package gateway
