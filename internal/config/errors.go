package config

import "errors"

// Command-line grammar errors returned by [ParseFlags].
var (
	// ErrConflictingServerCommand indicates that the server command was
	// supplied both through the -server flag and as leading positional
	// arguments. The two forms are mutually exclusive.
	ErrConflictingServerCommand = errors.New("server command supplied both as -server flag and as positional arguments")
	// ErrUnexpectedArgs indicates positional tokens after the first flag
	// that no flag consumed.
	ErrUnexpectedArgs = errors.New("unexpected arguments")
)
