// Package wizard implements the interactive setup flow that produces the
// gateway.json declarative file.
//
// The wizard walks the configuration schema's field descriptors in order,
// one prompt per field, validating each candidate value against the field's
// own rule and re-prompting with the collected reasons on failure. The
// accumulated partial configuration is rendered for review and, on
// confirmation, written to gateway.json in the working directory. The
// running process's configuration is never touched; the wizard's only output
// is the file.
package wizard
