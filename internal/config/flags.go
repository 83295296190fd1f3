package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
)

// Usage is the help text printed for -h/--help.
const Usage = `relaygate - expose a local server process over relay endpoints

Usage:
  relaygate [server command...] [flags]
  relaygate --server <cmd> [args...] [flags]
  relaygate --init

Flags:
  --server <cmd> [args...]      command that starts the server process
  --private-key <hex>           hex-encoded signing key (at least 64 characters)
  --relays <uri>                relay endpoint URI (repeatable)
  --public                      accept connections from any client key
  --server-info-name <name>     announced display name
  --server-info-picture <url>   announced picture URL
  --server-info-website <url>   announced website URL
  --allowed-public-keys <key>   allowed client public key (repeatable)
  --encryption-mode <mode>      OPTIONAL, REQUIRED or DISABLED (default OPTIONAL)
  --init                        run the interactive configuration wizard
  -h, --help                    print this help and exit
  -v, --version                 print version information and exit

Configuration may also come from gateway.json in the working directory and
from GATEWAY_* environment variables. Command-line flags take precedence over
the file, which takes precedence over the environment.
`

// Flags is everything extracted from the argument vector: the command-line
// partial configuration plus the switches that short-circuit resolution.
type Flags struct {
	Partial     *Partial
	ShowVersion bool
	RunInit     bool
}

// stringList collects repeatable flag values in encounter order.
// It implements the flag.Value interface.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

// ParseFlags parses the given argument vector (os.Args[1:]) into a partial
// configuration. List-typed flags may be repeated; the server command comes
// either from the -server flag, which consumes all following non-flag
// tokens, or from the leading positional arguments.
//
// Returns flag.ErrHelp unwrapped when -h or --help was requested so callers
// can print [Usage] and exit cleanly.
func ParseFlags(args []string) (*Flags, error) {
	server, rest, err := splitServerCommand(args)
	if err != nil {
		return nil, err
	}

	var (
		privateKey     string
		relays         stringList
		public         bool
		infoName       string
		infoPicture    string
		infoWebsite    string
		allowedKeys    stringList
		encryptionMode string
		showVersion    bool
		runInit        bool
	)

	fs := flag.NewFlagSet("relaygate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&privateKey, "private-key", "", "hex-encoded signing key")
	fs.Var(&relays, "relays", "relay endpoint URI (repeatable)")
	fs.BoolVar(&public, "public", false, "accept connections from any client key")
	fs.StringVar(&infoName, "server-info-name", "", "announced display name")
	fs.StringVar(&infoPicture, "server-info-picture", "", "announced picture URL")
	fs.StringVar(&infoWebsite, "server-info-website", "", "announced website URL")
	fs.Var(&allowedKeys, "allowed-public-keys", "allowed client public key (repeatable)")
	fs.StringVar(&encryptionMode, "encryption-mode", "", "one of OPTIONAL, REQUIRED, DISABLED")
	fs.BoolVar(&showVersion, "v", false, "print version information and exit")
	fs.BoolVar(&showVersion, "version", false, "print version information and exit (alias)")
	fs.BoolVar(&runInit, "init", false, "run the interactive configuration wizard")

	if err := fs.Parse(rest); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, flag.ErrHelp
		}
		return nil, fmt.Errorf("error parsing command-line flags: %w", err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedArgs, strings.Join(fs.Args(), " "))
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	p := &Partial{Server: server}
	if set["private-key"] {
		p.PrivateKey = &privateKey
	}
	if len(relays) > 0 {
		p.Relays = relays
	}
	if set["public"] {
		p.Public = &public
	}
	if set["server-info-name"] {
		serverInfo(p).Name = &infoName
	}
	if set["server-info-picture"] {
		serverInfo(p).Picture = &infoPicture
	}
	if set["server-info-website"] {
		serverInfo(p).Website = &infoWebsite
	}
	if len(allowedKeys) > 0 {
		p.AllowedPublicKeys = allowedKeys
	}
	if set["encryption-mode"] {
		m := EncryptionMode(encryptionMode)
		p.EncryptionMode = &m
	}

	return &Flags{Partial: p, ShowVersion: showVersion, RunInit: runInit}, nil
}

// splitServerCommand separates the server command tokens from the rest of
// the argument vector. The command may be supplied either as leading
// positional arguments (everything before the first flag) or through the
// -server flag, which consumes every following non-flag token. Supplying
// both forms at once is rejected.
func splitServerCommand(args []string) (server, rest []string, err error) {
	var leading, fromFlag []string

	i := 0
	for i < len(args) && !strings.HasPrefix(args[i], "-") {
		leading = append(leading, args[i])
		i++
	}

	for i < len(args) {
		name, inline, hasInline := strings.Cut(args[i], "=")
		if name != "-server" && name != "--server" {
			rest = append(rest, args[i])
			i++
			continue
		}

		i++
		if hasInline && inline != "" {
			fromFlag = append(fromFlag, inline)
		}
		for i < len(args) && !strings.HasPrefix(args[i], "-") {
			fromFlag = append(fromFlag, args[i])
			i++
		}
		if len(fromFlag) == 0 {
			return nil, nil, errors.New("flag -server needs at least one argument")
		}
	}

	if len(leading) > 0 && len(fromFlag) > 0 {
		return nil, nil, ErrConflictingServerCommand
	}
	if len(fromFlag) > 0 {
		return fromFlag, rest, nil
	}
	return leading, rest, nil
}
