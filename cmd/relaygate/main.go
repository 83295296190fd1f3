package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"

	"github.com/relaygate/relaygate/internal/config"
	"github.com/relaygate/relaygate/internal/gateway"
	"github.com/relaygate/relaygate/internal/logger"
	"github.com/relaygate/relaygate/internal/wizard"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fl, err := config.ParseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		fmt.Print(config.Usage)
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if fl.ShowVersion {
		printBuildInfo()
		return
	}

	if fl.RunInit {
		if err := wizard.Run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log := logger.NewLogger("relaygate")

	cfg, err := config.Resolve(env.ToMap(os.Environ()), ".", fl.Partial)
	if err != nil {
		log.Fatal().Err(err).Msg("error resolving configuration")
	}

	log.Debug().Any("config", cfg.Redacted()).Msg("resolved configuration")

	if _, err := gateway.New(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("error starting gateway")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
