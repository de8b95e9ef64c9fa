// Command tinyrsa walks through textbook RSA with primes below 256: it
// generates keys, encrypts and decrypts integer messages, and prints every
// intermediate value.
package main

import (
	"fmt"
	"os"

	"github.com/cronokirby/tinyrsa/internal/config"
	"github.com/cronokirby/tinyrsa/internal/logging"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

type runner struct {
	cfg    config.Config
	logger *zap.Logger
}

func newApp(cfg config.Config) *cli.App {
	r := &runner{cfg: cfg, logger: zap.NewNop()}
	return &cli.App{
		Name:  "tinyrsa",
		Usage: "Textbook RSA over small primes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
				Value: cfg.LogLevel,
			},
			&cli.BoolFlag{
				Name:  "log-development",
				Usage: "Human readable log output",
				Value: cfg.LogDevelopment,
			},
		},
		Before:   r.setup,
		After:    r.teardown,
		Commands: r.commands(),
	}
}

func (r *runner) setup(cCtx *cli.Context) error {
	logger, err := logging.New(cCtx.String("log-level"), cCtx.Bool("log-development"))
	if err != nil {
		return err
	}
	r.logger = logger
	return nil
}

func (r *runner) teardown(*cli.Context) error {
	// Syncing stderr fails on some platforms; nothing useful can be done.
	_ = r.logger.Sync()
	return nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := newApp(cfg).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
