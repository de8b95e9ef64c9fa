package main

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"github.com/cronokirby/tinyrsa/internal/randutil"
	"github.com/cronokirby/tinyrsa/rsa"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func (r *runner) seedFlag() cli.Flag {
	return &cli.Uint64Flag{
		Name:  "seed",
		Usage: "Seed for a reproducible key (0 uses crypto/rand)",
		Value: r.cfg.Seed,
	}
}

func (r *runner) commands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "demo",
			Usage: "Generate a key, then encrypt and decrypt one message",
			Flags: []cli.Flag{
				r.seedFlag(),
				&cli.Uint64Flag{Name: "p", Usage: "First prime (with --q and --e, skips key generation)"},
				&cli.Uint64Flag{Name: "q", Usage: "Second prime"},
				&cli.Uint64Flag{Name: "e", Usage: "Public exponent"},
				&cli.Uint64Flag{
					Name:    "message",
					Aliases: []string{"m"},
					Usage:   "Message to encrypt; read from stdin when absent",
				},
			},
			Action: r.Demo,
		},
		{
			Name:   "keygen",
			Usage:  "Generate a key pair",
			Flags:  []cli.Flag{r.seedFlag()},
			Action: r.Keygen,
		},
		{
			Name:  "encrypt",
			Usage: "Encrypt a message with a public key",
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "n", Usage: "Public modulus", Required: true},
				&cli.Uint64Flag{Name: "e", Usage: "Public exponent", Required: true},
				&cli.Uint64Flag{
					Name:     "message",
					Aliases:  []string{"m"},
					Usage:    "Message in [0, N)",
					Required: true,
				},
				&cli.BoolFlag{Name: "reduce", Usage: "Reduce the message modulo N instead of rejecting it"},
			},
			Action: r.Encrypt,
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt a ciphertext with the key built from its primes",
			Flags: []cli.Flag{
				&cli.Uint64Flag{Name: "p", Usage: "First prime", Required: true},
				&cli.Uint64Flag{Name: "q", Usage: "Second prime", Required: true},
				&cli.Uint64Flag{Name: "e", Usage: "Public exponent", Required: true},
				&cli.Uint64Flag{
					Name:     "ciphertext",
					Aliases:  []string{"c"},
					Usage:    "Ciphertext in [0, N)",
					Required: true,
				},
			},
			Action: r.Decrypt,
		},
	}
}

func (r *runner) key(cCtx *cli.Context) (*rsa.PrivateKey, error) {
	if cCtx.IsSet("p") || cCtx.IsSet("q") || cCtx.IsSet("e") {
		priv, err := rsa.NewKeyFromPrimes(cCtx.Uint64("p"), cCtx.Uint64("q"), cCtx.Uint64("e"))
		if err != nil {
			return nil, errors.Wrap(err, "failed to build key")
		}
		return priv, nil
	}

	seed := cCtx.Uint64("seed")
	r.logger.Debug("generating key", zap.Uint64("seed", seed))
	priv, err := rsa.GenerateKey(randutil.Reader(seed))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate key")
	}
	return priv, nil
}

func (r *runner) logKey(priv *rsa.PrivateKey) {
	r.logger.Debug("derived key",
		zap.Uint64s("primes", priv.Primes),
		zap.Uint64("n", priv.N),
		zap.Uint64("phi", priv.Totient()),
		zap.Uint64("e", priv.E),
		zap.Uint64("d", priv.D),
	)
}

func printKey(cCtx *cli.Context, priv *rsa.PrivateKey) {
	w := cCtx.App.Writer
	fmt.Fprintf(w, "P = %d\n", priv.Primes[0])
	fmt.Fprintf(w, "Q = %d\n", priv.Primes[1])
	fmt.Fprintf(w, "N = %d\n", priv.N)
	fmt.Fprintf(w, "Phi(N) = %d\n", priv.Totient())
	fmt.Fprintf(w, "\ne = %d\n", priv.E)
	fmt.Fprintf(w, "d = %d\n", priv.D)
}

// Demo runs the whole exchange: key generation, encryption of one message
// and its decryption.
func (r *runner) Demo(cCtx *cli.Context) error {
	priv, err := r.key(cCtx)
	if err != nil {
		return err
	}
	r.logKey(priv)
	printKey(cCtx, priv)

	w := cCtx.App.Writer
	var m uint64
	if cCtx.IsSet("message") {
		m = cCtx.Uint64("message")
	} else {
		fmt.Fprintf(w, "\nEnter 1 < M < %d: ", priv.N)
		m, err = readMessage(cCtx)
		if err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	m, err = rsa.ReduceMessage(&priv.PublicKey, m)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nM = %d\n", m)

	c, err := rsa.Encrypt(&priv.PublicKey, m)
	if err != nil {
		return errors.Wrap(err, "failed to encrypt")
	}
	fmt.Fprintf(w, "C = %d\n", c)

	recovered, err := rsa.Decrypt(priv, c)
	if err != nil {
		return errors.Wrap(err, "failed to decrypt")
	}
	fmt.Fprintf(w, "M = %d\n", recovered)

	r.logger.Info("round trip complete",
		zap.Uint64("message", m),
		zap.Uint64("ciphertext", c),
		zap.Bool("recovered", recovered == m),
	)
	return nil
}

func readMessage(cCtx *cli.Context) (uint64, error) {
	scanner := bufio.NewScanner(cCtx.App.Reader)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, errors.Wrap(err, "failed to read message")
		}
		return 0, errors.New("failed to read message: no input")
	}
	m, err := strconv.ParseUint(strings.TrimSpace(scanner.Text()), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "invalid message")
	}
	return m, nil
}

// Keygen prints a fresh key pair.
func (r *runner) Keygen(cCtx *cli.Context) error {
	priv, err := r.key(cCtx)
	if err != nil {
		return err
	}
	r.logKey(priv)
	printKey(cCtx, priv)
	return nil
}

// Encrypt prints the ciphertext of one message.
func (r *runner) Encrypt(cCtx *cli.Context) error {
	pub := &rsa.PublicKey{N: cCtx.Uint64("n"), E: cCtx.Uint64("e")}
	m := cCtx.Uint64("message")
	if cCtx.Bool("reduce") {
		reduced, err := rsa.ReduceMessage(pub, m)
		if err != nil {
			return errors.Wrap(err, "failed to reduce message")
		}
		if reduced != m {
			r.logger.Info("reduced message", zap.Uint64("from", m), zap.Uint64("to", reduced))
		}
		m = reduced
	}

	c, err := rsa.Encrypt(pub, m)
	if err != nil {
		return errors.Wrap(err, "failed to encrypt")
	}
	r.logger.Debug("encrypted", zap.Uint64("n", pub.N), zap.Uint64("e", pub.E), zap.Uint64("message", m))
	fmt.Fprintf(cCtx.App.Writer, "C = %d\n", c)
	return nil
}

// Decrypt prints the message recovered from one ciphertext.
func (r *runner) Decrypt(cCtx *cli.Context) error {
	priv, err := r.key(cCtx)
	if err != nil {
		return err
	}
	r.logKey(priv)

	m, err := rsa.Decrypt(priv, cCtx.Uint64("ciphertext"))
	if err != nil {
		return errors.Wrap(err, "failed to decrypt")
	}
	fmt.Fprintf(cCtx.App.Writer, "M = %d\n", m)
	return nil
}
