package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/cronokirby/tinyrsa/internal/config"
	"github.com/cronokirby/tinyrsa/modarith"
	"github.com/cronokirby/tinyrsa/rsa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	app := newApp(config.Config{LogLevel: "error"})
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"tinyrsa"}, args...))
	return out.String(), err
}

func TestDemoWithFixedKey(t *testing.T) {
	out, err := run(t, "", "demo", "--p", "61", "--q", "53", "--e", "17", "--message", "65")
	require.NoError(t, err)
	assert.Equal(t, "P = 61\nQ = 53\nN = 3233\nPhi(N) = 3120\n\ne = 17\nd = 2753\n\nM = 65\nC = 2790\nM = 65\n", out)
}

func TestDemoReadsStdin(t *testing.T) {
	out, err := run(t, "3298\n", "demo", "--p", "61", "--q", "53", "--e", "17")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter 1 < M < 3233: \n\nM = 65\nC = 2790\nM = 65\n")
}

func TestDemoBadInput(t *testing.T) {
	_, err := run(t, "sixty-five\n", "demo", "--p", "61", "--q", "53", "--e", "17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid message")

	_, err = run(t, "", "demo", "--p", "61", "--q", "53", "--e", "17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no input")
}

func TestDemoGeneratedKey(t *testing.T) {
	out, err := run(t, "", "demo", "--seed", "7", "--message", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "\nM = 1\n")
	assert.True(t, strings.HasSuffix(out, "M = 1\n"))
}

func TestKeygenSeedIsReproducible(t *testing.T) {
	first, err := run(t, "", "keygen", "--seed", "11")
	require.NoError(t, err)
	second, err := run(t, "", "keygen", "--seed", "11")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Phi(N) = ")
}

func TestEncrypt(t *testing.T) {
	out, err := run(t, "", "encrypt", "--n", "3233", "--e", "17", "--message", "65")
	require.NoError(t, err)
	assert.Equal(t, "C = 2790\n", out)

	_, err = run(t, "", "encrypt", "--n", "3233", "--e", "17", "--message", "3298")
	assert.ErrorIs(t, err, rsa.ErrMessageTooLarge)

	out, err = run(t, "", "encrypt", "--n", "3233", "--e", "17", "--message", "3298", "--reduce")
	require.NoError(t, err)
	assert.Equal(t, "C = 2790\n", out)
}

func TestDecrypt(t *testing.T) {
	out, err := run(t, "", "decrypt", "--p", "61", "--q", "53", "--e", "17", "--ciphertext", "2790")
	require.NoError(t, err)
	assert.Equal(t, "M = 65\n", out)

	_, err = run(t, "", "decrypt", "--p", "61", "--q", "53", "--e", "5", "--ciphertext", "2790")
	assert.ErrorIs(t, err, modarith.ErrNoInverse)

	_, err = run(t, "", "decrypt", "--p", "61", "--q", "53", "--e", "17", "--ciphertext", "3233")
	assert.ErrorIs(t, err, rsa.ErrDecryption)
}

func TestDecryptEvenModulus(t *testing.T) {
	out, err := run(t, "", "decrypt", "--p", "2", "--q", "5", "--e", "3", "--ciphertext", "7")
	require.NoError(t, err)
	assert.Equal(t, "M = 3\n", out)
}

func TestCompositeFactorsRejected(t *testing.T) {
	_, err := run(t, "", "demo", "--p", "4", "--q", "9", "--e", "5", "--message", "6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rsa: prime factor is composite")

	_, err = run(t, "", "decrypt", "--p", "4", "--q", "9", "--e", "5", "--ciphertext", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rsa: prime factor is composite")
}

func TestInvalidLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "keygen", "--seed", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid level")
}

func TestMissingRequiredFlag(t *testing.T) {
	_, err := run(t, "", "encrypt", "--n", "3233")
	require.Error(t, err)
}
