// Package randutil contains internal randomness helpers for key generation.
package randutil

import (
	crand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand/v2"

	"github.com/pkg/errors"
)

// Uint64N returns a uniformly distributed value in [0, n) drawn from r.
// It panics if n is zero.
func Uint64N(r io.Reader, n uint64) (uint64, error) {
	if n == 0 {
		panic("randutil: Uint64N with zero bound")
	}
	// Reject draws from the incomplete final block of size 2**64 mod n.
	limit := -n % n
	var buf [8]byte
	for {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return 0, errors.Wrap(err, "randutil: reading random bytes")
		}
		v := binary.BigEndian.Uint64(buf[:])
		if v >= limit {
			return v % n, nil
		}
	}
}

// Reader returns crypto/rand.Reader when seed is zero, and a deterministic
// ChaCha8 stream keyed by seed otherwise.
func Reader(seed uint64) io.Reader {
	if seed == 0 {
		return crand.Reader
	}
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	return rand.NewChaCha8(key)
}
