// Copyright 2009 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rsa implements textbook RSA over native 64-bit integers.
//
// GenerateKey builds keys from two primes below 256. Keys built from other
// primes are limited to 32-bit moduli, so every intermediate product of the
// exponentiation fits in a uint64. Messages are plain integers in [0, N);
// there is no padding scheme.
//
// The package exists to exercise the arithmetic in package modarith and is
// not suitable for protecting real data: the key space is tiny and the
// operations are not constant time.
package rsa

import (
	"io"
	"math"
	"math/bits"

	"github.com/cronokirby/tinyrsa/internal/randutil"
	"github.com/cronokirby/tinyrsa/modarith"
	"github.com/pkg/errors"
)

// A PublicKey represents the public part of an RSA key.
type PublicKey struct {
	N uint64 // modulus
	E uint64 // public exponent
}

// Any methods implemented on PublicKey might need to also be implemented on
// PrivateKey, as the latter embeds the former and will expose its methods.

// Size returns the modulus size in bits.
func (pub *PublicKey) Size() int {
	return bits.Len64(pub.N)
}

// Equal reports whether pub and x have the same value.
func (pub *PublicKey) Equal(x *PublicKey) bool {
	if x == nil {
		return false
	}
	return pub.N == x.N && pub.E == x.E
}

// maxModulus keeps (N-1)*(N-1) within a uint64.
const maxModulus = math.MaxUint32

var (
	errPublicModulus       = errors.New("rsa: missing public modulus")
	errPublicModulusLarge  = errors.New("rsa: public modulus too large")
	errPublicExponentSmall = errors.New("rsa: public exponent too small")
	errPublicExponentLarge = errors.New("rsa: public exponent too large")
)

// checkPub sanity checks the public key before we use it.
func checkPub(pub *PublicKey) error {
	if pub.N < 2 {
		return errPublicModulus
	}
	if pub.N > maxModulus {
		return errPublicModulusLarge
	}
	if pub.E < 2 {
		return errPublicExponentSmall
	}
	if pub.E >= pub.N {
		return errPublicExponentLarge
	}
	return nil
}

// A PrivateKey represents an RSA key
type PrivateKey struct {
	PublicKey          // public part.
	D         uint64   // private exponent
	Primes    []uint64 // prime factors of N, has exactly 2 elements.

	// Precomputed contains precomputed values that speed up private
	// operations, if available.
	Precomputed PrecomputedValues
}

// Public returns the public key corresponding to priv.
func (priv *PrivateKey) Public() *PublicKey {
	return &priv.PublicKey
}

// Totient returns Phi(N) = (P-1)(Q-1).
func (priv *PrivateKey) Totient() uint64 {
	phi := uint64(1)
	for _, prime := range priv.Primes {
		phi *= prime - 1
	}
	return phi
}

// Equal reports whether priv and x have equivalent values. It ignores
// Precomputed values.
func (priv *PrivateKey) Equal(x *PrivateKey) bool {
	if x == nil {
		return false
	}
	if !priv.PublicKey.Equal(&x.PublicKey) || priv.D != x.D {
		return false
	}
	if len(priv.Primes) != len(x.Primes) {
		return false
	}
	for i := range priv.Primes {
		if priv.Primes[i] != x.Primes[i] {
			return false
		}
	}
	return true
}

type PrecomputedValues struct {
	Dp, Dq uint64 // D mod (P-1) (or mod Q-1)
	Qinv   uint64 // Q^-1 mod P
}

// Validate performs basic sanity checks on the key.
// It returns nil if the key is valid, or else an error describing a problem.
func (priv *PrivateKey) Validate() error {
	if err := checkPub(&priv.PublicKey); err != nil {
		return err
	}
	if len(priv.Primes) != 2 {
		return errors.Errorf("rsa: expected 2 primes, got %d", len(priv.Primes))
	}
	for _, prime := range priv.Primes {
		// Any primes ≤ 1 will cause divide-by-zero panics later.
		if prime <= 1 {
			return errors.New("rsa: invalid prime value")
		}
	}
	if priv.Primes[0] == priv.Primes[1] {
		return errEqualPrimes
	}

	// Check that Πprimes == n.
	if n, ok := wideMul(priv.Primes[0], priv.Primes[1]); !ok || n != priv.N {
		return errors.New("rsa: invalid modulus")
	}
	for _, prime := range priv.Primes {
		if !isPrime(prime) {
			return errCompositePrime
		}
	}

	// Check that de ≡ 1 mod p-1, for each prime.
	// This implies that e is coprime to each p-1 as e has a multiplicative
	// inverse. Therefore e is coprime to lcm(p-1,q-1) =
	// exponent(ℤ/nℤ). It also implies that a^de ≡ a mod p as a^(p-1) ≡ 1
	// mod p. Thus a^de ≡ a mod n for all a coprime to n, as required.
	for _, prime := range priv.Primes {
		if wideMulMod(priv.D, priv.E, prime-1) != 1%(prime-1) {
			return errors.New("rsa: invalid exponents")
		}
	}
	return nil
}

var (
	errEqualPrimes    = errors.New("rsa: primes must be distinct")
	errCompositePrime = errors.New("rsa: prime factor is composite")
	errTinyPrimes     = errors.New("rsa: modulus too small for a public exponent")
)

// NewKeyFromPrimes builds the key with prime factors p and q and public
// exponent e. It fails if p or q is not prime, if p and q are equal, if e
// is not coprime with Phi(N), or if e is not in [3, Phi(N)).
func NewKeyFromPrimes(p, q, e uint64) (*PrivateKey, error) {
	if p < 2 || q < 2 {
		return nil, errors.New("rsa: invalid prime value")
	}
	if p == q {
		return nil, errEqualPrimes
	}
	n, ok := wideMul(p, q)
	if !ok {
		return nil, errors.Errorf("rsa: modulus %d*%d overflows", p, q)
	}
	if n > maxModulus {
		return nil, errPublicModulusLarge
	}
	if !isPrime(p) || !isPrime(q) {
		return nil, errCompositePrime
	}

	phi := (p - 1) * (q - 1)
	if e < 3 || e >= phi {
		return nil, errors.Errorf("rsa: public exponent %d out of range [3, %d)", e, phi)
	}
	d, err := modarith.ModInverse(e, phi)
	if err != nil {
		return nil, errors.Wrapf(err, "rsa: public exponent %d is not coprime with %d", e, phi)
	}

	priv := &PrivateKey{
		PublicKey: PublicKey{N: n, E: e},
		D:         d,
		Primes:    []uint64{p, q},
	}
	priv.Precompute()
	return priv, nil
}

// GenerateKey generates an RSA keypair from two distinct primes drawn from
// SmallPrimes using the random source random (for example,
// crypto/rand.Reader).
//
// The public exponent starts at a random odd value below Phi(N) and is
// stepped by two until it is coprime with Phi(N). Prime pairs whose totient
// leaves no room for such an exponent are discarded.
func GenerateKey(random io.Reader) (*PrivateKey, error) {
	for {
		p, err := pickPrime(random)
		if err != nil {
			return nil, err
		}
		q, err := pickPrime(random)
		if err != nil {
			return nil, err
		}
		if p == q {
			continue
		}

		phi := (p - 1) * (q - 1)
		e, err := pickExponent(random, phi)
		if errors.Is(err, errTinyPrimes) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return NewKeyFromPrimes(p, q, e)
	}
}

func pickPrime(random io.Reader) (uint64, error) {
	i, err := randutil.Uint64N(random, uint64(len(SmallPrimes)))
	if err != nil {
		return 0, errors.Wrap(err, "rsa: choosing prime")
	}
	return SmallPrimes[i], nil
}

// pickExponent returns the first value coprime with phi at or after a random
// odd starting point, or errTinyPrimes if it would reach phi.
func pickExponent(random io.Reader, phi uint64) (uint64, error) {
	if phi <= 3 {
		return 0, errTinyPrimes
	}
	e, err := randutil.Uint64N(random, phi)
	if err != nil {
		return 0, errors.Wrap(err, "rsa: choosing public exponent")
	}
	e |= 1
	if e < 3 {
		e = 3
	}
	for !modarith.IsCoprime(e, phi) {
		e += 2
	}
	if e >= phi {
		return 0, errTinyPrimes
	}
	return e, nil
}

// ErrMessageTooLarge is returned when attempting to encrypt a message which
// is not smaller than the public modulus.
var ErrMessageTooLarge = errors.New("rsa: message too large for RSA public key")

func encrypt(pub *PublicKey, m uint64) uint64 {
	c, err := modarith.ModPow(m, pub.E, pub.N)
	if err != nil {
		// Only negative exponents can fail.
		panic(err)
	}
	return c
}

// Encrypt encrypts the message m, which must lie in [0, N), with the public
// key pub.
func Encrypt(pub *PublicKey, m uint64) (uint64, error) {
	if err := checkPub(pub); err != nil {
		return 0, err
	}
	if m >= pub.N {
		return 0, ErrMessageTooLarge
	}
	return encrypt(pub, m), nil
}

// ReduceMessage returns m modulo N, for callers that accept arbitrary input
// and want it mapped into the message space.
func ReduceMessage(pub *PublicKey, m uint64) (uint64, error) {
	if err := checkPub(pub); err != nil {
		return 0, err
	}
	return m % pub.N, nil
}

// ErrDecryption represents a failure to decrypt a message.
var ErrDecryption = errors.New("rsa: decryption error")

// Precompute performs some calculations that speed up private key operations
// in the future.
func (priv *PrivateKey) Precompute() {
	if priv.Precomputed.Dp != 0 || len(priv.Primes) != 2 {
		return
	}
	p, q := priv.Primes[0], priv.Primes[1]
	// With a factor of 2, D mod 1 is 0 and the CRT exponent no longer
	// agrees with D for ciphertexts divisible by 2.
	if p == 2 || q == 2 {
		return
	}

	qinv, err := modarith.ModInverse(q%p, p)
	if err != nil {
		// Not coprime; stay on the slow path.
		return
	}
	priv.Precomputed.Dp = priv.D % (p - 1)
	priv.Precomputed.Dq = priv.D % (q - 1)
	priv.Precomputed.Qinv = qinv
}

// decrypt performs an RSA decryption, resulting in a plaintext integer.
func decrypt(priv *PrivateKey, c uint64) (m uint64, err error) {
	if priv.N == 0 || c >= priv.N {
		return 0, ErrDecryption
	}

	if priv.Precomputed.Dp == 0 {
		return modarith.ModPow(c, priv.D, priv.N)
	}

	// We have the precalculated values needed for the CRT.
	p, q := priv.Primes[0], priv.Primes[1]
	m1, err := modarith.ModPow(c, priv.Precomputed.Dp, p)
	if err != nil {
		return 0, err
	}
	m2, err := modarith.ModPow(c, priv.Precomputed.Dq, q)
	if err != nil {
		return 0, err
	}
	// h = qinv * (m1 - m2) mod p
	h := modarith.ModMul(priv.Precomputed.Qinv, (m1+p-m2%p)%p, p)
	return h*q + m2, nil
}

func decryptAndCheck(priv *PrivateKey, c uint64) (m uint64, err error) {
	m, err = decrypt(priv, c)
	if err != nil {
		return 0, err
	}

	// In order to defend against errors in the CRT computation, m^e is
	// calculated, which should match the original ciphertext.
	if wideModPow(m, priv.E, priv.N) != c {
		return 0, errors.New("rsa: internal error")
	}
	return m, nil
}

// Decrypt recovers the message encrypted in c, which must lie in [0, N).
func Decrypt(priv *PrivateKey, c uint64) (uint64, error) {
	if err := checkPub(&priv.PublicKey); err != nil {
		return 0, err
	}
	return decryptAndCheck(priv, c)
}
