// Package modarith implements the modular arithmetic behind textbook RSA:
// greatest common divisors, modular inverses by the extended Euclidean
// algorithm, and modular exponentiation by repeated squaring.
//
// Every function is generic over the built-in integer kinds, signed and
// unsigned, and works in the native width of that kind. Products are reduced
// as soon as they are formed, but a product of two residues can still
// overflow when the modulus is wider than half the type. Callers that need
// the full range must pick a type at least twice as wide as their modulus.
//
// A zero modulus is a caller error and makes the modular operations panic,
// just like integer division by zero.
package modarith

import "golang.org/x/exp/constraints"

// Integer is the set of types the package operates on.
type Integer = constraints.Integer

const errZeroModulus = "modarith: zero modulus"

// Swap returns a and b exchanged.
func Swap[T any](a, b T) (T, T) {
	return b, a
}

// Abs returns the absolute value of x. For unsigned kinds x is returned
// unchanged. Abs of the minimum value of a signed kind overflows and
// returns that same value.
func Abs[T Integer](x T) T {
	if x < 0 {
		return 0 - x
	}
	return x
}

// IsEven reports whether the lowest bit of a is clear.
func IsEven[T Integer](a T) bool {
	return a&1 == 0
}

// Mod returns a modulo m, normalised into [0, |m|).
func Mod[T Integer](a, m T) T {
	if m == 0 {
		panic(errZeroModulus)
	}
	r := a % m
	if r < 0 {
		r += Abs(m)
	}
	return r
}

// ModMul returns a*b modulo m. The product is formed in T before reducing.
func ModMul[T Integer](a, b, m T) T {
	if m == 0 {
		panic(errZeroModulus)
	}
	return (a * b) % m
}
