package rsa

import (
	"encoding/binary"

	"github.com/cronokirby/safenum"
)

// The helpers in this file redo native computations in multi-precision
// arithmetic, where no intermediate product can wrap around.

const wideCap = 128

func natFromUint64(x uint64) *safenum.Nat {
	return new(safenum.Nat).SetUint64(x)
}

// natToUint64 returns x as a uint64, or false if it needs more than 64 bits.
func natToUint64(x *safenum.Nat) (uint64, bool) {
	if x.TrueLen() > 64 {
		return 0, false
	}
	var v uint64
	for _, b := range x.Bytes() {
		v = v<<8 | uint64(b)
	}
	return v, true
}

func modulusFromUint64(m uint64) *safenum.Modulus {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], m)
	i := 0
	for i < len(buf)-1 && buf[i] == 0 {
		i++
	}
	return safenum.ModulusFromBytes(buf[i:])
}

// wideMul returns a*b and whether the product fits in 64 bits.
func wideMul(a, b uint64) (uint64, bool) {
	prod := new(safenum.Nat).Mul(natFromUint64(a), natFromUint64(b), wideCap)
	return natToUint64(prod)
}

// wideMulMod returns a*b mod m for m > 0.
func wideMulMod(a, b, m uint64) uint64 {
	if m == 1 {
		return 0
	}
	prod := new(safenum.Nat).Mul(natFromUint64(a), natFromUint64(b), wideCap)
	r, _ := natToUint64(new(safenum.Nat).Mod(prod, modulusFromUint64(m)))
	return r
}

// wideModPow returns base**exp mod m for m > 1.
func wideModPow(base, exp, m uint64) uint64 {
	if m%2 == 0 {
		return wideModPowEven(base, exp, m)
	}
	mod := modulusFromUint64(m)
	x := new(safenum.Nat).Mod(natFromUint64(base), mod)
	r, _ := natToUint64(x.Exp(x, natFromUint64(exp), mod))
	return r
}

// wideModPowEven handles even moduli, which Nat.Exp does not support since
// its Montgomery reduction needs an odd modulus. Nat.Mod has no such
// restriction, so square-and-multiply runs over wideMulMod.
func wideModPowEven(base, exp, m uint64) uint64 {
	r := wideMulMod(1, 1, m)
	x := wideMulMod(base, 1, m)
	for exp > 0 {
		if exp&1 == 1 {
			r = wideMulMod(r, x, m)
		}
		x = wideMulMod(x, x, m)
		exp >>= 1
	}
	return r
}
