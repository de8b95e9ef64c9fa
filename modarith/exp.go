package modarith

import "github.com/pkg/errors"

// ModPow returns base**exponent modulo modulus using square-and-multiply.
//
// A zero exponent yields 1 whatever the base. A negative exponent first
// replaces base by its inverse modulo modulus and then raises it to
// |exponent|; if base has no inverse the wrapped ErrNoInverse is returned.
// ModPow panics when modulus is zero.
//
// Each product is reduced immediately, so the result is exact as long as
// (modulus-1)*(modulus-1) fits in T.
func ModPow[T Integer](base, exponent, modulus T) (T, error) {
	if modulus == 0 {
		panic(errZeroModulus)
	}
	if exponent == 0 {
		return 1, nil
	}

	c := Mod(base, modulus)
	if exponent < 0 {
		inv, err := ModInverse(c, modulus)
		if err != nil {
			return 0, errors.Wrapf(err, "modarith: cannot raise %d to %d mod %d", base, exponent, modulus)
		}
		c = inv
	}

	var f T = 1
	e := Abs(exponent)
	if e < 0 {
		// exponent is the minimum of a signed kind; peel one factor off so
		// the remaining magnitude is representable.
		f = ModMul(f, c, modulus)
		e = -(exponent + 1)
	}
	for ; e != 0; e >>= 1 {
		if !IsEven(e) {
			f = ModMul(f, c, modulus)
		}
		c = ModMul(c, c, modulus)
	}
	return f, nil
}
