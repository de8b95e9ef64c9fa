package modarith

import "github.com/pkg/errors"

// ErrNoInverse is returned when the value and the modulus are not coprime.
var ErrNoInverse = errors.New("modarith: value has no inverse for modulus")

// ModInverse returns x such that (b*x) % a == 1, using the extended
// Euclidean algorithm. For a non-negative b the result lies in [0, |a|);
// for a negative b it lies in (-|a|, 0]. ModInverse returns ErrNoInverse
// when b and a are not coprime and panics when a is zero. When |a| is 1
// every value is congruent to 0, so the result is 0 and the identity above
// degenerates to (b*0) % a == 0.
func ModInverse[T Integer](b, a T) (T, error) {
	if a == 0 {
		panic(errZeroModulus)
	}
	m := Abs(a)
	r0, r1 := m, Abs(b)

	// y and y1 are the magnitudes of the last two Bézout coefficients of b.
	// Their signs alternate, so keeping magnitudes lets unsigned kinds run
	// the same recurrence, and no magnitude ever exceeds m.
	var y, y1 T = 0, 1
	y1Neg := false
	for r1 != 0 {
		q := r0 / r1
		r0, r1 = r1, r0%r1
		y, y1 = y1, y+q*y1
		y1Neg = !y1Neg
	}
	if r0 != 1 {
		return 0, ErrNoInverse
	}

	x := y
	if !y1Neg && x != 0 {
		// y carries the opposite sign of y1.
		x = m - x
	}
	if b < 0 {
		x = -x
	}
	return x, nil
}
