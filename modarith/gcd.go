package modarith

// GCD returns the greatest common divisor of a and b. The result is never
// negative. GCD(0, 0) is 0.
func GCD[T Integer](a, b T) T {
	ta, tb := Abs(a), Abs(b)
	if ta < tb {
		ta, tb = Swap(ta, tb)
	}
	for tb != 0 {
		ta, tb = tb, ta%tb
	}
	return ta
}

// IsCoprime reports whether a and b share no factor other than 1.
func IsCoprime[T Integer](a, b T) bool {
	return GCD(a, b) == 1
}
