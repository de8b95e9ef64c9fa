package rsa

// SmallPrimes lists every prime below 256. GenerateKey draws its factors
// from this table.
var SmallPrimes = [...]uint64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47,
	53, 59, 61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113,
	127, 131, 137, 139, 149, 151, 157, 163, 167, 173, 179, 181, 191, 193, 197,
	199, 211, 223, 227, 229, 233, 239, 241, 251,
}

// isPrime reports whether n is prime by trial division. Moduli are capped at
// 32 bits, so the smaller factor never exceeds 2^16 divisions.
func isPrime(n uint64) bool {
	if n < 2 {
		return false
	}
	for _, p := range SmallPrimes {
		if n == p {
			return true
		}
		if n%p == 0 {
			return false
		}
	}
	for i := uint64(257); i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}
