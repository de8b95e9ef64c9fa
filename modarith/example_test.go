package modarith_test

import (
	"fmt"

	"github.com/cronokirby/tinyrsa/modarith"
)

func ExampleModPow() {
	// N = 61 * 53, Phi(N) = 60 * 52.
	const n, phi = 3233, 3120

	d, err := modarith.ModInverse(17, phi)
	if err != nil {
		panic(err)
	}
	c, _ := modarith.ModPow(65, 17, n)
	m, _ := modarith.ModPow(c, d, n)
	fmt.Println(d, c, m)
	// Output: 2753 2790 65
}

func ExampleModInverse() {
	_, err := modarith.ModInverse(2, 4)
	fmt.Println(err)
	// Output: modarith: value has no inverse for modulus
}
