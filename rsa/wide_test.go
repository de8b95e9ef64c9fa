package rsa

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/cronokirby/tinyrsa/modarith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWideMul(t *testing.T) {
	n, ok := wideMul(61, 53)
	require.True(t, ok)
	assert.Equal(t, uint64(3233), n)

	n, ok = wideMul(math.MaxUint32, math.MaxUint32)
	require.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint32)*math.MaxUint32, n)

	_, ok = wideMul(1<<32, 1<<32)
	assert.False(t, ok)
}

func TestWideMulMod(t *testing.T) {
	assert.Equal(t, uint64(1), wideMulMod(2753, 17, 3120))
	assert.Equal(t, uint64(0), wideMulMod(2753, 17, 1))

	// (2**64-1)**2 mod 1000 = 1 - 2*2**64 + 2**128 mod 1000.
	assert.Equal(t, uint64(225), wideMulMod(math.MaxUint64, math.MaxUint64, 1000))
}

func TestWideModPowMatchesModarith(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	for i := 0; i < 500; i++ {
		m := r.Uint64N(math.MaxUint32-2) + 2
		base := r.Uint64()
		exp := r.Uint64N(math.MaxUint64) + 1

		want, err := modarith.ModPow(base, exp, m)
		require.NoError(t, err)
		require.Equal(t, want, wideModPow(base, exp, m), "%d**%d mod %d", base, exp, m)
	}
	assert.Equal(t, uint64(2790), wideModPow(65, 17, 3233))
}

func TestWideModPowEvenModulus(t *testing.T) {
	assert.Equal(t, uint64(9), wideModPow(3, 2, 10))
	assert.Equal(t, uint64(3), wideModPow(7, 3, 10))
	assert.Equal(t, uint64(1), wideModPow(7, 0, 10))
	assert.Equal(t, uint64(0), wideModPow(4, 5, 2))

	r := rand.New(rand.NewPCG(5, 6))
	for i := 0; i < 500; i++ {
		m := (r.Uint64N(math.MaxUint32/2-1) + 1) * 2
		base := r.Uint64()
		exp := r.Uint64()

		want, err := modarith.ModPow(base, exp, m)
		require.NoError(t, err)
		require.Equal(t, want, wideModPow(base, exp, m), "%d**%d mod %d", base, exp, m)
	}
}
