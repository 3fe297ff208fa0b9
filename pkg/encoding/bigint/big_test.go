package bigint

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cases := []int64{0, 1, -1, 127, 128, -128, -129, 255, 256, 1 << 40, -(1 << 40)}
	for _, c := range cases {
		n := big.NewInt(c)
		b := ToBytes(n)
		got := FromBytes(b)
		require.Equal(t, n, got, "case %d", c)
	}
}

func TestZeroIsEmpty(t *testing.T) {
	require.Equal(t, []byte{}, ToBytes(big.NewInt(0)))
	require.Equal(t, big.NewInt(0), FromBytes(nil))
}

func TestMinimalEncoding(t *testing.T) {
	// 127 fits in one byte without a sign-extension byte.
	require.Len(t, ToBytes(big.NewInt(127)), 1)
	// 128 needs a second byte so the high bit of the sign byte stays 0.
	require.Len(t, ToBytes(big.NewInt(128)), 2)
	// -128 fits in a single two's-complement byte (0x80).
	require.Len(t, ToBytes(big.NewInt(-128)), 1)
}
