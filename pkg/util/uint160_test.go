package util

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUint160DecodeBytesBE(t *testing.T) {
	be := make([]byte, Uint160Size)
	for i := range be {
		be[i] = byte(i)
	}
	u, err := Uint160DecodeBytesBE(be)
	require.NoError(t, err)
	require.Equal(t, be, u.BytesBE())

	_, err = Uint160DecodeBytesBE(be[1:])
	require.Error(t, err)
}

func TestUint160Equality(t *testing.T) {
	a, err := Uint160DecodeBytesLE(make([]byte, Uint160Size))
	require.NoError(t, err)
	b := Uint160{}
	require.True(t, a.Equals(b))

	b[0] = 1
	require.False(t, a.Equals(b))
	require.True(t, a.Less(b))
	require.False(t, b.Less(a))
}

func TestUint160JSONRoundTrip(t *testing.T) {
	var u Uint160
	u[0] = 0xAB
	u[19] = 0xCD

	data, err := u.MarshalJSON()
	require.NoError(t, err)

	var decoded Uint160
	require.NoError(t, decoded.UnmarshalJSON(data))
	require.Equal(t, u, decoded)
}
