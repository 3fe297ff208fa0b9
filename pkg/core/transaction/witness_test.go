package transaction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synapse-chain/synapse/internal/testserdes"
)

func TestWitnessSerDes(t *testing.T) {
	good := &Witness{
		InvocationScript:   make([]byte, 64),
		VerificationScript: make([]byte, 32),
	}
	exp := new(Witness)
	testserdes.MarshalUnmarshalJSON(t, good, exp)
	testserdes.EncodeDecodeBinary(t, good, exp)
}

func TestWitnessTooLong(t *testing.T) {
	bad := &Witness{
		InvocationScript:   make([]byte, MaxInvocationScript+1),
		VerificationScript: make([]byte, 32),
	}
	bin, err := testserdes.EncodeBinary(bad)
	require.NoError(t, err)
	require.Error(t, testserdes.DecodeBinary(bin, new(Witness)))
}

func TestWitnessCopy(t *testing.T) {
	w := &Witness{InvocationScript: []byte{1, 2, 3}, VerificationScript: []byte{4, 5}}
	c := w.Copy()
	c.InvocationScript[0] = 0xff
	require.NotEqual(t, w.InvocationScript[0], c.InvocationScript[0])
}
