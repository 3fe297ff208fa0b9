package transaction

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synapse-chain/synapse/internal/testserdes"
	"github.com/synapse-chain/synapse/pkg/util"
)

func TestTransactionEncodeDecode(t *testing.T) {
	tx := &Transaction{
		Version:    0,
		Nonce:      123,
		SystemFee:  1000,
		NetworkFee: 10,
		ValidUntil: 1000,
		Signers:    []Signer{{Account: util.Uint160{1, 2, 3}}},
		Script:     []byte{0x51},
		Witnesses:  []Witness{{InvocationScript: []byte{1}, VerificationScript: []byte{2}}},
	}
	tx.Hash() // populate the cached hash before comparing structs below

	decoded := &Transaction{}
	testserdes.EncodeDecodeBinary(t, tx, decoded)
	require.Equal(t, tx.Hash(), decoded.Hash())
}

func TestTransactionHashExcludesWitnesses(t *testing.T) {
	tx1 := &Transaction{Script: []byte{0x51}, Witnesses: []Witness{{InvocationScript: []byte{1}}}}
	tx2 := &Transaction{Script: []byte{0x51}, Witnesses: []Witness{{InvocationScript: []byte{2}}}}
	require.Equal(t, tx1.Hash(), tx2.Hash())
}

func TestRequiredSigners(t *testing.T) {
	h := util.Uint160{9, 9, 9}
	tx := &Transaction{Signers: []Signer{{Account: h}}}
	require.Equal(t, []util.Uint160{h}, tx.RequiredSigners())
}
