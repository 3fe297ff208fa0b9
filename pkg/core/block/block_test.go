package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synapse-chain/synapse/internal/testserdes"
	"github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/util"
)

func newTestBlock() *Block {
	return &Block{
		Header: *newTestHeader(),
		Transactions: []*transaction.Transaction{
			{Script: []byte{0x51}, Signers: []transaction.Signer{{Account: util.Uint160{1}}}},
			{Script: []byte{0x52}, Signers: []transaction.Signer{{Account: util.Uint160{2}}}},
		},
	}
}

func TestBlockEncodeDecodeBinary(t *testing.T) {
	b := newTestBlock()
	b.Hash()
	for _, tx := range b.Transactions {
		tx.Hash() // populate the cached hash before struct comparison below
	}

	decoded := &Block{}
	testserdes.EncodeDecodeBinary(t, b, decoded)
	require.Equal(t, b.Hash(), decoded.Hash())
}

func TestBlockTransactionAccessors(t *testing.T) {
	b := newTestBlock()
	require.Equal(t, 2, b.TransactionCount())

	tx, err := b.GetTransaction(1)
	require.NoError(t, err)
	require.Equal(t, b.Transactions[1], tx)

	_, err = b.GetTransaction(5)
	require.ErrorIs(t, err, ErrTxIndexOutOfRange)
}

func TestBlockMarshalUnmarshalJSON(t *testing.T) {
	b := newTestBlock()
	b.Hash() // populate the cached header hash before struct comparison below

	decoded := &Block{}
	testserdes.MarshalUnmarshalJSON(t, b, decoded)
}
