package block

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	coreblock "github.com/synapse-chain/synapse/pkg/core/block"
	"github.com/synapse-chain/synapse/pkg/core/dao"
	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/storage"
	coretx "github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/smartcontract/trigger"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

func newSession(t *testing.T) *interop.Context {
	t.Helper()
	return interop.NewContext(trigger.Application, dao.NewSimple(storage.NewMemoryStore()), vm.NewContext(util.Uint160{1}), interop.NewRegistry(), nil, nil)
}

func testBlock() *coreblock.Block {
	return &coreblock.Block{
		Header: coreblock.Header{Index: 1},
		Transactions: []*coretx.Transaction{
			{Script: []byte{1}},
			{Script: []byte{2}},
		},
	}
}

func TestGetTransactionCount(t *testing.T) {
	b := testBlock()
	ic := newSession(t)
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropBlock, b))
	require.NoError(t, GetTransactionCount(ic))
	require.Equal(t, big.NewInt(2), ic.VM.Estack.Pop().Value())
}

func TestGetTransactionsPushesArrayOfHandles(t *testing.T) {
	b := testBlock()
	ic := newSession(t)
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropBlock, b))
	require.NoError(t, GetTransactions(ic))

	arr := ic.VM.Estack.Pop().(*stackitem.Array)
	require.Equal(t, 2, arr.Len())
}

func TestGetTransactionByIndex(t *testing.T) {
	b := testBlock()
	ic := newSession(t)
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropBlock, b))
	ic.VM.Estack.PushVal(int64(1))
	require.NoError(t, GetTransaction(ic))

	got := ic.VM.Estack.Pop().(*stackitem.Interop)
	require.Same(t, b.Transactions[1], got.Value())
}

func TestGetTransactionOutOfRangeFails(t *testing.T) {
	b := testBlock()
	ic := newSession(t)
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropBlock, b))
	ic.VM.Estack.PushVal(int64(5))
	err := GetTransaction(ic)
	require.ErrorIs(t, err, coreblock.ErrTxIndexOutOfRange)
}
