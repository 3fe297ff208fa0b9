package blockchain

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synapse-chain/synapse/pkg/core/block"
	"github.com/synapse-chain/synapse/pkg/core/dao"
	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/state"
	"github.com/synapse-chain/synapse/pkg/core/storage"
	"github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/smartcontract/trigger"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

func newSession(t *testing.T) *interop.Context {
	t.Helper()
	return interop.NewContext(trigger.Application, dao.NewSimple(storage.NewMemoryStore()), vm.NewContext(util.Uint160{1}), interop.NewRegistry(), nil, nil)
}

func TestGetHeightReflectsPutBlocks(t *testing.T) {
	ic := newSession(t)
	require.NoError(t, GetHeight(ic))
	require.Equal(t, big.NewInt(0), ic.VM.Estack.Pop().Value())

	b := &block.Block{Header: block.Header{Index: 7}}
	require.NoError(t, ic.DAO.PutBlock(b))

	require.NoError(t, GetHeight(ic))
	require.Equal(t, big.NewInt(7), ic.VM.Estack.Pop().Value())
}

func TestGetBlockByHeightAndHash(t *testing.T) {
	ic := newSession(t)
	b := &block.Block{Header: block.Header{Index: 3}}
	require.NoError(t, ic.DAO.PutBlock(b))

	ic.VM.Estack.PushVal([]byte{3})
	require.NoError(t, GetBlock(ic))
	got := ic.VM.Estack.Pop().(*stackitem.Interop)
	require.Equal(t, stackitem.InteropBlock, got.Kind())
	require.Equal(t, b.Hash(), got.Value().(*block.Block).Hash())

	ic.VM.Estack.PushVal(b.Hash().BytesBE())
	require.NoError(t, GetBlock(ic))
	got2 := ic.VM.Estack.Pop().(*stackitem.Interop)
	require.Equal(t, b.Hash(), got2.Value().(*block.Block).Hash())
}

func TestGetBlockMissReturnsEmptyBytes(t *testing.T) {
	ic := newSession(t)
	ic.VM.Estack.PushVal([]byte{99})
	require.NoError(t, GetBlock(ic))
	require.Equal(t, []byte{}, ic.VM.Estack.Pop().Bytes())
}

func TestGetTransactionHeightAbsentIsMinusOne(t *testing.T) {
	ic := newSession(t)
	tx := &transaction.Transaction{Script: []byte{1}}
	ic.VM.Estack.PushVal(tx.Hash().BytesBE())
	require.NoError(t, GetTransactionHeight(ic))
	require.Equal(t, big.NewInt(-1), ic.VM.Estack.Pop().Value())
}

func TestGetContractMissReturnsEmptyBytes(t *testing.T) {
	ic := newSession(t)
	ic.VM.Estack.PushVal(util.Uint160{42}.BytesBE())
	require.NoError(t, GetContract(ic))
	require.Equal(t, []byte{}, ic.VM.Estack.Pop().Bytes())
}

func TestGetContractFound(t *testing.T) {
	ic := newSession(t)
	sh := util.Uint160{5}
	require.NoError(t, ic.DAO.PutContract(&state.Contract{ScriptHash: sh}))

	ic.VM.Estack.PushVal(sh.BytesBE())
	require.NoError(t, GetContract(ic))
	got := ic.VM.Estack.Pop().(*stackitem.Interop)
	require.Equal(t, stackitem.InteropContract, got.Kind())
}
