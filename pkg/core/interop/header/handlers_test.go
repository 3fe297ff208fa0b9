package header

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	coreblock "github.com/synapse-chain/synapse/pkg/core/block"
	"github.com/synapse-chain/synapse/pkg/core/dao"
	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/storage"
	"github.com/synapse-chain/synapse/pkg/smartcontract/trigger"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

func newSession(t *testing.T) *interop.Context {
	t.Helper()
	return interop.NewContext(trigger.Application, dao.NewSimple(storage.NewMemoryStore()), vm.NewContext(util.Uint160{1}), interop.NewRegistry(), nil, nil)
}

func TestHeaderAccessors(t *testing.T) {
	h := &coreblock.Header{Index: 9, Timestamp: 123, PrevHash: util.Uint256{1, 2, 3}}

	ic := newSession(t)
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropHeader, h))
	require.NoError(t, GetIndex(ic))
	require.Equal(t, big.NewInt(9), ic.VM.Estack.Pop().Value())

	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropHeader, h))
	require.NoError(t, GetTimestamp(ic))
	require.Equal(t, big.NewInt(123), ic.VM.Estack.Pop().Value())

	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropHeader, h))
	require.NoError(t, GetHash(ic))
	require.Equal(t, h.Hash().BytesBE(), ic.VM.Estack.Pop().Bytes())

	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropHeader, h))
	require.NoError(t, GetPrevHash(ic))
	require.Equal(t, h.PrevHash.BytesBE(), ic.VM.Estack.Pop().Bytes())
}

func TestHeaderAcceptsBlockHandle(t *testing.T) {
	b := &coreblock.Block{Header: coreblock.Header{Index: 5}}
	ic := newSession(t)
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropBlock, b))
	require.NoError(t, GetIndex(ic))
	require.Equal(t, big.NewInt(5), ic.VM.Estack.Pop().Value())
}

func TestHeaderTypeMismatchFails(t *testing.T) {
	ic := newSession(t)
	ic.VM.Estack.PushVal([]byte("not a handle"))
	err := GetIndex(ic)
	require.ErrorIs(t, err, ErrNotHeader)
}
