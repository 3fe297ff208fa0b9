package storage

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synapse-chain/synapse/pkg/core/dao"
	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/state"
	"github.com/synapse-chain/synapse/pkg/core/storage"
	"github.com/synapse-chain/synapse/pkg/smartcontract/trigger"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

func newSession(t *testing.T, trig trigger.Type, sh util.Uint160) *interop.Context {
	t.Helper()
	vmCtx := vm.NewContext(sh)
	ic := interop.NewContext(trig, dao.NewSimple(storage.NewMemoryStore()), vmCtx, interop.NewRegistry(), nil, nil)
	return ic
}

func deployStorageContract(t *testing.T, ic *interop.Context, sh util.Uint160) {
	t.Helper()
	require.NoError(t, ic.DAO.PutContract(&state.Contract{ScriptHash: sh, HasStorage: true}))
}

func TestPutGetRoundTrip(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	deployStorageContract(t, ic, sh)

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	ic.VM.Estack.PushVal([]byte("v"))
	require.NoError(t, Put(ic))

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	require.NoError(t, Get(ic))
	require.Equal(t, []byte("v"), ic.VM.Estack.PopBytes())
}

func TestGetAbsentReturnsEmpty(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	deployStorageContract(t, ic, sh)

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("missing"))
	require.NoError(t, Get(ic))
	require.Equal(t, []byte{}, ic.VM.Estack.PopBytes())
}

func TestPutExConstantThenPutFails(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	deployStorageContract(t, ic, sh)

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	ic.VM.Estack.PushVal([]byte("v"))
	ic.VM.Estack.PushVal(int64(ConstantFlag))
	require.NoError(t, PutEx(ic))

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	ic.VM.Estack.PushVal([]byte("v2"))
	err := Put(ic)
	require.ErrorIs(t, err, ErrConstantEntry)

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	require.NoError(t, Get(ic))
	require.Equal(t, []byte("v"), ic.VM.Estack.PopBytes())
}

func TestDeleteThenGetReturnsEmpty(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	deployStorageContract(t, ic, sh)

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	ic.VM.Estack.PushVal([]byte("v"))
	require.NoError(t, Put(ic))

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	require.NoError(t, Delete(ic))

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	require.NoError(t, Get(ic))
	require.Equal(t, []byte{}, ic.VM.Estack.PopBytes())
}

func TestPutThroughReadOnlyContextFails(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	deployStorageContract(t, ic, sh)

	require.NoError(t, GetReadOnlyContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	ic.VM.Estack.PushVal([]byte("v"))
	err := Put(ic)
	require.ErrorIs(t, err, ErrReadOnlyContext)
}

func TestPutKeyTooLongFails(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	deployStorageContract(t, ic, sh)

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal(make([]byte, 1025))
	ic.VM.Estack.PushVal([]byte("v"))
	err := Put(ic)
	require.ErrorIs(t, err, ErrKeyTooLong)
}

func TestPutOutsideApplicationTriggerFails(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Verification, sh)
	deployStorageContract(t, ic, sh)

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	ic.VM.Estack.PushVal([]byte("v"))
	err := Put(ic)
	require.ErrorIs(t, err, ErrWrongTrigger)
}

func TestPutToStoragelessContractFails(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	require.NoError(t, ic.DAO.PutContract(&state.Contract{ScriptHash: sh, HasStorage: false}))

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("k"))
	ic.VM.Estack.PushVal([]byte("v"))
	err := Put(ic)
	require.ErrorIs(t, err, ErrNoStorageContract)
}

func TestFindIteratesPrefixAndRegistersDisposable(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	deployStorageContract(t, ic, sh)

	for _, kv := range []struct{ k, v string }{{"a:1", "1"}, {"a:2", "2"}, {"b:1", "3"}} {
		require.NoError(t, GetContext(ic))
		ic.VM.Estack.PushVal([]byte(kv.k))
		ic.VM.Estack.PushVal([]byte(kv.v))
		require.NoError(t, Put(ic))
	}

	require.NoError(t, GetContext(ic))
	ic.VM.Estack.PushVal([]byte("a:"))
	require.NoError(t, Find(ic))

	handle := ic.VM.Estack.Pop().(*stackitem.Interop)
	require.Equal(t, stackitem.InteropIterator, handle.Kind())
	it := handle.Value().(*Iterator)

	var got []string
	for it.Next() {
		s := it.Value().(*stackitem.Struct)
		got = append(got, string(s.Value().([]stackitem.Item)[0].Bytes()))
	}
	require.ElementsMatch(t, []string{"a:1", "a:2"}, got)

	ic.Dispose()
}

func TestAsReadOnlyPreservesIdentity(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)

	require.NoError(t, GetContext(ic))
	require.NoError(t, AsReadOnly(ic))

	ctx, err := popContext(ic)
	require.NoError(t, err)
	require.True(t, ctx.ReadOnly)
	require.Equal(t, sh, ctx.ScriptHash)
}
