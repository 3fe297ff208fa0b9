package contract

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/synapse-chain/synapse/pkg/core/dao"
	"github.com/synapse-chain/synapse/pkg/core/interop"
	istorage "github.com/synapse-chain/synapse/pkg/core/interop/storage"
	"github.com/synapse-chain/synapse/pkg/core/state"
	"github.com/synapse-chain/synapse/pkg/core/storage"
	"github.com/synapse-chain/synapse/pkg/smartcontract/trigger"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

func newSession(t *testing.T, trig trigger.Type, sh util.Uint160) *interop.Context {
	t.Helper()
	return interop.NewContext(trig, dao.NewSimple(storage.NewMemoryStore()), vm.NewContext(sh), interop.NewRegistry(), nil, nil)
}

func TestGetStorageContextSucceedsForCreator(t *testing.T) {
	a := util.Uint160{1}
	c := util.Uint160{2}
	ic := newSession(t, trigger.Application, a)
	require.NoError(t, ic.DAO.PutContract(&state.Contract{ScriptHash: c, HasStorage: true, Creator: a}))
	ic.RecordContractCreated(c, a)

	ic.VM.Estack.PushVal(c.BytesBE())
	require.NoError(t, GetStorageContext(ic))

	handle := ic.VM.Estack.Pop().(*stackitem.Interop)
	require.Equal(t, stackitem.InteropStorageContext, handle.Kind())
	ctx := handle.Value().(istorage.Context)
	require.Equal(t, c, ctx.ScriptHash)
	require.False(t, ctx.ReadOnly)
}

func TestGetStorageContextFailsForNonCreator(t *testing.T) {
	b := util.Uint160{3}
	c := util.Uint160{2}
	ic := newSession(t, trigger.Application, b)
	require.NoError(t, ic.DAO.PutContract(&state.Contract{ScriptHash: c, HasStorage: true, Creator: util.Uint160{1}}))

	ic.VM.Estack.PushVal(c.BytesBE())
	err := GetStorageContext(ic)
	require.ErrorIs(t, err, ErrNotCreator)
}

func TestDestroyRequiresApplicationTrigger(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Verification, sh)
	require.NoError(t, ic.DAO.PutContract(&state.Contract{ScriptHash: sh, HasStorage: true}))

	err := Destroy(ic)
	require.ErrorIs(t, err, ErrDestroyWrongTrigger)
}

func TestDestroyPurgesStorage(t *testing.T) {
	sh := util.Uint160{1}
	ic := newSession(t, trigger.Application, sh)
	require.NoError(t, ic.DAO.PutContract(&state.Contract{ScriptHash: sh, HasStorage: true}))
	require.NoError(t, ic.DAO.PutStorageItem(sh, []byte("k"), state.StorageItem{Value: []byte("v")}))

	require.NoError(t, Destroy(ic))
	require.Nil(t, ic.DAO.GetContract(sh))
	require.Nil(t, ic.DAO.GetStorageItem(sh, []byte("k")))
}
