package transaction

import (
	"testing"

	"github.com/stretchr/testify/require"

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

func TestGetHash(t *testing.T) {
	tx := &coretx.Transaction{Script: []byte{1, 2, 3}}
	ic := newSession(t)
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropTransaction, tx))
	require.NoError(t, GetHash(ic))
	require.Equal(t, tx.Hash().BytesBE(), ic.VM.Estack.Pop().Bytes())
}

func TestGetHashTypeMismatch(t *testing.T) {
	ic := newSession(t)
	ic.VM.Estack.PushVal([]byte("nope"))
	err := GetHash(ic)
	require.ErrorIs(t, err, ErrNotTransaction)
}
