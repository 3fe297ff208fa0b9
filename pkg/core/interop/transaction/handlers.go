// Package transaction implements the System.Transaction accessor
// syscall: popping a Transaction interop handle and pushing its hash.
package transaction

import (
	"errors"

	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/interop/interopnames"
	coretx "github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// ErrNotTransaction is returned when the top stack item is not a
// Transaction interop handle.
var ErrNotTransaction = errors.New("transaction: expected a Transaction handle")

// Register adds the System.Transaction handler to reg.
func Register(reg *interop.Registry) {
	reg.RegisterName(interopnames.SystemTransactionGetHash, 1, GetHash)
}

// GetHash pushes the transaction's hash.
func GetHash(ic *interop.Context) error {
	item := ic.VM.Estack.Pop()
	handle, ok := item.(*stackitem.Interop)
	if !ok || handle.Kind() != stackitem.InteropTransaction {
		return ErrNotTransaction
	}
	tx, ok := handle.Value().(*coretx.Transaction)
	if !ok {
		return ErrNotTransaction
	}
	ic.VM.Estack.PushVal(tx.Hash().BytesBE())
	return nil
}
