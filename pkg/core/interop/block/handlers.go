// Package block implements the System.Block accessor syscalls: popping a
// Block interop handle and pushing transaction-count, a freshly
// allocated array of transaction handles, or one transaction by index.
package block

import (
	"errors"

	coreblock "github.com/synapse-chain/synapse/pkg/core/block"
	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/interop/interopnames"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// ErrNotBlock is returned when the top stack item is not a Block interop
// handle.
var ErrNotBlock = errors.New("block: expected a Block handle")

// ErrTooManyTransactions is returned by GetTransactions when the block's
// transaction count exceeds stackitem.MaxArraySize.
var ErrTooManyTransactions = errors.New("block: transaction count exceeds MAX_ARRAY_SIZE")

// Register adds every System.Block handler to reg.
func Register(reg *interop.Registry) {
	reg.RegisterName(interopnames.SystemBlockGetTransactionCount, 1, GetTransactionCount)
	reg.RegisterName(interopnames.SystemBlockGetTransactions, 1, GetTransactions)
	reg.RegisterName(interopnames.SystemBlockGetTransaction, 1, GetTransaction)
}

func pop(ic *interop.Context) (*coreblock.Block, error) {
	item := ic.VM.Estack.Pop()
	handle, ok := item.(*stackitem.Interop)
	if !ok || handle.Kind() != stackitem.InteropBlock {
		return nil, ErrNotBlock
	}
	b, ok := handle.Value().(*coreblock.Block)
	if !ok {
		return nil, ErrNotBlock
	}
	return b, nil
}

// GetTransactionCount pushes the number of transactions in the block.
func GetTransactionCount(ic *interop.Context) error {
	b, err := pop(ic)
	if err != nil {
		return err
	}
	ic.VM.Estack.PushVal(int64(b.TransactionCount()))
	return nil
}

// GetTransactions pushes a freshly allocated Array of Transaction interop
// handles, one per transaction in the block.
func GetTransactions(ic *interop.Context) error {
	b, err := pop(ic)
	if err != nil {
		return err
	}
	if b.TransactionCount() > stackitem.MaxArraySize {
		return ErrTooManyTransactions
	}
	items := make([]stackitem.Item, b.TransactionCount())
	for i, tx := range b.Transactions {
		items[i] = stackitem.NewInterop(stackitem.InteropTransaction, tx)
	}
	ic.VM.Estack.Push(stackitem.NewArray(items))
	return nil
}

// GetTransaction pops an index and a Block handle (index on top, pushed
// last) and pushes the Transaction interop handle at that position,
// failing on an out-of-range index.
func GetTransaction(ic *interop.Context) error {
	idx := ic.VM.Estack.PopBigInt()
	b, err := pop(ic)
	if err != nil {
		return err
	}
	tx, err := b.GetTransaction(int(idx.Int64()))
	if err != nil {
		return err
	}
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropTransaction, tx))
	return nil
}
