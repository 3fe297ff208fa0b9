package storage

import (
	"errors"

	"github.com/synapse-chain/synapse/pkg/config/limits"
	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/interop/interopnames"
	"github.com/synapse-chain/synapse/pkg/core/state"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// ConstantFlag, when set on PutEx's flags argument, latches the written
// entry's IsConstant bit.
const ConstantFlag = 1

var (
	// ErrReadOnlyContext is returned by a mutation attempted through a
	// read-only StorageContext.
	ErrReadOnlyContext = errors.New("storage: context is read-only")
	// ErrKeyTooLong is returned when a key exceeds limits.MaxStorageKeyLen.
	ErrKeyTooLong = errors.New("storage: key exceeds maximum length")
	// ErrNoStorageContract is returned when the context's contract does
	// not exist or was deployed without storage.
	ErrNoStorageContract = errors.New("storage: contract does not exist or has no storage")
	// ErrConstantEntry is returned by a Put or Delete targeting an entry
	// previously written with the Constant flag.
	ErrConstantEntry = errors.New("storage: entry is constant")
	// ErrWrongTrigger is returned by a mutation attempted outside the
	// Application trigger.
	ErrWrongTrigger = errors.New("storage: mutation requires the Application trigger")
	// ErrNotStorageContext is returned when the top stack item is not a
	// StorageContext interop handle.
	ErrNotStorageContext = errors.New("storage: expected a StorageContext")
)

// Register adds every System.Storage / System.StorageContext handler to
// reg.
func Register(reg *interop.Registry) {
	reg.RegisterName(interopnames.SystemStorageGetContext, 1, GetContext)
	reg.RegisterName(interopnames.SystemStorageGetReadOnlyContext, 1, GetReadOnlyContext)
	reg.RegisterName(interopnames.SystemStorageGet, 100, Get)
	reg.RegisterName(interopnames.SystemStoragePut, 0, Put)
	reg.RegisterName(interopnames.SystemStoragePutEx, 0, PutEx)
	reg.RegisterName(interopnames.SystemStorageDelete, 100, Delete)
	reg.RegisterName(interopnames.SystemStorageFind, 1, Find)
	reg.RegisterName(interopnames.SystemStorageContextAsReadOnly, 1, AsReadOnly)
}

func popContext(ic *interop.Context) (Context, error) {
	item := ic.VM.Estack.Pop()
	handle, ok := item.(*stackitem.Interop)
	if !ok || handle.Kind() != stackitem.InteropStorageContext {
		return Context{}, ErrNotStorageContext
	}
	ctx, ok := handle.Value().(Context)
	if !ok {
		return Context{}, ErrNotStorageContext
	}
	return ctx, nil
}

func pushContext(ic *interop.Context, ctx Context) {
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropStorageContext, ctx))
}

// GetContext pushes a writable Context over the executing script's own
// partition.
func GetContext(ic *interop.Context) error {
	pushContext(ic, Context{ScriptHash: ic.VM.ScriptHash})
	return nil
}

// GetReadOnlyContext pushes a read-only Context over the executing
// script's own partition.
func GetReadOnlyContext(ic *interop.Context) error {
	pushContext(ic, Context{ScriptHash: ic.VM.ScriptHash, ReadOnly: true})
	return nil
}

// AsReadOnly pops a Context and pushes its read-only counterpart.
func AsReadOnly(ic *interop.Context) error {
	ctx, err := popContext(ic)
	if err != nil {
		return err
	}
	pushContext(ic, ctx.AsReadOnly())
	return nil
}

// Get pops (context, key) in push order — context goes on the stack
// first via GetContext/GetReadOnlyContext, key on top of it — and pushes
// the stored value, or an empty byte string if absent. It is permitted
// through a read-only context.
func Get(ic *interop.Context) error {
	key := ic.VM.Estack.PopBytes()
	ctx, err := popContext(ic)
	if err != nil {
		return err
	}
	item := ic.DAO.GetStorageItem(ctx.ScriptHash, key)
	if item == nil {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	ic.VM.Estack.PushVal(item.Value)
	return nil
}

func checkMutable(ic *interop.Context, ctx Context) error {
	if !ic.Trigger.IsApplication() {
		return ErrWrongTrigger
	}
	if ctx.ReadOnly {
		return ErrReadOnlyContext
	}
	contract := ic.DAO.GetContract(ctx.ScriptHash)
	if contract == nil || !contract.HasStorage {
		return ErrNoStorageContract
	}
	return nil
}

// Put pops (context, key, value) and writes value at key.
func Put(ic *interop.Context) error {
	return put(ic, 0)
}

// PutEx pops (context, key, value, flags) and writes value at key,
// latching the entry constant if flags carries ConstantFlag.
func PutEx(ic *interop.Context) error {
	flags := ic.VM.Estack.PopBigInt().Int64()
	return put(ic, flags)
}

func put(ic *interop.Context, flags int64) error {
	value := ic.VM.Estack.PopBytes()
	key := ic.VM.Estack.PopBytes()
	ctx, err := popContext(ic)
	if err != nil {
		return err
	}

	if len(key) > limits.MaxStorageKeyLen {
		return ErrKeyTooLong
	}
	if err := checkMutable(ic, ctx); err != nil {
		return err
	}
	if existing := ic.DAO.GetStorageItem(ctx.ScriptHash, key); existing != nil && existing.IsConstant {
		return ErrConstantEntry
	}
	return ic.DAO.PutStorageItem(ctx.ScriptHash, key, state.StorageItem{
		Value:      value,
		IsConstant: flags&ConstantFlag != 0,
	})
}

// Delete pops (context, key) in push order and removes the entry, if any.
func Delete(ic *interop.Context) error {
	key := ic.VM.Estack.PopBytes()
	ctx, err := popContext(ic)
	if err != nil {
		return err
	}

	if err := checkMutable(ic, ctx); err != nil {
		return err
	}
	if existing := ic.DAO.GetStorageItem(ctx.ScriptHash, key); existing != nil && existing.IsConstant {
		return ErrConstantEntry
	}
	return ic.DAO.DeleteStorageItem(ctx.ScriptHash, key)
}

// Find pops (context, prefix) and pushes an Iterator interop handle over
// every entry in the context's partition whose key starts with prefix.
func Find(ic *interop.Context) error {
	prefix := ic.VM.Estack.PopBytes()
	ctx, err := popContext(ic)
	if err != nil {
		return err
	}

	var items []entry
	if err := ic.DAO.Seek(ctx.ScriptHash, prefix, func(key []byte, item state.StorageItem) bool {
		items = append(items, entry{key: key, value: item.Value})
		return true
	}); err != nil {
		return err
	}

	it := NewIterator(items)
	ic.AddDisposable(it)
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropIterator, it))
	return nil
}
