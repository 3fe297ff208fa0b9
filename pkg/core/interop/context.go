// Package interop implements the per-execution service session: the
// registry of named syscalls and the bundle of trigger, snapshot,
// notification log, created-contract table and disposables a single VM
// execution runs against.
package interop

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/synapse-chain/synapse/pkg/core/block"
	"github.com/synapse-chain/synapse/pkg/core/dao"
	"github.com/synapse-chain/synapse/pkg/core/state"
	"github.com/synapse-chain/synapse/pkg/smartcontract/trigger"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// Disposable is a resource a session must release on Dispose, such as a
// storage-scan iterator handed out by Storage.Find.
type Disposable interface {
	Dispose()
}

// SecondsPerBlock is the fallback interval GetTime adds to the best
// header's timestamp when no block is being persisted. See the
// CurrentTimestamp doc comment for why this is a known, preserved
// weakness rather than a bug.
const SecondsPerBlock = 15

type disposableEntry struct {
	id uuid.UUID
	d  Disposable
}

// Context is the state one VM execution runs against: which trigger
// invoked it, the snapshot it reads and writes, the call-frame chain
// (VM), the registry its syscalls resolve against, and everything that
// accumulates over the run (notifications, created contracts,
// disposables).
type Context struct {
	Trigger   trigger.Type
	DAO       *dao.Simple
	Container stackitem.Item // InteropHandle wrapping the script container (Transaction or Block).
	VM        *vm.Context
	Registry  *Registry
	Log       *zap.Logger
	Metrics   *Metrics

	Hardforks map[string]uint32

	mu              sync.Mutex
	notifications   []state.NotificationEvent
	contractsCreated map[util.Uint160]util.Uint160
	disposables     []disposableEntry
	disposed        bool
}

// NewContext constructs a session bound to trigger t, reading and writing
// through d, for the call frame vmCtx, resolving syscalls against reg.
func NewContext(t trigger.Type, d *dao.Simple, vmCtx *vm.Context, reg *Registry, log *zap.Logger, metrics *Metrics) *Context {
	if log == nil {
		log = zap.NewNop()
	}
	return &Context{
		Trigger:          t,
		DAO:              d,
		VM:               vmCtx,
		Registry:         reg,
		Log:              log,
		Metrics:          metrics,
		contractsCreated: make(map[util.Uint160]util.Uint160),
	}
}

// WithContainer sets the session's script container, wrapping obj (a
// *transaction.Transaction or *block.Block) in the InteropScriptContainer
// interop kind that GetScriptContainer, CheckWitness and Notify's
// recorded container hash all expect. It returns ic for chaining at
// construction time.
func (ic *Context) WithContainer(obj interface{}) *Context {
	ic.Container = stackitem.NewInterop(stackitem.InteropScriptContainer, obj)
	return ic
}

// PersistingBlock returns the block being persisted, or nil outside of
// block persistence (e.g. a Verification-trigger run answering an RPC).
func (ic *Context) PersistingBlock() *block.Block {
	return ic.DAO.PersistingBlock()
}

// CurrentTimestamp implements the GetTime fallback behavior of §4.4:
// the persisting block's own timestamp when there is one, otherwise the
// current best header's timestamp plus SecondsPerBlock. This second
// branch is deliberately predictable (see runtime.GetTime) and preserved
// rather than "fixed", since changing it would be consensus-breaking.
func (ic *Context) CurrentTimestamp() uint64 {
	if b := ic.PersistingBlock(); b != nil {
		return b.Timestamp
	}
	hash, ok := ic.DAO.GetHashByHeight(ic.DAO.Height())
	if !ok {
		return 0
	}
	best := ic.DAO.GetBlock(hash)
	if best == nil {
		return 0
	}
	return best.Timestamp + SecondsPerBlock*1000
}

// Notify records a notification event, preserving invocation order.
func (ic *Context) Notify(n state.NotificationEvent) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.notifications = append(ic.notifications, n)
}

// Notifications returns the notification log accumulated so far, in
// invocation order. The returned slice is owned by the caller.
func (ic *Context) Notifications() []state.NotificationEvent {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	out := make([]state.NotificationEvent, len(ic.notifications))
	copy(out, ic.notifications)
	return out
}

// RecordContractCreated registers creator as the deployer of contract for
// the lifetime of this session, so a same-session GetStorageContext call
// succeeds immediately without waiting for Commit to persist
// state.Contract.Creator.
func (ic *Context) RecordContractCreated(contract, creator util.Uint160) {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	ic.contractsCreated[contract] = creator
}

// IsCreatorOf reports whether executing is recorded as the creator of
// contract, either in this session's live table or (failing that) in the
// persisted contract record from a prior session's commit.
func (ic *Context) IsCreatorOf(executing, contract util.Uint160) bool {
	ic.mu.Lock()
	creator, ok := ic.contractsCreated[contract]
	ic.mu.Unlock()
	if ok {
		return creator == executing
	}
	c := ic.DAO.GetContract(contract)
	return c != nil && c.Creator == executing
}

// AddDisposable registers d for release on Dispose and returns a handle
// identifying it, the same token Storage.Find hands back to the VM as
// part of an iterator's interop handle.
func (ic *Context) AddDisposable(d Disposable) uuid.UUID {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	id := uuid.New()
	ic.disposables = append(ic.disposables, disposableEntry{id: id, d: d})
	return id
}

// Commit flushes the session's snapshot to durable storage.
func (ic *Context) Commit() error {
	return ic.DAO.Commit()
}

// Dispose releases every held resource in registration order. It is
// idempotent: calling it twice only releases resources once.
func (ic *Context) Dispose() {
	ic.mu.Lock()
	defer ic.mu.Unlock()
	if ic.disposed {
		return
	}
	ic.disposed = true
	for _, entry := range ic.disposables {
		entry.d.Dispose()
	}
}
