// Package contract implements the System.Contract syscalls: storage
// context provisioning gated by deployment provenance, and contract
// destruction.
package contract

import (
	"errors"

	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/interop/interopnames"
	istorage "github.com/synapse-chain/synapse/pkg/core/interop/storage"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// ErrNotCreator is returned by GetStorageContext when the executing
// script is not recorded as the target contract's creator.
var ErrNotCreator = errors.New("contract: executing script is not the creator")

// ErrUnknownContract is returned when the target contract does not
// exist.
var ErrUnknownContract = errors.New("contract: unknown contract")

// ErrDestroyWrongTrigger is returned by Destroy outside the Application
// trigger.
var ErrDestroyWrongTrigger = errors.New("contract: destroy requires the Application trigger")

// Register adds every System.Contract handler to reg.
func Register(reg *interop.Registry) {
	reg.RegisterName(interopnames.SystemContractGetStorageContext, 1, GetStorageContext)
	reg.RegisterName(interopnames.SystemContractDestroy, 1, Destroy)
}

// GetStorageContext pops a 20-byte contract script hash and pushes a
// writable StorageContext over it, provided the executing script is
// recorded as that contract's creator.
func GetStorageContext(ic *interop.Context) error {
	targetBytes := ic.VM.Estack.PopBytes()
	target, err := util.Uint160DecodeBytesBE(targetBytes)
	if err != nil {
		return err
	}
	if ic.DAO.GetContract(target) == nil {
		return ErrUnknownContract
	}
	if !ic.IsCreatorOf(ic.VM.ScriptHash, target) {
		return ErrNotCreator
	}
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropStorageContext, istorage.Context{ScriptHash: target}))
	return nil
}

// Destroy pops nothing: it removes the executing script's own contract
// record and purges its storage partition, if any. It may only run
// under the Application trigger.
func Destroy(ic *interop.Context) error {
	if !ic.Trigger.IsApplication() {
		return ErrDestroyWrongTrigger
	}
	sh := ic.VM.ScriptHash
	c := ic.DAO.GetContract(sh)
	if c == nil {
		return ErrUnknownContract
	}
	if c.HasStorage {
		if err := ic.DAO.PurgeContractStorage(sh); err != nil {
			return err
		}
	}
	return ic.DAO.DeleteContract(sh)
}
