// Package blockchain implements the System.Blockchain syscalls: height,
// and hash/height-keyed lookups of headers, blocks, transactions and
// contracts.
package blockchain

import (
	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/interop/interopnames"
	"github.com/synapse-chain/synapse/pkg/util"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// maxHeightPayload bounds the "numeric height" form GetHeader/GetBlock
// accept on the stack: up to 5 bytes, matching a nonnegative integer that
// comfortably exceeds any real chain height without colliding with a
// 32-byte hash.
const maxHeightPayload = 5

// Register adds every System.Blockchain handler to reg.
func Register(reg *interop.Registry) {
	reg.RegisterName(interopnames.SystemBlockchainGetHeight, 1, GetHeight)
	reg.RegisterName(interopnames.SystemBlockchainGetHeader, 100, GetHeader)
	reg.RegisterName(interopnames.SystemBlockchainGetBlock, 200, GetBlock)
	reg.RegisterName(interopnames.SystemBlockchainGetTransaction, 200, GetTransaction)
	reg.RegisterName(interopnames.SystemBlockchainGetTransactionHeight, 100, GetTransactionHeight)
	reg.RegisterName(interopnames.SystemBlockchainGetContract, 100, GetContract)
}

// GetHeight pushes the chain's current height.
func GetHeight(ic *interop.Context) error {
	ic.VM.Estack.PushVal(int64(ic.DAO.Height()))
	return nil
}

// resolveHash interprets payload as either a numeric height (<=5 bytes)
// or a 32-byte hash, returning the canonical block hash either way.
// ok is false when a numeric height has no indexed block.
func resolveHash(ic *interop.Context, payload []byte) (util.Uint256, bool) {
	if len(payload) == util.Uint256Size {
		h, err := util.Uint256DecodeBytesBE(payload)
		if err != nil {
			return util.Uint256{}, false
		}
		return h, true
	}
	if len(payload) <= maxHeightPayload {
		var height uint64
		for i := len(payload) - 1; i >= 0; i-- {
			height = height<<8 | uint64(payload[i])
		}
		return ic.DAO.GetHashByHeight(uint32(height))
	}
	return util.Uint256{}, false
}

// GetHeader pops a height-or-hash payload and pushes a Header interop
// handle, or an empty byte string on miss.
func GetHeader(ic *interop.Context) error {
	payload := ic.VM.Estack.PopBytes()
	hash, ok := resolveHash(ic, payload)
	if !ok {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	b := ic.DAO.GetBlock(hash)
	if b == nil {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropHeader, &b.Header))
	return nil
}

// GetBlock pops a height-or-hash payload and pushes a Block interop
// handle, or an empty byte string on miss.
func GetBlock(ic *interop.Context) error {
	payload := ic.VM.Estack.PopBytes()
	hash, ok := resolveHash(ic, payload)
	if !ok {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	b := ic.DAO.GetBlock(hash)
	if b == nil {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropBlock, b))
	return nil
}

// GetTransaction pops a 32-byte hash and pushes a Transaction interop
// handle, or an empty byte string on miss.
func GetTransaction(ic *interop.Context) error {
	hashBytes := ic.VM.Estack.PopBytes()
	hash, err := util.Uint256DecodeBytesBE(hashBytes)
	if err != nil {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	tx := ic.DAO.GetTransaction(hash)
	if tx == nil {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropTransaction, tx))
	return nil
}

// GetTransactionHeight pops a 32-byte hash and pushes the height of the
// block that included it, or -1 if absent.
func GetTransactionHeight(ic *interop.Context) error {
	hashBytes := ic.VM.Estack.PopBytes()
	hash, err := util.Uint256DecodeBytesBE(hashBytes)
	if err != nil {
		ic.VM.Estack.PushVal(int64(-1))
		return nil
	}
	ic.VM.Estack.PushVal(int64(ic.DAO.GetTransactionHeight(hash)))
	return nil
}

// GetContract pops a 20-byte script hash and pushes a Contract interop
// handle, or an empty byte string on miss.
func GetContract(ic *interop.Context) error {
	shBytes := ic.VM.Estack.PopBytes()
	sh, err := util.Uint160DecodeBytesBE(shBytes)
	if err != nil {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	c := ic.DAO.GetContract(sh)
	if c == nil {
		ic.VM.Estack.PushVal([]byte{})
		return nil
	}
	ic.VM.Estack.Push(stackitem.NewInterop(stackitem.InteropContract, c))
	return nil
}
