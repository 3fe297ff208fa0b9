// Package header implements the System.Header accessor syscalls: each
// pops a Header interop handle and pushes one primitive attribute.
package header

import (
	"errors"

	coreblock "github.com/synapse-chain/synapse/pkg/core/block"
	"github.com/synapse-chain/synapse/pkg/core/interop"
	"github.com/synapse-chain/synapse/pkg/core/interop/interopnames"
	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// ErrNotHeader is returned when the top stack item is not a Header
// interop handle.
var ErrNotHeader = errors.New("header: expected a Header handle")

// Register adds every System.Header handler to reg.
func Register(reg *interop.Registry) {
	reg.RegisterName(interopnames.SystemHeaderGetIndex, 1, GetIndex)
	reg.RegisterName(interopnames.SystemHeaderGetHash, 1, GetHash)
	reg.RegisterName(interopnames.SystemHeaderGetPrevHash, 1, GetPrevHash)
	reg.RegisterName(interopnames.SystemHeaderGetTimestamp, 1, GetTimestamp)
}

func pop(ic *interop.Context) (*coreblock.Header, error) {
	item := ic.VM.Estack.Pop()
	handle, ok := item.(*stackitem.Interop)
	if !ok {
		return nil, ErrNotHeader
	}
	switch handle.Kind() {
	case stackitem.InteropHeader:
		h, ok := handle.Value().(*coreblock.Header)
		if !ok {
			return nil, ErrNotHeader
		}
		return h, nil
	case stackitem.InteropBlock:
		b, ok := handle.Value().(*coreblock.Block)
		if !ok {
			return nil, ErrNotHeader
		}
		return &b.Header, nil
	default:
		return nil, ErrNotHeader
	}
}

// GetIndex pushes the header's height.
func GetIndex(ic *interop.Context) error {
	h, err := pop(ic)
	if err != nil {
		return err
	}
	ic.VM.Estack.PushVal(int64(h.Index))
	return nil
}

// GetHash pushes the header's own hash.
func GetHash(ic *interop.Context) error {
	h, err := pop(ic)
	if err != nil {
		return err
	}
	ic.VM.Estack.PushVal(h.Hash().BytesBE())
	return nil
}

// GetPrevHash pushes the hash of the previous block.
func GetPrevHash(ic *interop.Context) error {
	h, err := pop(ic)
	if err != nil {
		return err
	}
	ic.VM.Estack.PushVal(h.PrevHash.BytesBE())
	return nil
}

// GetTimestamp pushes the header's timestamp.
func GetTimestamp(ic *interop.Context) error {
	h, err := pop(ic)
	if err != nil {
		return err
	}
	ic.VM.Estack.PushVal(int64(h.Timestamp))
	return nil
}
