// Package services is the composition root that assembles a Registry
// carrying every syscall this layer defines. It exists as its own
// package (rather than living in pkg/core/interop itself) because each
// handler package imports interop.Context, and interop must not import
// them back.
package services

import (
	"github.com/synapse-chain/synapse/pkg/core/interop"
	iblock "github.com/synapse-chain/synapse/pkg/core/interop/block"
	"github.com/synapse-chain/synapse/pkg/core/interop/blockchain"
	"github.com/synapse-chain/synapse/pkg/core/interop/contract"
	iheader "github.com/synapse-chain/synapse/pkg/core/interop/header"
	"github.com/synapse-chain/synapse/pkg/core/interop/runtime"
	"github.com/synapse-chain/synapse/pkg/core/interop/storage"
	itransaction "github.com/synapse-chain/synapse/pkg/core/interop/transaction"
)

// NewRegistry builds a Registry with every System.* syscall §6 lists
// registered against it.
func NewRegistry() *interop.Registry {
	reg := interop.NewRegistry()
	runtime.Register(reg)
	storage.Register(reg)
	contract.Register(reg)
	blockchain.Register(reg)
	iheader.Register(reg)
	iblock.Register(reg)
	itransaction.Register(reg)
	return reg
}
