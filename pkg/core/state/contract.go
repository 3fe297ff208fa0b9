package state

import "github.com/synapse-chain/synapse/pkg/util"

// Contract is the subset of a deployed contract's record the interop
// layer needs: enough to answer GetContract queries and to gate storage
// access by provenance. Deployment itself (manifest parsing, NEF
// verification) lives outside this layer's surface.
type Contract struct {
	ScriptHash util.Uint160
	Script     []byte
	HasStorage bool
	// Creator is the script hash that deployed this contract, the
	// provenance Contract.GetStorageContext checks against the
	// ContractsCreated table.
	Creator util.Uint160
}

// Hash returns the contract's script hash, its identity throughout this
// layer.
func (c *Contract) Hash() util.Uint160 {
	return c.ScriptHash
}
