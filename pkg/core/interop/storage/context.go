// Package storage implements the System.Storage and System.StorageContext
// syscalls: the per-contract key/value partition, gated by the read-only
// flag and the trigger, constant-entry, and key-length invariants §4.3
// describes.
package storage

import "github.com/synapse-chain/synapse/pkg/util"

// Context is a capability handle granting access to one contract's
// storage partition; ReadOnly is latched one-way by AsReadOnly.
type Context struct {
	ScriptHash util.Uint160
	ReadOnly   bool
}

// AsReadOnly returns a new Context over the same partition with
// ReadOnly forced to true.
func (c Context) AsReadOnly() Context {
	return Context{ScriptHash: c.ScriptHash, ReadOnly: true}
}
