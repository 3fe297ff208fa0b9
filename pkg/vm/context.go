package vm

import "github.com/synapse-chain/synapse/pkg/util"

// Context is one call frame: the executing script's identity and its own
// evaluation stack. The engine pushes a new Context per CALL and pops it
// on RET; this layer only reads the chain to answer the
// GetExecutingScriptHash/GetCallingScriptHash/GetEntryScriptHash
// syscalls.
type Context struct {
	ScriptHash util.Uint160
	Estack     *Stack
	caller     *Context
}

// NewContext creates a root call frame for scriptHash with a fresh
// evaluation stack.
func NewContext(scriptHash util.Uint160) *Context {
	return &Context{ScriptHash: scriptHash, Estack: NewStack("estack")}
}

// Call creates a child frame for scriptHash, recording ctx as its caller.
func (ctx *Context) Call(scriptHash util.Uint160) *Context {
	return &Context{ScriptHash: scriptHash, Estack: NewStack("estack"), caller: ctx}
}

// Caller returns the frame that invoked ctx, or nil for the entry frame.
func (ctx *Context) Caller() *Context {
	return ctx.caller
}

// Entry walks the caller chain back to the root frame.
func (ctx *Context) Entry() *Context {
	c := ctx
	for c.caller != nil {
		c = c.caller
	}
	return c
}
