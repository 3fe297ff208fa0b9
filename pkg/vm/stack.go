// Package vm exposes the narrow slice of the execution engine the interop
// layer consumes: an evaluation stack and call-frame chain. The opcode
// interpreter itself lives outside this layer's surface; handlers only
// ever push to, pop from, and introspect the frame they're invoked under.
package vm

import (
	"math/big"

	"github.com/synapse-chain/synapse/pkg/vm/stackitem"
)

// Stack is a named LIFO of stack items, the shape every evaluation,
// alt, and argument stack in the engine shares.
type Stack struct {
	name  string
	items []stackitem.Item
}

// NewStack creates an empty named Stack.
func NewStack(name string) *Stack {
	return &Stack{name: name}
}

// Push appends item to the top of the stack.
func (s *Stack) Push(item stackitem.Item) {
	s.items = append(s.items, item)
}

// PushVal wraps v via stackitem.Make and pushes the result.
func (s *Stack) PushVal(v interface{}) {
	s.Push(stackitem.Make(v))
}

// Pop removes and returns the top item. It panics on an empty stack, the
// same fault surfaced as a VM crash in the reference engine.
func (s *Stack) Pop() stackitem.Item {
	item := s.Peek(0)
	s.items = s.items[:len(s.items)-1]
	return item
}

// Peek returns the item n positions from the top (0 is the top) without
// removing it.
func (s *Stack) Peek(n int) stackitem.Item {
	idx := len(s.items) - 1 - n
	if idx < 0 || idx >= len(s.items) {
		panic("vm: stack index out of range")
	}
	return s.items[idx]
}

// Len returns the number of items currently on the stack.
func (s *Stack) Len() int {
	return len(s.items)
}

// PopBigInt pops the top item and coerces it to *big.Int, the common case
// for handlers reading numeric arguments.
func (s *Stack) PopBigInt() *big.Int {
	v, ok := s.Pop().Value().(*big.Int)
	if !ok {
		panic("vm: expected integer on stack")
	}
	return v
}

// PopBytes pops the top item and returns its byte representation.
func (s *Stack) PopBytes() []byte {
	return s.Pop().Bytes()
}
