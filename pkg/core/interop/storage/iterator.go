package storage

import "github.com/synapse-chain/synapse/pkg/vm/stackitem"

// entry is one key/value pair captured by Find at call time; the
// snapshot is exclusively owned by the session for its lifetime (§5), so
// a point-in-time copy is safe to iterate without re-reading the store.
type entry struct {
	key, value []byte
}

// Iterator walks a Find result set. It implements interop.Disposable so
// the owning session releases it on Dispose even if the contract never
// exhausts it.
type Iterator struct {
	items []entry
	pos   int
}

// NewIterator wraps a captured result set, positioned before the first
// element.
func NewIterator(items []entry) *Iterator {
	return &Iterator{items: items, pos: -1}
}

// Next advances the cursor, returning false once exhausted.
func (it *Iterator) Next() bool {
	if it.pos+1 >= len(it.items) {
		return false
	}
	it.pos++
	return true
}

// Value returns the current element as a two-element Struct{key, value}.
func (it *Iterator) Value() stackitem.Item {
	e := it.items[it.pos]
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.NewByteArray(e.key),
		stackitem.NewByteArray(e.value),
	})
}

// Dispose implements interop.Disposable; the iterator holds no resource
// beyond its own slice, so there is nothing to release.
func (it *Iterator) Dispose() {}
