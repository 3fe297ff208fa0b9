// Package state defines the persisted shapes the interop layer reads and
// writes through the snapshot façade: storage entries, contract records
// and execution notifications.
package state

// StorageItem is one value in a contract's storage partition. Once
// IsConstant is true the entry may neither be overwritten nor deleted.
type StorageItem struct {
	Value      []byte
	IsConstant bool
}

// Copy returns a copy of i with its own backing array.
func (i StorageItem) Copy() StorageItem {
	value := make([]byte, len(i.Value))
	copy(value, i.Value)
	return StorageItem{Value: value, IsConstant: i.IsConstant}
}
