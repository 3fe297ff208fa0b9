// Package stackitem implements the VM's tagged stack-value universe and
// its deterministic binary codec, used across every contract execution to
// move values between the VM, syscall handlers and persisted notification
// payloads.
package stackitem

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"github.com/synapse-chain/synapse/pkg/encoding/bigint"
)

// MaxSize caps the serialized byte length of any single StackValue.
const MaxSize = 1024 * 1024

// MaxArraySize caps the element count of any single container when
// reading one back off the wire (Deserialize, FromJSON). Building a
// container in Go (NewArray, Append, Map.Add) applies no cap.
const MaxArraySize = 2048

// MaxAllowedInteger is the largest (and, negated, the smallest) Integer
// ToJSON will render as a bare JSON number and FromJSON will accept one
// as: 2^53-1, the largest value that round-trips through an IEEE754
// double without loss. Anything bigger has to travel through
// Serialize/Deserialize instead.
const MaxAllowedInteger = 1<<53 - 1

// Errors returned by the codec and by Item constructors/converters.
var (
	ErrTooBig         = errors.New("item exceeds maximum allowed size")
	ErrTooBigArray    = errors.New("too many elements in container")
	ErrUnserializable = errors.New("item cannot be serialized")
	ErrInvalidValue   = errors.New("invalid value for this stack item type")
	ErrCircularRef    = errors.New("circular reference detected")
	ErrInvalidType    = errors.New("invalid stack item type")
	ErrTooDeep        = errors.New("container nesting too deep")
)

// Item is the common interface implemented by every concrete stack value.
type Item interface {
	// Type returns the item's tag.
	Type() Type
	// Value returns the item's underlying Go representation: []byte for
	// ByteArray, bool for Boolean, *big.Int for Integer, []Item for
	// Array/Struct, []MapElement for Map, and the opaque interface value
	// for InteropHandle.
	Value() interface{}
	// Bytes returns the item's raw byte representation as used by
	// Integer/ByteArray/Boolean conversions; it never returns an error for
	// non-container items.
	Bytes() []byte
	// Equals performs value equality, per the rules in Equals().
	Equals(Item) bool
	// String renders a short human-readable form, for logs and panics.
	String() string
}

// MapElement is one (key, value) pair of a Map, in insertion order.
type MapElement struct {
	Key   Item
	Value Item
}

// ByteArray holds raw octets.
type ByteArray struct {
	value []byte
}

// NewByteArray wraps b as a ByteArray item. b is not copied.
func NewByteArray(b []byte) *ByteArray {
	return &ByteArray{value: b}
}

// Type implements Item.
func (i *ByteArray) Type() Type { return ByteArrayT }

// Value implements Item.
func (i *ByteArray) Value() interface{} { return i.value }

// Bytes implements Item.
func (i *ByteArray) Bytes() []byte { return i.value }

// Equals implements Item.
func (i *ByteArray) Equals(o Item) bool {
	other, ok := o.(*ByteArray)
	if !ok {
		return false
	}
	return bytesEqual(i.value, other.value)
}

// String implements Item.
func (i *ByteArray) String() string {
	return fmt.Sprintf("ByteString(%s)", hex.EncodeToString(i.value))
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Bool holds a single truth value.
type Bool struct {
	value bool
}

// NewBool wraps b as a Bool item.
func NewBool(b bool) *Bool {
	return &Bool{value: b}
}

// Type implements Item.
func (i *Bool) Type() Type { return BooleanT }

// Value implements Item.
func (i *Bool) Value() interface{} { return i.value }

// Bytes implements Item: true is {0x01}, false is the empty string.
func (i *Bool) Bytes() []byte {
	if i.value {
		return []byte{1}
	}
	return []byte{}
}

// Equals implements Item.
func (i *Bool) Equals(o Item) bool {
	other, ok := o.(*Bool)
	if !ok {
		return false
	}
	return i.value == other.value
}

// String implements Item.
func (i *Bool) String() string {
	return fmt.Sprintf("Boolean(%t)", i.value)
}

// BigInteger holds an arbitrary-precision signed integer.
type BigInteger struct {
	value *big.Int
}

// NewBigInteger wraps n as a BigInteger item.
func NewBigInteger(n *big.Int) *BigInteger {
	return &BigInteger{value: n}
}

// Type implements Item.
func (i *BigInteger) Type() Type { return IntegerT }

// Value implements Item.
func (i *BigInteger) Value() interface{} { return i.value }

// Bytes implements Item: the minimal two's-complement little-endian
// encoding; zero is the empty string.
func (i *BigInteger) Bytes() []byte {
	return bigint.ToBytes(i.value)
}

// Equals implements Item.
func (i *BigInteger) Equals(o Item) bool {
	other, ok := o.(*BigInteger)
	if !ok {
		return false
	}
	return i.value.Cmp(other.value) == 0
}

// String implements Item.
func (i *BigInteger) String() string {
	return fmt.Sprintf("Integer(%s)", i.value.String())
}

// Array is an ordered, mutable sequence of items.
type Array struct {
	value []Item
}

// NewArray wraps items as an Array item.
func NewArray(items []Item) *Array {
	return &Array{value: items}
}

// Type implements Item.
func (i *Array) Type() Type { return ArrayT }

// Value implements Item.
func (i *Array) Value() interface{} { return i.value }

// Bytes implements Item but always panics: arrays have no scalar byte
// representation.
func (i *Array) Bytes() []byte {
	panic("stackitem: Array has no byte representation")
}

// Equals implements Item: by reference identity, matching the VM's own
// container comparison rule (value equality would require a recursive
// walk that itself needs cycle protection).
func (i *Array) Equals(o Item) bool {
	other, ok := o.(*Array)
	if !ok {
		return false
	}
	return i == other
}

// String implements Item.
func (i *Array) String() string {
	return fmt.Sprintf("Array(len=%d)", len(i.value))
}

// Append adds an item to the end of the array.
func (i *Array) Append(it Item) {
	i.value = append(i.value, it)
}

// Len returns the number of elements.
func (i *Array) Len() int { return len(i.value) }

// Struct is an Array distinguished by its tag.
type Struct struct {
	value []Item
}

// NewStruct wraps items as a Struct item.
func NewStruct(items []Item) *Struct {
	return &Struct{value: items}
}

// Type implements Item.
func (i *Struct) Type() Type { return StructT }

// Value implements Item.
func (i *Struct) Value() interface{} { return i.value }

// Bytes implements Item but always panics: structs have no scalar byte
// representation.
func (i *Struct) Bytes() []byte {
	panic("stackitem: Struct has no byte representation")
}

// Equals implements Item: structural comparison element-by-element, since
// Struct is used as a value type for things like transaction tuples;
// unlike Array this does not need cycle protection because struct nesting
// in practice is shallow and the VM itself bounds comparison depth.
func (i *Struct) Equals(o Item) bool {
	other, ok := o.(*Struct)
	if !ok || len(i.value) != len(other.value) {
		return false
	}
	for idx := range i.value {
		if !i.value[idx].Equals(other.value[idx]) {
			return false
		}
	}
	return true
}

// String implements Item.
func (i *Struct) String() string {
	return fmt.Sprintf("Struct(len=%d)", len(i.value))
}

// Len returns the number of elements.
func (i *Struct) Len() int { return len(i.value) }

// Map holds insertion-ordered key/value pairs; keys must be non-container
// values.
type Map struct {
	value []MapElement
}

// NewMap creates an empty Map.
func NewMap() *Map {
	return &Map{}
}

// Type implements Item.
func (i *Map) Type() Type { return MapT }

// Value implements Item.
func (i *Map) Value() interface{} { return i.value }

// Bytes implements Item but always panics: maps have no scalar byte
// representation.
func (i *Map) Bytes() []byte {
	panic("stackitem: Map has no byte representation")
}

// Equals implements Item: by reference identity, same rationale as Array.
func (i *Map) Equals(o Item) bool {
	other, ok := o.(*Map)
	if !ok {
		return false
	}
	return i == other
}

// String implements Item.
func (i *Map) String() string {
	return fmt.Sprintf("Map(len=%d)", len(i.value))
}

// Add sets key to value, appending if key is new, or it overwrites in
// place (preserving its original insertion position) if key already
// exists, per standard map-update semantics.
func (i *Map) Add(key, value Item) {
	for idx, el := range i.value {
		if el.Key.Equals(key) {
			i.value[idx].Value = value
			return
		}
	}
	i.value = append(i.value, MapElement{Key: key, Value: value})
}

// Index returns the index of key in the map, or -1 if absent.
func (i *Map) Index(key Item) int {
	for idx, el := range i.value {
		if el.Key.Equals(key) {
			return idx
		}
	}
	return -1
}

// Len returns the number of pairs.
func (i *Map) Len() int { return len(i.value) }

// Elements returns the map's pairs in insertion order. The returned slice
// shares storage with the map and must not be mutated by the caller.
func (i *Map) Elements() []MapElement { return i.value }

// Null is the VM's single null value, also JSON's null. It carries no
// state, so every Null{} literal is already a valid, comparable instance
// and there is no pointer identity to preserve.
type Null struct{}

// NewNull returns the null item.
func NewNull() Item { return Null{} }

// Type implements Item.
func (i Null) Type() Type { return NullT }

// Value implements Item.
func (i Null) Value() interface{} { return nil }

// Bytes implements Item: null has no byte representation.
func (i Null) Bytes() []byte { return []byte{} }

// Equals implements Item: every Null equals every other Null.
func (i Null) Equals(o Item) bool {
	_, ok := o.(Null)
	return ok
}

// String implements Item.
func (i Null) String() string { return "Null" }

// InteropKind identifies the concrete host-object kind an InteropHandle
// refers to, letting handlers discriminate without open dynamic dispatch.
type InteropKind byte

// Defined InteropKind values.
const (
	InteropUnknown InteropKind = iota
	InteropHeader
	InteropBlock
	InteropTransaction
	InteropContract
	InteropStorageContext
	InteropScriptContainer
	InteropIterator
)

// Interop holds a typed reference to a host object. It never serializes.
type Interop struct {
	kind InteropKind
	obj  interface{}
}

// NewInterop wraps obj, tagged with kind, as an Interop item.
func NewInterop(kind InteropKind, obj interface{}) *Interop {
	return &Interop{kind: kind, obj: obj}
}

// Type implements Item.
func (i *Interop) Type() Type { return InteropHandleT }

// Value implements Item.
func (i *Interop) Value() interface{} { return i.obj }

// Bytes implements Item but always panics: handles have no byte form.
func (i *Interop) Bytes() []byte {
	panic("stackitem: InteropHandle has no byte representation")
}

// Equals implements Item: by reference identity of the wrapped object.
func (i *Interop) Equals(o Item) bool {
	other, ok := o.(*Interop)
	if !ok {
		return false
	}
	return i.kind == other.kind && i.obj == other.obj
}

// String implements Item.
func (i *Interop) String() string {
	return fmt.Sprintf("InteropInterface(kind=%d)", i.kind)
}

// Kind returns the handle's InteropKind, for handlers to type-switch on.
func (i *Interop) Kind() InteropKind { return i.kind }

// Make converts a native Go value into the matching Item, panicking on a
// genuinely unrepresentable input. This mirrors the teacher's own
// permissive constructor used pervasively by handler code that already
// knows its argument shapes.
func Make(v interface{}) Item {
	switch val := v.(type) {
	case Item:
		return val
	case []byte:
		return NewByteArray(val)
	case string:
		return NewByteArray([]byte(val))
	case bool:
		return NewBool(val)
	case int:
		return NewBigInteger(big.NewInt(int64(val)))
	case int64:
		return NewBigInteger(big.NewInt(val))
	case uint32:
		return NewBigInteger(new(big.Int).SetUint64(uint64(val)))
	case uint64:
		return NewBigInteger(new(big.Int).SetUint64(val))
	case *big.Int:
		return NewBigInteger(val)
	case []Item:
		return NewArray(val)
	case nil:
		return NewByteArray([]byte{})
	default:
		panic(fmt.Sprintf("stackitem.Make: unsupported type %T", v))
	}
}
