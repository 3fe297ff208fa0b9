package stackitem

// Type is the tag byte that identifies a StackValue's concrete kind. These
// values are wire-visible and must never change.
type Type byte

const (
	// ByteArrayT holds raw octets.
	ByteArrayT Type = 0x00
	// BooleanT holds a single truth value.
	BooleanT Type = 0x01
	// IntegerT holds an arbitrary-precision signed integer.
	IntegerT Type = 0x02
	// InteropHandleT holds a typed reference to a host object. Never
	// serializable.
	InteropHandleT Type = 0x40
	// ArrayT holds an ordered, mutable sequence.
	ArrayT Type = 0x80
	// StructT is an Array distinguished by this tag.
	StructT Type = 0x81
	// MapT holds insertion-ordered key/value pairs.
	MapT Type = 0x82
	// PointerT holds a code pointer. Carried for completeness with the
	// teacher's type set; never produced by this layer and never
	// serializable.
	PointerT Type = 0x10
	// NullT holds the single null value, used to fill empty slots and to
	// represent JSON's null.
	NullT Type = 0x11
)

// String returns the type's canonical name.
func (t Type) String() string {
	switch t {
	case ByteArrayT:
		return "ByteString"
	case BooleanT:
		return "Boolean"
	case IntegerT:
		return "Integer"
	case InteropHandleT:
		return "InteropInterface"
	case ArrayT:
		return "Array"
	case StructT:
		return "Struct"
	case MapT:
		return "Map"
	case PointerT:
		return "Pointer"
	case NullT:
		return "Null"
	default:
		return "Invalid"
	}
}

// IsValid reports whether t is one of the defined tags.
func (t Type) IsValid() bool {
	switch t {
	case ByteArrayT, BooleanT, IntegerT, InteropHandleT, ArrayT, StructT, MapT, PointerT, NullT:
		return true
	default:
		return false
	}
}
