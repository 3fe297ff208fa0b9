package util

import (
	"encoding/hex"
	"fmt"
)

// Uint256Size is the size of Uint256 in bytes.
const Uint256Size = 32

// Uint256 is a 32-byte (256-bit) little-endian ledger hash.
type Uint256 [Uint256Size]byte

// Uint256DecodeBytesBE decodes a big-endian byte slice into a Uint256.
func Uint256DecodeBytesBE(b []byte) (u Uint256, err error) {
	if len(b) != Uint256Size {
		return u, fmt.Errorf("expected %d bytes, got %d", Uint256Size, len(b))
	}
	for i, v := range b {
		u[Uint256Size-i-1] = v
	}
	return u, nil
}

// Uint256DecodeBytesLE decodes a little-endian byte slice into a Uint256.
func Uint256DecodeBytesLE(b []byte) (u Uint256, err error) {
	if len(b) != Uint256Size {
		return u, fmt.Errorf("expected %d bytes, got %d", Uint256Size, len(b))
	}
	copy(u[:], b)
	return u, nil
}

// BytesBE returns a big-endian byte slice copy of u.
func (u Uint256) BytesBE() []byte {
	b := make([]byte, Uint256Size)
	for i := 0; i < Uint256Size; i++ {
		b[i] = u[Uint256Size-i-1]
	}
	return b
}

// BytesLE returns a little-endian byte slice copy of u.
func (u Uint256) BytesLE() []byte {
	b := make([]byte, Uint256Size)
	copy(b, u[:])
	return b
}

// Equals reports whether u and other represent the same hash.
func (u Uint256) Equals(other Uint256) bool {
	return u == other
}

// Less orders two hashes lexicographically over their stored
// (little-endian) byte order.
func (u Uint256) Less(other Uint256) bool {
	for i := 0; i < Uint256Size; i++ {
		if u[i] != other[i] {
			return u[i] < other[i]
		}
	}
	return false
}

// String implements fmt.Stringer.
func (u Uint256) String() string {
	return "0x" + hex.EncodeToString(u.BytesBE())
}

// MarshalJSON implements the json.Marshaler interface.
func (u Uint256) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (u *Uint256) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return errInvalidUint160
	}
	s := string(data[1 : len(data)-1])
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	v, err := Uint256DecodeBytesBE(b)
	if err != nil {
		return err
	}
	*u = v
	return nil
}
