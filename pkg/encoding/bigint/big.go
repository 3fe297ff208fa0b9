// Package bigint implements the minimal two's-complement little-endian
// encoding used for arbitrary-precision Integer stack values: the shortest
// byte sequence whose sign bit matches the value's sign.
package bigint

import "math/big"

// ToBytes converts n to its minimal little-endian two's-complement
// representation. Zero encodes as an empty slice.
func ToBytes(n *big.Int) []byte {
	if n.Sign() == 0 {
		return []byte{}
	}

	bs := n.Bytes() // big-endian magnitude, no leading zero byte
	if n.Sign() < 0 {
		// two's complement of the magnitude over len(bs) (+1 if needed) bytes
		ext := make([]byte, len(bs))
		copy(ext, bs)
		for i, j := 0, len(ext)-1; i < j; i, j = i+1, j-1 {
			ext[i], ext[j] = ext[j], ext[i]
		}
		twosComplementNegate(ext)
		if ext[len(ext)-1]&0x80 == 0 {
			ext = append(ext, 0xff)
		}
		return ext
	}

	le := make([]byte, len(bs))
	for i, b := range bs {
		le[len(bs)-i-1] = b
	}
	if le[len(le)-1]&0x80 != 0 {
		le = append(le, 0)
	}
	return le
}

// twosComplementNegate negates b (little-endian magnitude) in place,
// producing its two's-complement encoding.
func twosComplementNegate(b []byte) {
	carry := byte(1)
	for i := range b {
		b[i] = ^b[i]
		sum := uint16(b[i]) + uint16(carry)
		b[i] = byte(sum)
		carry = byte(sum >> 8)
	}
}

// FromBytes decodes the minimal little-endian two's-complement
// representation produced by ToBytes.
func FromBytes(b []byte) *big.Int {
	if len(b) == 0 {
		return big.NewInt(0)
	}

	be := make([]byte, len(b))
	for i, v := range b {
		be[len(b)-i-1] = v
	}

	n := new(big.Int).SetBytes(be)
	if be[0]&0x80 != 0 {
		n.Sub(n, new(big.Int).Lsh(big.NewInt(1), uint(len(b))*8))
	}
	return n
}
