// Package keys implements the minimal public-key surface the interop layer
// needs: decoding a compressed secp256r1 point and deriving the single-
// signature verification script hash CheckWitness compares against.
package keys

import (
	"crypto/elliptic" //nolint:staticcheck // P-256 point decompression has no ecosystem helper in this corpus.
	"errors"
	"fmt"
	"math/big"

	"github.com/synapse-chain/synapse/pkg/crypto/hash"
	"github.com/synapse-chain/synapse/pkg/util"
)

// PublicKeySize is the length of a compressed secp256r1 point.
const PublicKeySize = 33

// PublicKey represents a NEO-style compressed secp256r1 public key.
type PublicKey struct {
	X, Y *big.Int
}

var errInvalidPublicKey = errors.New("invalid public key")

// NewPublicKeyFromBytes decodes a 33-byte compressed public key.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", errInvalidPublicKey, PublicKeySize, len(b))
	}
	prefix := b[0]
	if prefix != 0x02 && prefix != 0x03 {
		return nil, fmt.Errorf("%w: invalid prefix byte 0x%02x", errInvalidPublicKey, prefix)
	}

	curve := elliptic.P256()
	x := new(big.Int).SetBytes(b[1:])
	y := decompressY(curve, x, prefix == 0x03)
	if y == nil || !curve.IsOnCurve(x, y) {
		return nil, fmt.Errorf("%w: point not on curve", errInvalidPublicKey)
	}
	return &PublicKey{X: x, Y: y}, nil
}

// decompressY recovers the y-coordinate of a point on curve given its x
// coordinate and the sign bit carried by the compression prefix.
func decompressY(curve elliptic.Curve, x *big.Int, odd bool) *big.Int {
	params := curve.Params()
	// y^2 = x^3 - 3x + b (mod p)
	x3 := new(big.Int).Exp(x, big.NewInt(3), params.P)
	threeX := new(big.Int).Mul(x, big.NewInt(3))
	ySq := new(big.Int).Sub(x3, threeX)
	ySq.Add(ySq, params.B)
	ySq.Mod(ySq, params.P)

	y := new(big.Int).ModSqrt(ySq, params.P)
	if y == nil {
		return nil
	}
	if y.Bit(0) != boolToBit(odd) {
		y.Sub(params.P, y)
	}
	return y
}

func boolToBit(b bool) uint {
	if b {
		return 1
	}
	return 0
}

// Bytes returns the 33-byte compressed encoding of the key.
func (p *PublicKey) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	if p.Y.Bit(0) == 1 {
		b[0] = 0x03
	} else {
		b[0] = 0x02
	}
	xBytes := p.X.Bytes()
	copy(b[1+PublicKeySize-1-len(xBytes):], xBytes)
	return b
}

// verificationScript builds the single-signature "PUSH pubkey; SYSCALL
// CheckSig" redeem script whose hash is the account this key controls.
// The opcodes are fixed NEO VM bytes; this layer never executes them, it
// only needs their hash.
func (p *PublicKey) verificationScript() []byte {
	raw := p.Bytes()
	script := make([]byte, 0, len(raw)+3)
	script = append(script, 0x0c, byte(len(raw))) // PUSHDATA1, length
	script = append(script, raw...)
	script = append(script, 0x41, 0x9e, 0xd0, 0xdc, 0x3a) // SYSCALL CheckSig
	return script
}

// ScriptHash returns the Hash160 of the key's verification script, the
// account hash CheckWitness matches a 33-byte-pubkey argument against.
func (p *PublicKey) ScriptHash() util.Uint160 {
	return hash.Hash160(p.verificationScript())
}
