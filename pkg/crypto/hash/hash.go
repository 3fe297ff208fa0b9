// Package hash collects the digest primitives the interop and ledger
// layers need: single/double SHA-256 for ledger hashes and RIPEMD-160 for
// script hashes.
package hash

import (
	"crypto/sha256"

	"github.com/synapse-chain/synapse/pkg/util"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // used intentionally, matches on-chain Hash160.
)

// Sha256 computes a single SHA-256 checksum of b.
func Sha256(b []byte) util.Uint256 {
	return sha256.Sum256(b)
}

// DoubleSha256 computes SHA-256 twice over b, the digest used for ledger
// block hashes. Transaction hashes use a single Sha256.
func DoubleSha256(b []byte) util.Uint256 {
	h1 := sha256.Sum256(b)
	return sha256.Sum256(h1[:])
}

// RipeMD160 computes a RIPEMD-160 digest of b.
func RipeMD160(b []byte) util.Uint160 {
	r := ripemd160.New()
	r.Write(b) //nolint:errcheck // hash.Hash.Write never returns an error.
	var u util.Uint160
	copy(u[:], r.Sum(nil))
	return u
}

// Hash160 is SHA-256 followed by RIPEMD-160, the digest used to derive a
// script hash from a verification script.
func Hash160(b []byte) util.Uint160 {
	sha := sha256.Sum256(b)
	return RipeMD160(sha[:])
}

// Hash256 is double SHA-256, an alias kept for parity with Hash160 naming.
func Hash256(b []byte) util.Uint256 {
	return DoubleSha256(b)
}
