package util

import (
	"crypto/sha256"
	"errors"

	"github.com/mr-tron/base58"
)

// AddressVersion is the version byte prepended to a script hash before
// base58check-encoding it into a NEO-style address. It has no bearing on
// interop semantics; block headers render NextConsensus this way in their
// JSON form, matching the chain's wallet-facing conventions.
const AddressVersion = 0x35

// Address renders u as a base58check address string.
func (u Uint160) Address() string {
	b := make([]byte, 21)
	b[0] = AddressVersion
	copy(b[1:], u.BytesBE())
	hash := checksum(b)
	b = append(b, hash...)
	return base58.Encode(b)
}

// AddressToUint160 decodes a base58check address string back to a Uint160.
func AddressToUint160(address string) (u Uint160, err error) {
	b, err := base58.Decode(address)
	if err != nil {
		return u, err
	}
	if len(b) != 25 {
		return u, errors.New("invalid address length")
	}
	if b[0] != AddressVersion {
		return u, errors.New("invalid address version")
	}
	sum := checksum(b[:21])
	for i := range sum {
		if b[21+i] != sum[i] {
			return u, errors.New("invalid address checksum")
		}
	}
	return Uint160DecodeBytesBE(b[1:21])
}

func checksum(b []byte) []byte {
	h1 := sha256.Sum256(b)
	h2 := sha256.Sum256(h1[:])
	return h2[:4]
}
