package state

import (
	"errors"

	"github.com/synapse-chain/synapse/pkg/config/limits"
	"github.com/synapse-chain/synapse/pkg/util"
)

var errShortStorageKey = errors.New("storage key too short to contain a script hash")

// StorageKey identifies one entry of a contract's storage partition: the
// owning script hash plus an arbitrary key, bounded by
// limits.MaxStorageKeyLen.
type StorageKey struct {
	ScriptHash util.Uint160
	Key        []byte
}

// Bytes returns the composite on-disk key: the script hash little-endian
// followed by the raw key bytes. §9's open question on Contract.Destroy
// requires this exact byte order so a prefix scan over ScriptHash finds
// every entry belonging to it.
func (k StorageKey) Bytes() []byte {
	b := make([]byte, util.Uint160Size+len(k.Key))
	copy(b, k.ScriptHash.BytesLE())
	copy(b[util.Uint160Size:], k.Key)
	return b
}

// Valid reports whether the key's length satisfies limits.MaxStorageKeyLen.
func (k StorageKey) Valid() bool {
	return len(k.Key) <= limits.MaxStorageKeyLen
}

// StorageKeyFromBytes parses the composite key produced by Bytes.
func StorageKeyFromBytes(b []byte) (StorageKey, error) {
	if len(b) < util.Uint160Size {
		return StorageKey{}, errShortStorageKey
	}
	sh, err := util.Uint160DecodeBytesLE(b[:util.Uint160Size])
	if err != nil {
		return StorageKey{}, err
	}
	key := make([]byte, len(b)-util.Uint160Size)
	copy(key, b[util.Uint160Size:])
	return StorageKey{ScriptHash: sh, Key: key}, nil
}
