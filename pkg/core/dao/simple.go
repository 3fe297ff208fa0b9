// Package dao implements the snapshot façade syscall handlers consume:
// keyed lookups over blocks, transactions, contracts and storage, backed
// by a storage.Store and fronted by a small LRU cache for the
// hot-path contract lookups. Block and header lookups read the store
// directly; they are not cached.
package dao

import (
	"errors"
	"sync"

	lru "github.com/hashicorp/golang-lru"

	"github.com/synapse-chain/synapse/pkg/core/block"
	"github.com/synapse-chain/synapse/pkg/core/state"
	"github.com/synapse-chain/synapse/pkg/core/storage"
	"github.com/synapse-chain/synapse/pkg/core/transaction"
	"github.com/synapse-chain/synapse/pkg/util"
)

const (
	contractCacheSize = 256
	headerCacheSize   = 256
)

var keyPrefixes = struct {
	storage, contract, block, transaction, heightIndex []byte
	tipKey                                             []byte
}{
	storage:     []byte{0x01},
	contract:    []byte{0x02},
	block:       []byte{0x03},
	transaction: []byte{0x04},
	heightIndex: []byte{0x05},
	tipKey:      []byte{0x06},
}

// Simple is the read/write snapshot view of ledger state the interop
// layer consumes. It is exclusively owned by one session for its
// lifetime: concurrent use from multiple sessions is not supported,
// matching the single-threaded execution model this layer assumes.
type Simple struct {
	store storage.Store

	mu              sync.Mutex
	contractCache   *lru.Cache
	headerCache     *lru.Cache
	persistingBlock *block.Block
	height          uint32
	heightSeen      bool
}

// NewSimple creates a Simple façade over store, restoring the chain
// height last committed to it, if any.
func NewSimple(store storage.Store) *Simple {
	contractCache, _ := lru.New(contractCacheSize)
	headerCache, _ := lru.New(headerCacheSize)
	d := &Simple{
		store:         store,
		contractCache: contractCache,
		headerCache:   headerCache,
	}
	if raw, err := store.Get(keyPrefixes.tipKey); err == nil && len(raw) == 4 {
		d.height = uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
		d.heightSeen = true
	}
	return d
}

// ErrNotFound is returned by lookups that find nothing for the given key.
var ErrNotFound = errors.New("not found")

func storageDBKey(k state.StorageKey) []byte {
	return append(append([]byte{}, keyPrefixes.storage...), k.Bytes()...)
}

// GetStorageItem returns the item at key, or nil if absent.
func (d *Simple) GetStorageItem(scriptHash util.Uint160, key []byte) *state.StorageItem {
	raw, err := d.store.Get(storageDBKey(state.StorageKey{ScriptHash: scriptHash, Key: key}))
	if err != nil {
		return nil
	}
	item := decodeStorageItem(raw)
	return &item
}

// PutStorageItem writes item at key.
func (d *Simple) PutStorageItem(scriptHash util.Uint160, key []byte, item state.StorageItem) error {
	return d.store.Put(storageDBKey(state.StorageKey{ScriptHash: scriptHash, Key: key}), encodeStorageItem(item))
}

// DeleteStorageItem removes the item at key. Deleting an absent key is
// not an error.
func (d *Simple) DeleteStorageItem(scriptHash util.Uint160, key []byte) error {
	return d.store.Delete(storageDBKey(state.StorageKey{ScriptHash: scriptHash, Key: key}))
}

// GetAndChange returns the item at key, creating it via makeDefault if
// absent, so the caller can mutate it in place before a subsequent Put.
func (d *Simple) GetAndChange(scriptHash util.Uint160, key []byte, makeDefault func() state.StorageItem) state.StorageItem {
	item := d.GetStorageItem(scriptHash, key)
	if item != nil {
		return *item
	}
	return makeDefault()
}

// Seek calls f for every storage entry whose key starts with prefix under
// scriptHash's partition, stopping early if f returns false.
func (d *Simple) Seek(scriptHash util.Uint160, prefix []byte, f func(key []byte, item state.StorageItem) bool) error {
	dbPrefix := append(append([]byte{}, keyPrefixes.storage...), scriptHash.BytesLE()...)
	dbPrefix = append(dbPrefix, prefix...)
	return d.store.Seek(dbPrefix, func(k, v []byte) bool {
		sk, err := state.StorageKeyFromBytes(k[len(keyPrefixes.storage):])
		if err != nil {
			return true
		}
		return f(sk.Key, decodeStorageItem(v))
	})
}

// PurgeContractStorage deletes every storage entry belonging to
// scriptHash, used by Contract.Destroy.
func (d *Simple) PurgeContractStorage(scriptHash util.Uint160) error {
	var keys [][]byte
	if err := d.Seek(scriptHash, nil, func(key []byte, _ state.StorageItem) bool {
		keys = append(keys, key)
		return true
	}); err != nil {
		return err
	}
	for _, k := range keys {
		if err := d.DeleteStorageItem(scriptHash, k); err != nil {
			return err
		}
	}
	return nil
}

func encodeStorageItem(item state.StorageItem) []byte {
	b := make([]byte, 1+len(item.Value))
	if item.IsConstant {
		b[0] = 1
	}
	copy(b[1:], item.Value)
	return b
}

func decodeStorageItem(b []byte) state.StorageItem {
	if len(b) == 0 {
		return state.StorageItem{}
	}
	value := make([]byte, len(b)-1)
	copy(value, b[1:])
	return state.StorageItem{Value: value, IsConstant: b[0] == 1}
}

// GetContract returns the contract record for scriptHash, or nil if
// absent.
func (d *Simple) GetContract(scriptHash util.Uint160) *state.Contract {
	if c, ok := d.contractCache.Get(scriptHash); ok {
		return c.(*state.Contract)
	}
	raw, err := d.store.Get(append(append([]byte{}, keyPrefixes.contract...), scriptHash.BytesLE()...))
	if err != nil {
		return nil
	}
	c, err := decodeContract(raw)
	if err != nil {
		return nil
	}
	d.contractCache.Add(scriptHash, c)
	return c
}

// PutContract stores c, keyed by its script hash.
func (d *Simple) PutContract(c *state.Contract) error {
	if err := d.store.Put(append(append([]byte{}, keyPrefixes.contract...), c.ScriptHash.BytesLE()...), encodeContract(c)); err != nil {
		return err
	}
	d.contractCache.Add(c.ScriptHash, c)
	return nil
}

// DeleteContract removes the contract record for scriptHash.
func (d *Simple) DeleteContract(scriptHash util.Uint160) error {
	d.contractCache.Remove(scriptHash)
	return d.store.Delete(append(append([]byte{}, keyPrefixes.contract...), scriptHash.BytesLE()...))
}

// GetBlock returns the block with the given hash, or nil if absent.
func (d *Simple) GetBlock(hash util.Uint256) *block.Block {
	raw, err := d.store.Get(append(append([]byte{}, keyPrefixes.block...), hash.BytesLE()...))
	if err != nil {
		return nil
	}
	b, err := decodeBlock(raw)
	if err != nil {
		return nil
	}
	return b
}

func heightIndexKey(height uint32) []byte {
	return append(append([]byte{}, keyPrefixes.heightIndex...),
		byte(height), byte(height>>8), byte(height>>16), byte(height>>24))
}

// PutBlock stores b, keyed by its hash, indexes it by height, and
// advances Height if b.Index is higher than the current height.
func (d *Simple) PutBlock(b *block.Block) error {
	data, err := encodeBlock(b)
	if err != nil {
		return err
	}
	hash := b.Hash()
	if err := d.store.Put(append(append([]byte{}, keyPrefixes.block...), hash.BytesLE()...), data); err != nil {
		return err
	}
	if err := d.store.Put(heightIndexKey(b.Index), hash.BytesLE()); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if b.Index >= d.height || !d.heightSeen {
		d.height = b.Index
		d.heightSeen = true
		h := d.height
		return d.store.Put(keyPrefixes.tipKey, []byte{byte(h), byte(h >> 8), byte(h >> 16), byte(h >> 24)})
	}
	return nil
}

// GetHashByHeight returns the canonical block hash at height, or false
// if no block has been indexed at that height.
func (d *Simple) GetHashByHeight(height uint32) (util.Uint256, bool) {
	raw, err := d.store.Get(heightIndexKey(height))
	if err != nil {
		return util.Uint256{}, false
	}
	hash, err := util.Uint256DecodeBytesLE(raw)
	if err != nil {
		return util.Uint256{}, false
	}
	return hash, true
}

// GetTransaction returns the transaction with the given hash, or nil if
// absent.
func (d *Simple) GetTransaction(hash util.Uint256) *transaction.Transaction {
	raw, err := d.store.Get(append(append([]byte{}, keyPrefixes.transaction...), hash.BytesLE()...))
	if err != nil {
		return nil
	}
	tx, err := decodeTransaction(raw)
	if err != nil {
		return nil
	}
	return tx
}

// PutTransaction stores tx, keyed by its hash, alongside the height of
// the block that included it.
func (d *Simple) PutTransaction(tx *transaction.Transaction, blockIndex uint32) error {
	data, err := encodeTransactionWithHeight(tx, blockIndex)
	if err != nil {
		return err
	}
	return d.store.Put(append(append([]byte{}, keyPrefixes.transaction...), tx.Hash().BytesLE()...), data)
}

// GetTransactionHeight returns the height of the block that included the
// transaction with the given hash, or -1 if absent.
func (d *Simple) GetTransactionHeight(hash util.Uint256) int32 {
	raw, err := d.store.Get(append(append([]byte{}, keyPrefixes.transaction...), hash.BytesLE()...))
	if err != nil {
		return -1
	}
	_, height, err := decodeTransactionWithHeight(raw)
	if err != nil {
		return -1
	}
	return int32(height)
}

// Height returns the current chain height.
func (d *Simple) Height() uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.height
}

// PersistingBlock returns the block currently being persisted, or nil if
// the session is not executing inside block persistence.
func (d *Simple) PersistingBlock() *block.Block {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.persistingBlock
}

// SetPersistingBlock records b as the block currently being persisted.
func (d *Simple) SetPersistingBlock(b *block.Block) {
	d.mu.Lock()
	d.persistingBlock = b
	d.mu.Unlock()
}

// Commit flushes any buffered state to the underlying store. Simple
// writes through immediately, so Commit is a no-op kept for interface
// parity with sessions that layer write-buffering on top.
func (d *Simple) Commit() error {
	return nil
}

// Store exposes the underlying storage.Store, for components (like
// Contract.Destroy's prefix purge) that need direct access.
func (d *Simple) Store() storage.Store {
	return d.store
}
