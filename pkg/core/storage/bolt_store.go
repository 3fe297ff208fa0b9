package storage

import (
	"errors"

	"github.com/pierrec/lz4"
	bolt "go.etcd.io/bbolt"
)

var bucket = []byte("synapse")

var (
	errTruncatedRecord    = errors.New("storage: truncated record")
	errUnknownEncodingTag = errors.New("storage: unknown record encoding tag")
)

// compressThreshold is the value size at or above which BoltStore transparently
// lz4-compresses an entry before writing it. Most storage items (balances,
// small counters) stay well under this and pay no compression overhead.
const compressThreshold = 256

// Every value written to the bucket is framed with an unconditional
// 1-byte tag identifying its encoding. This must never be a prefix match
// on the payload itself: a raw value's leading bytes are caller data
// (contract hashes, block heights, script hashes) and can legitimately
// take on any bit pattern, so a sniffed magic-bytes marker is ambiguous
// with an untagged raw payload. Tagging every record, including raw
// ones, removes that ambiguity entirely.
const (
	tagRaw        byte = 0
	tagCompressed byte = 1
)

// BoltStore is a Store backed by a bbolt database file, the backend used
// for durable ledger and contract storage state.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (creating if necessary) a bbolt database at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		db.Close() //nolint:errcheck // already returning the Update error.
		return nil, err
	}
	return &BoltStore{db: db}, nil
}

// Get implements Store.
func (s *BoltStore) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucket).Get(key)
		if v == nil {
			return ErrKeyNotFound
		}
		value = make([]byte, len(v))
		copy(value, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decompress(value)
}

// Put implements Store.
func (s *BoltStore) Put(key, value []byte) error {
	stored := compress(value)
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(key, stored)
	})
}

// Delete implements Store.
func (s *BoltStore) Delete(key []byte) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete(key)
	})
}

// Seek implements Store.
func (s *BoltStore) Seek(prefix []byte, f func(k, v []byte) bool) error {
	return s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucket).Cursor()
		for k, v := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, v = c.Next() {
			val, err := decompress(v)
			if err != nil {
				return err
			}
			if !f(k, val) {
				break
			}
		}
		return nil
	})
}

// Close implements Store.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func hasPrefix(b, prefix []byte) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := range prefix {
		if b[i] != prefix[i] {
			return false
		}
	}
	return true
}

func compress(value []byte) []byte {
	if len(value) >= compressThreshold {
		dst := make([]byte, lz4.CompressBlockBound(len(value)))
		n, err := lz4.CompressBlock(value, dst, nil)
		if err == nil && n > 0 && n < len(value) {
			out := make([]byte, 0, 1+4+n)
			out = append(out, tagCompressed)
			out = append(out, byte(len(value)), byte(len(value)>>8), byte(len(value)>>16), byte(len(value)>>24))
			out = append(out, dst[:n]...)
			return out
		}
	}
	out := make([]byte, 0, 1+len(value))
	out = append(out, tagRaw)
	out = append(out, value...)
	return out
}

func decompress(stored []byte) ([]byte, error) {
	if len(stored) == 0 {
		return nil, errTruncatedRecord
	}
	tag, body := stored[0], stored[1:]
	switch tag {
	case tagRaw:
		return body, nil
	case tagCompressed:
		if len(body) < 4 {
			return nil, errTruncatedRecord
		}
		origSize := int(body[0]) | int(body[1])<<8 | int(body[2])<<16 | int(body[3])<<24
		dst := make([]byte, origSize)
		n, err := lz4.UncompressBlock(body[4:], dst)
		if err != nil {
			return nil, err
		}
		return dst[:n], nil
	default:
		return nil, errUnknownEncodingTag
	}
}
