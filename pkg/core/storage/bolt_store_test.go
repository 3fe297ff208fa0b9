package storage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := NewBoltStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestBoltStorePutGet(t *testing.T) {
	s := openBoltStore(t)
	require.NoError(t, s.Put([]byte("k"), []byte("v")))

	v, err := s.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}

func TestBoltStoreCompressesLargeValues(t *testing.T) {
	s := openBoltStore(t)
	large := bytes.Repeat([]byte("x"), compressThreshold*4)
	require.NoError(t, s.Put([]byte("big"), large))

	v, err := s.Get([]byte("big"))
	require.NoError(t, err)
	require.Equal(t, large, v)
}

func TestBoltStoreDeleteAndMissingKey(t *testing.T) {
	s := openBoltStore(t)
	require.NoError(t, s.Put([]byte("k"), []byte("v")))
	require.NoError(t, s.Delete([]byte("k")))

	_, err := s.Get([]byte("k"))
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestBoltStoreRawValueResemblingCompressedMagicRoundTrips(t *testing.T) {
	s := openBoltStore(t)
	// A raw value under compressThreshold whose leading bytes happen to
	// match what an unframed format might use as a "compressed" marker.
	// The per-record tag byte must keep this from being misread as
	// compressed on Get.
	tricky := append([]byte{0xc5, 0x10}, bytes.Repeat([]byte{0xAA}, 32)...)
	require.NoError(t, s.Put([]byte("k"), tricky))

	v, err := s.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, tricky, v)
}

func TestBoltStoreEmptyValueRoundTrips(t *testing.T) {
	s := openBoltStore(t)
	require.NoError(t, s.Put([]byte("k"), []byte{}))

	v, err := s.Get([]byte("k"))
	require.NoError(t, err)
	require.Empty(t, v)
}

func TestBoltStoreSeek(t *testing.T) {
	s := openBoltStore(t)
	require.NoError(t, s.Put([]byte("a:1"), []byte("1")))
	require.NoError(t, s.Put([]byte("a:2"), []byte("2")))
	require.NoError(t, s.Put([]byte("b:1"), []byte("3")))

	var got []string
	require.NoError(t, s.Seek([]byte("a:"), func(k, v []byte) bool {
		got = append(got, string(k))
		return true
	}))
	require.ElementsMatch(t, []string{"a:1", "a:2"}, got)
}
