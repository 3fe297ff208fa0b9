package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get([]byte("k"))
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Put([]byte("k"), []byte("v")))
	v, err := s.Get([]byte("k"))
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)

	require.NoError(t, s.Delete([]byte("k")))
	_, err = s.Get([]byte("k"))
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStoreSeekPrefix(t *testing.T) {
	s := NewMemoryStore()
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

func TestMemoryStoreSeekStopsEarly(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Put([]byte("a:1"), []byte("1")))
	require.NoError(t, s.Put([]byte("a:2"), []byte("2")))

	count := 0
	require.NoError(t, s.Seek([]byte("a:"), func(k, v []byte) bool {
		count++
		return false
	}))
	require.Equal(t, 1, count)
}
