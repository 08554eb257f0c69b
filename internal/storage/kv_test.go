package storage

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	kv := NewMemory()

	_, ok, err := kv.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Set("chat:session:a", []byte(`[]`)))
	value, ok, err := kv.Get("chat:session:a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`[]`), value)

	require.NoError(t, kv.Delete("chat:session:a"))
	_, ok, err = kv.Get("chat:session:a")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryValuesAreCopied(t *testing.T) {
	kv := NewMemory()
	payload := []byte("original")
	require.NoError(t, kv.Set("k", payload))
	payload[0] = 'X'

	value, ok, err := kv.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("original"), value)

	value[0] = 'Y'
	again, _, err := kv.Get("k")
	require.NoError(t, err)
	require.Equal(t, []byte("original"), again)
}

func TestPebbleRoundTrip(t *testing.T) {
	kv, err := OpenPebble(t.TempDir())
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set("wellness:mood:a", []byte(`[{"mood":7}]`)))
	value, ok, err := kv.Get("wellness:mood:a")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte(`[{"mood":7}]`), value)

	_, ok, err = kv.Get("wellness:mood:b")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, kv.Delete("wellness:mood:a"))
	_, ok, err = kv.Get("wellness:mood:a")
	require.NoError(t, err)
	require.False(t, ok)
}
