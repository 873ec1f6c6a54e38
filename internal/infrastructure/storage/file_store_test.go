package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("clave", []byte(`{"a":1}`)))

	data, ok := store.Get("clave")
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(data))

	// Sobrescribir gana la última escritura
	require.NoError(t, store.Set("clave", []byte(`{"a":2}`)))
	data, _ = store.Get("clave")
	assert.JSONEq(t, `{"a":2}`, string(data))
}

func TestFileStore_ClaveInexistente(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("no-existe")
	assert.False(t, ok)
}

func TestFileStore_DeleteEsIdempotente(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("clave", []byte("1")))
	require.NoError(t, store.Delete("clave"))
	_, ok := store.Get("clave")
	assert.False(t, ok)

	assert.NoError(t, store.Delete("clave"), "borrar una clave inexistente no es error")
}

// Las identidades son texto libre, así que las claves con espacios, tildes o
// separadores de ruta tienen que mapear a nombres de archivo seguros.
func TestFileStore_EscapaClaves(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	keys := []string{"carrito_José Pérez", "carrito_../intruso", "carrito_a/b"}
	for _, key := range keys {
		require.NoError(t, store.Set(key, []byte(`[]`)), "clave %q", key)
		data, ok := store.Get(key)
		require.True(t, ok, "clave %q debe poder releerse", key)
		assert.Equal(t, `[]`, string(data))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, e.IsDir(), "ninguna clave debe crear subdirectorios: %s", e.Name())
	}
}

func TestFileStore_CreaElDirectorio(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "anidado", "datos")
	_, err := NewFileStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
