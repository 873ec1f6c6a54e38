// Package storage implementa el almacén clave-valor del dispositivo: un
// archivo JSON por clave bajo un directorio de datos. Es el equivalente del
// localStorage del navegador: claves de texto plano, blobs JSON, sin
// coordinación entre procesos (gana la última escritura).
package storage

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

// FileStore almacén clave-valor respaldado por archivos.
type FileStore struct {
	dir string
	mu  sync.Mutex // serializa escrituras al directorio
}

// NewFileStore crea el almacén y su directorio si no existe.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

// Get devuelve el blob guardado bajo la clave, o false si no existe o no se
// puede leer. Un archivo ilegible se trata como ausente: un snapshot dañado
// nunca debe tumbar la inicialización del catálogo o del carrito.
func (s *FileStore) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set sobrescribe el blob de la clave. Escribe a un archivo temporal y
// renombra para no dejar blobs a medio escribir.
func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, "kv-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path(key))
}

// Delete elimina la clave. Borrar una clave inexistente no es error.
func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// path mapea la clave a un archivo. Las identidades son texto libre
// (carrito_José), así que la clave se escapa para que sea un nombre seguro.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, url.QueryEscape(key)+".json")
}
