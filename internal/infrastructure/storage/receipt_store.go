package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ReceiptStore guarda los recibos PDF de compras finalizadas bajo
// <dir>/recibos/<ordenID>.pdf. No hay historial de órdenes: el recibo es el
// único artefacto que sobrevive al checkout.
type ReceiptStore struct {
	dir string
}

// NewReceiptStore crea el almacén de recibos y su directorio.
func NewReceiptStore(baseDir string) (*ReceiptStore, error) {
	dir := filepath.Join(baseDir, "recibos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &ReceiptStore{dir: dir}, nil
}

// Save escribe el PDF del recibo y devuelve su ruta.
func (s *ReceiptStore) Save(orderID string, pdf []byte) (string, error) {
	path, err := s.path(orderID)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, pdf, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Open devuelve los bytes del recibo de la orden, o os.ErrNotExist.
func (s *ReceiptStore) Open(orderID string) ([]byte, error) {
	path, err := s.path(orderID)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// path valida que el id sea un UUID antes de tocar el filesystem: el id llega
// de la URL y no debe poder escapar del directorio de recibos.
func (s *ReceiptStore) path(orderID string) (string, error) {
	id, err := uuid.Parse(orderID)
	if err != nil {
		return "", fmt.Errorf("id de recibo inválido: %w", err)
	}
	return filepath.Join(s.dir, id.String()+".pdf"), nil
}
