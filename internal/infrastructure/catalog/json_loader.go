// Package catalog carga el catálogo estático de productos (cervezas.json).
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// JSONLoader lee el documento {"cervezas":[...]} desde un archivo local o una
// URL. Cualquier fallo de transporte o de parseo se reduce a slice vacío +
// domain.ErrCatalogUnavailable: el catálogo dañado nunca tumba el arranque de
// una vista.
type JSONLoader struct {
	path   string
	url    string
	client *http.Client
}

// NewJSONLoader construye el loader. Si url no está vacío tiene prioridad
// sobre path.
func NewJSONLoader(path, url string) *JSONLoader {
	return &JSONLoader{
		path:   path,
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// catalogDocument forma del documento fuente.
type catalogDocument struct {
	Cervezas []entity.Product `json:"cervezas"`
}

// LoadCatalog carga y parsea el catálogo.
func (l *JSONLoader) LoadCatalog(ctx context.Context) ([]entity.Product, error) {
	data, err := l.fetch(ctx)
	if err != nil {
		return []entity.Product{}, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return []entity.Product{}, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	if doc.Cervezas == nil {
		return []entity.Product{}, nil
	}
	return doc.Cervezas, nil
}

func (l *JSONLoader) fetch(ctx context.Context) ([]byte, error) {
	if l.url == "" {
		return os.ReadFile(l.path)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
