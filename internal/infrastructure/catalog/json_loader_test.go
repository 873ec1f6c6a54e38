package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/domain"
)

const catalogJSON = `{
  "cervezas": [
    {"id": 1, "nombre": "IPA Andina", "medida": "Lata 473ml", "descripcion": "IPA cítrica", "precio": 3500, "stock": 24},
    {"id": 2, "nombre": "Golden Ale", "medida": "Botella 500ml", "descripcion": "Rubia liviana", "precio": 2800, "stock": 36}
  ]
}`

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cervezas.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCatalog_DesdeArchivo(t *testing.T) {
	loader := NewJSONLoader(writeCatalog(t, catalogJSON), "")

	products, err := loader.LoadCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "IPA Andina", products[0].Name)
	assert.Equal(t, int64(3500), products[0].Price.IntPart())
	assert.Equal(t, 24, products[0].Stock)
}

func TestLoadCatalog_ArchivoInexistente(t *testing.T) {
	loader := NewJSONLoader(filepath.Join(t.TempDir(), "no-existe.json"), "")

	products, err := loader.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.NotNil(t, products, "ante un fallo se devuelve slice vacío, no nil")
	assert.Empty(t, products)
}

func TestLoadCatalog_JSONMalformado(t *testing.T) {
	loader := NewJSONLoader(writeCatalog(t, "{cervezas: ["), "")

	products, err := loader.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Empty(t, products)
}

func TestLoadCatalog_DocumentoSinCervezas(t *testing.T) {
	loader := NewJSONLoader(writeCatalog(t, `{"otra_cosa": true}`), "")

	products, err := loader.LoadCatalog(context.Background())
	require.NoError(t, err, "un documento válido sin lista no es un fallo de carga")
	assert.Empty(t, products)
}

func TestLoadCatalog_DesdeURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(catalogJSON))
	}))
	defer srv.Close()

	loader := NewJSONLoader("", srv.URL)

	products, err := loader.LoadCatalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestLoadCatalog_URLConError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	loader := NewJSONLoader("", srv.URL)

	products, err := loader.LoadCatalog(context.Background())
	assert.ErrorIs(t, err, domain.ErrCatalogUnavailable)
	assert.Empty(t, products)
}
