package repository

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// CatalogRepository carga el catálogo inmutable de productos desde su fuente
// estática. Ante fallo de transporte o de parseo devuelve un slice vacío junto
// con el error: el error nunca debe propagarse como pánico más allá de esta
// frontera.
type CatalogRepository interface {
	LoadCatalog(ctx context.Context) ([]entity.Product, error)
}
