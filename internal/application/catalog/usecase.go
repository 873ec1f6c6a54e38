package catalog

import (
	"context"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// CatalogUseCase expone la carga del catálogo inmutable de productos.
type CatalogUseCase struct {
	repo repository.CatalogRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(repo repository.CatalogRepository) *CatalogUseCase {
	return &CatalogUseCase{repo: repo}
}

// Load carga el catálogo. Ante fallo devuelve slice vacío y el error: el
// llamador muestra "no hay productos" igual que con un catálogo vacío, pero
// registra y notifica el fallo de forma distinta.
func (uc *CatalogUseCase) Load(ctx context.Context) ([]entity.Product, error) {
	products, err := uc.repo.LoadCatalog(ctx)
	if err != nil {
		return []entity.Product{}, err
	}
	return products, nil
}
