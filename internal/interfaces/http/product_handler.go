package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	appcart "github.com/jhoicas/Tienda-api/internal/application/cart"
	appcatalog "github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/notify"
)

// Umbral de "poco stock" en la grilla (el color naranja de la tarjeta).
const lowStockThreshold = 5

// ProductHandler maneja el listado de productos. Entrar al listado carga el
// catálogo y reconstruye el carrito desde los snapshots, igual que entrar a
// la vista home de la tienda.
type ProductHandler struct {
	catalogUC *appcatalog.CatalogUseCase
	cartUC    *appcart.CartUseCase
	notifier  ports.Notifier
}

// NewProductHandler construye el handler.
func NewProductHandler(catalogUC *appcatalog.CatalogUseCase, cartUC *appcart.CartUseCase, notifier ports.Notifier) *ProductHandler {
	return &ProductHandler{catalogUC: catalogUC, cartUC: cartUC, notifier: notifier}
}

// List godoc
// @Summary      Listar productos (carga catálogo e inicializa el carrito)
// @Tags         productos
// @Produce      json
// @Success      200  {object}  dto.ProductListResponse
// @Router       /api/productos [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	products, err := h.catalogUC.Load(c.Context())
	if err != nil {
		// Catálogo caído y catálogo vacío se ven iguales; solo cambia el aviso.
		n.Error("Error al cargar los productos")
		h.cartUC.Initialize(products)
		return c.JSON(dto.ProductListResponse{Items: []dto.ProductCardResponse{}, Notification: n.Last()})
	}
	if len(products) == 0 {
		n.Warning("No se encontraron productos")
		h.cartUC.Initialize(products)
		return c.JSON(dto.ProductListResponse{Items: []dto.ProductCardResponse{}, Notification: n.Last()})
	}

	n.Success(fmt.Sprintf("%d productos cargados", len(products)))
	if restored := h.cartUC.Initialize(products); restored {
		n.Info("Carrito restaurado")
	}

	lines := h.cartUC.Lines()
	items := make([]dto.ProductCardResponse, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.ProductCardResponse{
			ID:          l.ProductID,
			Name:        l.Name,
			UnitMeasure: l.UnitMeasure,
			Description: l.Description,
			Price:       l.Price,
			Stock:       l.Stock,
			LowStock:    l.Stock > 0 && l.Stock <= lowStockThreshold,
			OutOfStock:  l.Stock == 0,
		})
	}

	return c.JSON(dto.ProductListResponse{
		Items:        items,
		Total:        len(items),
		Notification: n.Last(),
	})
}
