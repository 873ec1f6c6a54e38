package http

import (
	"github.com/gofiber/fiber/v2"

	appcart "github.com/jhoicas/Tienda-api/internal/application/cart"
	appcatalog "github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SessionUC  *session.SessionUseCase
	CatalogUC  *appcatalog.CatalogUseCase
	CartUC     *appcart.CartUseCase
	Limits     appcart.Limits
	ReceiptGen appcart.ReceiptGenerator
	Receipts   *storage.ReceiptStore
	Notifier   ports.Notifier
	Log        *logger.Logger
}

// Router registra las rutas de la tienda. Las tres vistas del storefront:
// sesión (login), productos (home) y carrito; más la descarga de recibos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Sesión (público)
	sessionHandler := NewSessionHandler(deps.SessionUC, deps.Notifier)
	sesion := api.Group("/sesion")
	sesion.Post("/login", sessionHandler.Login)
	sesion.Post("/invitado", sessionHandler.Guest)
	sesion.Post("/logout", sessionHandler.Logout)
	sesion.Get("/", sessionHandler.Current)

	// Rutas protegidas: exigen una identidad activa (invitado incluido)
	protected := api.Group("/", RequireSession(deps.SessionUC))

	// Productos (la vista home)
	productHandler := NewProductHandler(deps.CatalogUC, deps.CartUC, deps.Notifier)
	protected.Get("/productos", productHandler.List)

	// Carrito
	cartHandler := NewCartHandler(deps.CartUC, deps.Limits, deps.ReceiptGen, deps.Receipts, deps.Notifier, deps.Log)
	carrito := protected.Group("/carrito")
	carrito.Get("/", cartHandler.Get)
	carrito.Delete("/", cartHandler.Clear)
	carrito.Post("/items/:id", cartHandler.AddUnit)
	carrito.Delete("/items/:id", cartHandler.RemoveUnit)
	carrito.Delete("/items/:id/todas", cartHandler.RemoveLine)
	carrito.Post("/checkout", cartHandler.Checkout)

	// Recibos de compras finalizadas
	receiptHandler := NewReceiptHandler(deps.Receipts)
	protected.Get("/recibos/:id", receiptHandler.Download)
}
