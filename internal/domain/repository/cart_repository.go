package repository

import "github.com/jhoicas/Tienda-api/internal/domain/entity"

// CartSnapshotRepository persiste el carrito de cada identidad
// (clave carrito_<usuario>). Solo guarda líneas con cantidad > 0.
type CartSnapshotRepository interface {
	// GetCart devuelve el carrito guardado del usuario; false si no existe
	// o el blob guardado está corrupto (se trata como ausente).
	GetCart(user string) ([]entity.CartItemSnapshot, bool)
	// SaveCart sobrescribe el carrito guardado del usuario.
	SaveCart(user string, items []entity.CartItemSnapshot) error
	// DeleteCart elimina el carrito guardado del usuario.
	DeleteCart(user string) error
}

// StockSnapshotRepository persiste el stock restante global
// (clave stockProductos, compartida por todas las identidades).
type StockSnapshotRepository interface {
	// GetStock devuelve el stock guardado; false si no existe o está corrupto.
	GetStock() (entity.StockSnapshot, bool)
	// SaveStock sobrescribe el stock guardado de todos los productos.
	SaveStock(stock entity.StockSnapshot) error
}
