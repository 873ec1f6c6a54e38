package entity

import "github.com/shopspring/decimal"

// GuestUser es la identidad reservada para sesiones de invitado.
// Su carrito y sus cambios de stock nunca se persisten.
const GuestUser = "Invitado"

// CartLine es la línea del carrito de un producto: la cantidad elegida y el
// stock que queda disponible en esta sesión. Existe exactamente una línea por
// producto del catálogo; cantidad 0 significa "no está en el carrito" a efectos
// de presentación, pero la línea conserva su lugar.
type CartLine struct {
	ProductID   int
	Name        string
	UnitMeasure string
	Description string
	Price       decimal.Decimal
	Quantity    int // cantidad elegida, siempre >= 0
	Stock       int // stock restante de la sesión, siempre >= 0
}

// Subtotal devuelve precio × cantidad de la línea.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// InCart indica si la línea cuenta como "en el carrito".
func (l CartLine) InCart() bool { return l.Quantity > 0 }

// CartItemSnapshot es la forma persistida de una línea con cantidad > 0
// (clave carrito_<usuario>). El stock no viaja aquí: se persiste aparte.
type CartItemSnapshot struct {
	ID       int `json:"id"`
	Quantity int `json:"cantidad"`
}

// StockSnapshot es la forma persistida del stock restante de todos los
// productos (clave stockProductos, global, compartida por todas las
// identidades del dispositivo).
type StockSnapshot map[int]int
