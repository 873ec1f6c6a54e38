package dto

import "github.com/shopspring/decimal"

// CartItemResponse línea del carrito con cantidad > 0.
type CartItemResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"nombre"`
	UnitMeasure string          `json:"medida"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	Stock       int             `json:"stock"`
}

// CartSummaryResponse resumen de compra: subtotal, envío y total.
// El envío es gratis a partir del umbral configurado (por defecto $50.000).
type CartSummaryResponse struct {
	Subtotal     decimal.Decimal `json:"subtotal"`
	Shipping     decimal.Decimal `json:"envio"`
	FreeShipping bool            `json:"envio_gratis"`
	GrandTotal   decimal.Decimal `json:"total"`
}

// CartResponse vista completa del carrito.
type CartResponse struct {
	Items        []CartItemResponse  `json:"items"`
	ItemCount    int                 `json:"cantidad_items"`
	Summary      CartSummaryResponse `json:"resumen"`
	Notification *Notification       `json:"notificacion,omitempty"`
}

// MutationResponse resultado de agregar o quitar una unidad.
type MutationResponse struct {
	Item         CartItemResponse `json:"item"`
	ItemCount    int              `json:"cantidad_items"`
	Total        decimal.Decimal  `json:"total"`
	LastUnit     bool             `json:"ultima_unidad,omitempty"` // el stock llegó a cero
	RemovedLine  bool             `json:"linea_eliminada,omitempty"`
	Notification *Notification    `json:"notificacion,omitempty"`
}

// CheckoutResponse resultado de finalizar la compra.
type CheckoutResponse struct {
	OrderID      string          `json:"orden_id"`
	Total        decimal.Decimal `json:"total"`
	Receipt      string          `json:"recibo,omitempty"` // ruta de descarga del PDF
	Notification *Notification   `json:"notificacion,omitempty"`
}
