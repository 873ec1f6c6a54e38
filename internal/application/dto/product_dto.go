package dto

import "github.com/shopspring/decimal"

// ProductCardResponse tarjeta de producto para la grilla del listado.
// El stock que se muestra es el restante de la sesión, no el del catálogo.
type ProductCardResponse struct {
	ID          int             `json:"id"`
	Name        string          `json:"nombre"`
	UnitMeasure string          `json:"medida"`
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	LowStock    bool            `json:"poco_stock"`
	OutOfStock  bool            `json:"sin_stock"`
}

// ProductListResponse respuesta del listado de productos.
type ProductListResponse struct {
	Items        []ProductCardResponse `json:"items"`
	Total        int                   `json:"total"`
	Notification *Notification         `json:"notificacion,omitempty"`
}
