package entity

import "github.com/shopspring/decimal"

// Product representa un producto del catálogo (cervezas.json).
// Los campos son inmutables después de la carga; el stock vigente de la sesión
// vive en CartLine, no aquí.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"nombre"`
	UnitMeasure string          `json:"medida"` // ej. "Lata 473ml", "Botella 500ml"
	Description string          `json:"descripcion"`
	Price       decimal.Decimal `json:"precio"` // precio unitario, no negativo
	Stock       int             `json:"stock"`  // stock inicial del catálogo
}
