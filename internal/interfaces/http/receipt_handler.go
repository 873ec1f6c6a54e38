package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
)

// ReceiptHandler sirve los recibos PDF de compras finalizadas.
type ReceiptHandler struct {
	receipts *storage.ReceiptStore
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(receipts *storage.ReceiptStore) *ReceiptHandler {
	return &ReceiptHandler{receipts: receipts}
}

// Download godoc
// @Summary      Descargar el recibo PDF de una orden
// @Tags         recibos
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recibos/{id} [get]
func (h *ReceiptHandler) Download(c *fiber.Ctx) error {
	pdf, err := h.receipts.Open(c.Params("id"))
	if err != nil {
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", "recibo no encontrado", nil)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}
