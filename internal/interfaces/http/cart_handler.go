package http

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appcart "github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/notify"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
	"github.com/jhoicas/Tienda-api/pkg/logger"
	"github.com/jhoicas/Tienda-api/pkg/moneyfmt"
)

// CartHandler maneja la vista del carrito y todas sus mutaciones.
type CartHandler struct {
	uc         *appcart.CartUseCase
	limits     appcart.Limits
	receiptGen appcart.ReceiptGenerator
	receipts   *storage.ReceiptStore
	notifier   ports.Notifier
	log        *logger.Logger
}

// NewCartHandler construye el handler.
func NewCartHandler(
	uc *appcart.CartUseCase,
	limits appcart.Limits,
	receiptGen appcart.ReceiptGenerator,
	receipts *storage.ReceiptStore,
	notifier ports.Notifier,
	log *logger.Logger,
) *CartHandler {
	return &CartHandler{
		uc:         uc,
		limits:     limits,
		receiptGen: receiptGen,
		receipts:   receipts,
		notifier:   notifier,
		log:        log,
	}
}

// Get godoc
// @Summary      Ver el carrito (líneas con cantidad > 0 y resumen)
// @Tags         carrito
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carrito [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	items := make([]dto.CartItemResponse, 0)
	for _, l := range h.uc.Lines() {
		if !l.InCart() {
			continue
		}
		items = append(items, toCartItem(l))
	}
	return c.JSON(dto.CartResponse{
		Items:     items,
		ItemCount: h.uc.ItemCount(),
		Summary:   toSummary(h.uc.GetSummary()),
	})
}

// AddUnit godoc
// @Summary      Agregar una unidad del producto al carrito
// @Tags         carrito
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/carrito/items/{id} [post]
func (h *CartHandler) AddUnit(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_ID", "id inválido", nil)
	}

	res, err := h.uc.AddUnit(id)
	if err != nil {
		return h.mutationError(c, n, err)
	}

	n.Success(fmt.Sprintf("%s agregado al carrito", res.Line.Name))
	if res.LastUnit {
		n.Info(fmt.Sprintf("Última unidad de %s agregada", res.Line.Name))
	}

	return c.JSON(dto.MutationResponse{
		Item:         toCartItem(res.Line),
		ItemCount:    res.ItemCount,
		Total:        res.Total,
		LastUnit:     res.LastUnit,
		Notification: n.Last(),
	})
}

// RemoveUnit godoc
// @Summary      Quitar una unidad del producto (la devuelve al stock)
// @Tags         carrito
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito/items/{id} [delete]
func (h *CartHandler) RemoveUnit(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_ID", "id inválido", nil)
	}

	res, err := h.uc.RemoveUnit(id)
	if err != nil {
		return h.mutationError(c, n, err)
	}

	// Con cantidad 0 la operación es un no-op silencioso, sin aviso.
	if !res.NoOp {
		if res.RemovedLine {
			n.Info(fmt.Sprintf("%s eliminado del carrito", res.Line.Name))
		} else {
			n.Info(fmt.Sprintf("%s reducido", res.Line.Name))
		}
	}

	return c.JSON(dto.MutationResponse{
		Item:         toCartItem(res.Line),
		ItemCount:    res.ItemCount,
		Total:        res.Total,
		RemovedLine:  res.RemovedLine,
		Notification: n.Last(),
	})
}

// RemoveLine godoc
// @Summary      Quitar el producto completo (todas sus unidades al stock)
// @Tags         carrito
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.MutationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/carrito/items/{id}/todas [delete]
func (h *CartHandler) RemoveLine(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	id, err := c.ParamsInt("id")
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_ID", "id inválido", nil)
	}

	res, err := h.uc.RemoveLine(id)
	if err != nil {
		return h.mutationError(c, n, err)
	}

	n.Info(fmt.Sprintf("%s eliminado del carrito", res.Line.Name))
	return c.JSON(dto.MutationResponse{
		Item:         toCartItem(res.Line),
		ItemCount:    res.ItemCount,
		Total:        res.Total,
		RemovedLine:  res.RemovedLine,
		Notification: n.Last(),
	})
}

// Clear godoc
// @Summary      Vaciar el carrito (no devuelve stock)
// @Tags         carrito
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/carrito [delete]
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	h.uc.Clear()
	n.Info("Carrito vaciado")

	return c.JSON(dto.CartResponse{
		Items:        []dto.CartItemResponse{},
		ItemCount:    0,
		Summary:      toSummary(h.uc.GetSummary()),
		Notification: n.Last(),
	})
}

// Checkout godoc
// @Summary      Finalizar la compra (vacía el carrito y emite el recibo)
// @Tags         carrito
// @Produce      json
// @Success      200  {object}  dto.CheckoutResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/carrito/checkout [post]
func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	res, err := h.uc.Checkout()
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGuestNotAllowed):
			n.Warning("Los invitados no pueden finalizar compras. Por favor, inicia sesión.")
			return fail(c, fiber.StatusForbidden, "GUEST_NOT_ALLOWED", err.Error(), n.Last())
		case errors.Is(err, domain.ErrEmptyCart):
			n.Warning("El carrito está vacío")
			return fail(c, fiber.StatusBadRequest, "EMPTY_CART", err.Error(), n.Last())
		case errors.Is(err, domain.ErrNoSession):
			return fail(c, fiber.StatusUnauthorized, "NO_SESSION", err.Error(), nil)
		case errors.Is(err, domain.ErrCartNotInitialized):
			return fail(c, fiber.StatusConflict, "CART_NOT_INITIALIZED", err.Error(), nil)
		}
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}

	// El recibo es best-effort: si falla, la compra ya está concretada y se
	// responde igual, solo que sin enlace de descarga.
	receiptPath := ""
	pdfBytes, err := h.receiptGen.GenerateReceipt(res, time.Now())
	if err != nil {
		h.log.Warn().Err(err).Str("orden", res.OrderID).Msg("no se pudo generar el recibo")
	} else if _, err := h.receipts.Save(res.OrderID, pdfBytes); err != nil {
		h.log.Warn().Err(err).Str("orden", res.OrderID).Msg("no se pudo guardar el recibo")
	} else {
		receiptPath = "/api/recibos/" + res.OrderID
	}

	n.Success("¡Compra realizada con éxito!")
	return c.JSON(dto.CheckoutResponse{
		OrderID:      res.OrderID,
		Total:        res.Summary.Subtotal,
		Receipt:      receiptPath,
		Notification: n.Last(),
	})
}

// mutationError mapea los errores del motor del carrito a HTTP + notificación.
func (h *CartHandler) mutationError(c *fiber.Ctx, n *notify.Collector, err error) error {
	var limitErr *appcart.LimitExceededError
	if errors.As(err, &limitErr) {
		n.Error(fmt.Sprintf(
			"No se puede agregar. Superarías el límite de %s (Total sería: %s)",
			moneyfmt.Pesos(h.limits.PurchaseCeiling),
			moneyfmt.Pesos(limitErr.FutureTotal),
		))
		return fail(c, fiber.StatusUnprocessableEntity, "LIMIT_EXCEEDED", err.Error(), n.Last())
	}

	var stockErr *appcart.OutOfStockError
	if errors.As(err, &stockErr) {
		n.Warning(fmt.Sprintf("%s sin stock disponible", stockErr.ProductName))
		return fail(c, fiber.StatusConflict, "OUT_OF_STOCK", err.Error(), n.Last())
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		n.Error("Producto no encontrado en el carrito")
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", err.Error(), n.Last())
	case errors.Is(err, domain.ErrCartNotInitialized):
		n.Warning("Los productos aún no se cargaron")
		return fail(c, fiber.StatusConflict, "CART_NOT_INITIALIZED", err.Error(), n.Last())
	}
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error(), nil)
}

// ── Proyecciones ──────────────────────────────────────────────────────────────

func toCartItem(l entity.CartLine) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:          l.ProductID,
		Name:        l.Name,
		UnitMeasure: l.UnitMeasure,
		Quantity:    l.Quantity,
		UnitPrice:   l.Price,
		Subtotal:    l.Subtotal(),
		Stock:       l.Stock,
	}
}

func toSummary(s appcart.Summary) dto.CartSummaryResponse {
	return dto.CartSummaryResponse{
		Subtotal:     s.Subtotal,
		Shipping:     s.Shipping,
		FreeShipping: s.FreeShipping,
		GrandTotal:   s.GrandTotal,
	}
}
