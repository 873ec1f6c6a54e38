package cart

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// Limits parámetros comerciales de la tienda.
type Limits struct {
	PurchaseCeiling  decimal.Decimal // tope de compra por carrito
	FreeShippingFrom decimal.Decimal // subtotal desde el cual el envío es gratis
	ShippingCost     decimal.Decimal // costo de envío plano por debajo del umbral
}

// DefaultLimits valores comerciales de PicoSur: tope $300.000, envío gratis
// desde $50.000, envío plano $5.000.
func DefaultLimits() Limits {
	return Limits{
		PurchaseCeiling:  decimal.NewFromInt(300_000),
		FreeShippingFrom: decimal.NewFromInt(50_000),
		ShippingCost:     decimal.NewFromInt(5_000),
	}
}

// CartUseCase es el motor del carrito: mantiene en memoria exactamente una
// línea por producto del catálogo y aplica todas las reglas de negocio
// (tope de compra, stock, identidad invitada) sobre cada mutación.
//
// Las mutaciones son todo-o-nada: ante cualquier error el estado queda
// intacto. La persistencia es best-effort: un fallo de escritura se registra
// en el log pero nunca revierte una mutación ya aplicada en memoria.
//
// Todas las operaciones se serializan detrás de un mutex único; los handlers
// de Fiber corren concurrentes pero el carrito se comporta como si las
// interacciones llegaran de a una, igual que en un solo hilo de eventos.
type CartUseCase struct {
	mu          sync.Mutex
	lines       []entity.CartLine
	initialized bool

	limits      Limits
	sessionRepo repository.SessionRepository
	cartRepo    repository.CartSnapshotRepository
	stockRepo   repository.StockSnapshotRepository
	log         *logger.Logger
}

// NewCartUseCase construye el motor del carrito.
func NewCartUseCase(
	limits Limits,
	sessionRepo repository.SessionRepository,
	cartRepo repository.CartSnapshotRepository,
	stockRepo repository.StockSnapshotRepository,
	log *logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		limits:      limits,
		sessionRepo: sessionRepo,
		cartRepo:    cartRepo,
		stockRepo:   stockRepo,
		log:         log,
	}
}

// ── Errores tipados ───────────────────────────────────────────────────────────

// LimitExceededError se produce cuando agregar una unidad más superaría el
// tope de compra. FutureTotal es el total que habría quedado.
type LimitExceededError struct {
	FutureTotal decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("superarías el límite de compra (total sería %s)", e.FutureTotal)
}

// Unwrap permite errors.Is(err, domain.ErrLimitExceeded).
func (e *LimitExceededError) Unwrap() error { return domain.ErrLimitExceeded }

// OutOfStockError se produce cuando no quedan unidades del producto.
type OutOfStockError struct {
	ProductName string
}

func (e *OutOfStockError) Error() string {
	return fmt.Sprintf("%s sin stock disponible", e.ProductName)
}

// Unwrap permite errors.Is(err, domain.ErrOutOfStock).
func (e *OutOfStockError) Unwrap() error { return domain.ErrOutOfStock }

// ── Resultados ────────────────────────────────────────────────────────────────

// MutationResult estado de la línea después de agregar o quitar una unidad.
type MutationResult struct {
	Line        entity.CartLine
	ItemCount   int
	Total       decimal.Decimal
	LastUnit    bool // el stock de la línea llegó a cero al agregar
	RemovedLine bool // la cantidad de la línea llegó a cero al quitar
	NoOp        bool // la operación no cambió nada (quitar con cantidad 0)
}

// Summary resumen de compra del carrito.
type Summary struct {
	Subtotal     decimal.Decimal
	Shipping     decimal.Decimal
	GrandTotal   decimal.Decimal
	FreeShipping bool
}

// CheckoutResult resultado de una compra finalizada.
type CheckoutResult struct {
	OrderID string
	User    string
	Items   []entity.CartLine // líneas compradas (cantidad > 0), ya con el estado previo al vaciado
	Summary Summary
}

// ── Inicialización ────────────────────────────────────────────────────────────

// Initialize reconstruye el carrito en memoria a partir del catálogo y de los
// snapshots persistidos: una línea por producto, con el stock guardado si
// existe (si no, el del catálogo) y la cantidad guardada del usuario activo
// (si no, cero). La fusión es "gana la última escritura" por campo: no se
// valida que una cantidad restaurada no supere el stock restaurado.
//
// No dispara ninguna escritura. Devuelve true si se restauró un carrito
// guardado con al menos una línea.
func (uc *CartUseCase) Initialize(products []entity.Product) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if len(products) == 0 {
		uc.lines = nil
		uc.initialized = false
		return false
	}

	savedStock, _ := uc.stockRepo.GetStock()

	var savedCart []entity.CartItemSnapshot
	if user, ok := uc.sessionRepo.CurrentUser(); ok {
		savedCart, _ = uc.cartRepo.GetCart(user)
	}
	savedQty := make(map[int]int, len(savedCart))
	for _, it := range savedCart {
		savedQty[it.ID] = it.Quantity
	}

	lines := make([]entity.CartLine, 0, len(products))
	for _, p := range products {
		stock := p.Stock
		if s, ok := savedStock[p.ID]; ok {
			stock = s
		}
		lines = append(lines, entity.CartLine{
			ProductID:   p.ID,
			Name:        p.Name,
			UnitMeasure: p.UnitMeasure,
			Description: p.Description,
			Price:       p.Price,
			Quantity:    savedQty[p.ID],
			Stock:       stock,
		})
	}

	uc.lines = lines
	uc.initialized = true
	return len(savedCart) > 0
}

// Reset descarta el carrito en memoria (cambio o cierre de sesión). El próximo
// listado de productos vuelve a inicializarlo desde los snapshots.
func (uc *CartUseCase) Reset() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.lines = nil
	uc.initialized = false
}

// Initialized indica si el carrito está listo para operar.
func (uc *CartUseCase) Initialized() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.initialized
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// ComputeTotal suma precio × cantidad de todas las líneas. Se recalcula en
// cada llamada, nunca se cachea.
func (uc *CartUseCase) ComputeTotal() decimal.Decimal {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.totalLocked()
}

// Lines devuelve una copia de todas las líneas del carrito (incluidas las de
// cantidad cero), en el orden del catálogo.
func (uc *CartUseCase) Lines() []entity.CartLine {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]entity.CartLine, len(uc.lines))
	copy(out, uc.lines)
	return out
}

// ItemCount suma las cantidades de todas las líneas (el número del navbar).
func (uc *CartUseCase) ItemCount() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.itemCountLocked()
}

// GetSummary calcula subtotal, costo de envío y total.
func (uc *CartUseCase) GetSummary() Summary {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.summaryLocked()
}

// SnapshotItems serializa las líneas con cantidad > 0 a la forma persistida.
func (uc *CartUseCase) SnapshotItems() []entity.CartItemSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshotItemsLocked()
}

// SnapshotStock serializa el stock restante de todas las líneas.
func (uc *CartUseCase) SnapshotStock() entity.StockSnapshot {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.snapshotStockLocked()
}

// ── Mutaciones ────────────────────────────────────────────────────────────────

// AddUnit agrega una unidad del producto al carrito. Falla con
// domain.ErrNotFound, *LimitExceededError o *OutOfStockError sin tocar el
// estado; en éxito incrementa la cantidad, descuenta una unidad del stock y
// persiste los snapshots (salvo identidad invitada).
func (uc *CartUseCase) AddUnit(productID int) (MutationResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.initialized {
		return MutationResult{}, domain.ErrCartNotInitialized
	}
	line := uc.findLocked(productID)
	if line == nil {
		return MutationResult{}, domain.ErrNotFound
	}

	// El tope se valida contra la próxima unidad, sin importar cuántas haya ya.
	future := uc.totalLocked().Add(line.Price)
	if future.GreaterThan(uc.limits.PurchaseCeiling) {
		return MutationResult{}, &LimitExceededError{FutureTotal: future}
	}

	if line.Stock <= 0 {
		return MutationResult{}, &OutOfStockError{ProductName: line.Name}
	}

	line.Quantity++
	line.Stock--
	uc.persistLocked()

	return MutationResult{
		Line:      *line,
		ItemCount: uc.itemCountLocked(),
		Total:     uc.totalLocked(),
		LastUnit:  line.Stock == 0,
	}, nil
}

// RemoveUnit quita una unidad del producto y la devuelve al stock. Con
// cantidad 0 es un no-op sin error. RemovedLine distingue el mensaje
// "eliminado del carrito" de "reducido".
func (uc *CartUseCase) RemoveUnit(productID int) (MutationResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.initialized {
		return MutationResult{}, domain.ErrCartNotInitialized
	}
	line := uc.findLocked(productID)
	if line == nil {
		return MutationResult{}, domain.ErrNotFound
	}

	if line.Quantity <= 0 {
		return MutationResult{Line: *line, ItemCount: uc.itemCountLocked(), Total: uc.totalLocked(), NoOp: true}, nil
	}

	line.Quantity--
	line.Stock++
	uc.persistLocked()

	return MutationResult{
		Line:        *line,
		ItemCount:   uc.itemCountLocked(),
		Total:       uc.totalLocked(),
		RemovedLine: line.Quantity == 0,
	}, nil
}

// RemoveLine quita el producto completo del carrito devolviendo todas sus
// unidades al stock. Idempotente si la cantidad ya era cero.
func (uc *CartUseCase) RemoveLine(productID int) (MutationResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.initialized {
		return MutationResult{}, domain.ErrCartNotInitialized
	}
	line := uc.findLocked(productID)
	if line == nil {
		return MutationResult{}, domain.ErrNotFound
	}

	line.Stock += line.Quantity
	line.Quantity = 0
	uc.persistLocked()

	return MutationResult{
		Line:        *line,
		ItemCount:   uc.itemCountLocked(),
		Total:       uc.totalLocked(),
		RemovedLine: true,
	}, nil
}

// Clear vacía el carrito: todas las cantidades a cero. El stock NO se
// restaura: vaciar representa una compra concretada o un descarte deliberado,
// y las unidades ya salieron del inventario. Borra el snapshot de carrito de
// la identidad activa y reescribe el snapshot de stock (sin cambios).
func (uc *CartUseCase) Clear() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.clearLocked()
}

// Checkout finaliza la compra: valida identidad no invitada y carrito no
// vacío, calcula el total final, vacía el carrito y devuelve lo comprado.
// Operación terminal: no se modela historial de órdenes más allá del recibo.
func (uc *CartUseCase) Checkout() (CheckoutResult, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.initialized {
		return CheckoutResult{}, domain.ErrCartNotInitialized
	}
	user, ok := uc.sessionRepo.CurrentUser()
	if !ok {
		return CheckoutResult{}, domain.ErrNoSession
	}
	if user == entity.GuestUser {
		return CheckoutResult{}, domain.ErrGuestNotAllowed
	}

	var bought []entity.CartLine
	for _, l := range uc.lines {
		if l.InCart() {
			bought = append(bought, l)
		}
	}
	if len(bought) == 0 {
		return CheckoutResult{}, domain.ErrEmptyCart
	}

	summary := uc.summaryLocked()
	uc.clearLocked()

	return CheckoutResult{
		OrderID: uuid.New().String(),
		User:    user,
		Items:   bought,
		Summary: summary,
	}, nil
}

// Persist fuerza una escritura de los snapshots del estado actual (se usa al
// cerrar sesión, antes de borrar la identidad). Invitado no persiste.
func (uc *CartUseCase) Persist() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.persistLocked()
}

// ── Internos (requieren uc.mu tomado) ────────────────────────────────────────

func (uc *CartUseCase) findLocked(productID int) *entity.CartLine {
	for i := range uc.lines {
		if uc.lines[i].ProductID == productID {
			return &uc.lines[i]
		}
	}
	return nil
}

func (uc *CartUseCase) totalLocked() decimal.Decimal {
	total := decimal.Zero
	for _, l := range uc.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (uc *CartUseCase) itemCountLocked() int {
	n := 0
	for _, l := range uc.lines {
		n += l.Quantity
	}
	return n
}

func (uc *CartUseCase) summaryLocked() Summary {
	subtotal := uc.totalLocked()
	shipping := uc.limits.ShippingCost
	free := subtotal.GreaterThanOrEqual(uc.limits.FreeShippingFrom)
	if free {
		shipping = decimal.Zero
	}
	return Summary{
		Subtotal:     subtotal,
		Shipping:     shipping,
		GrandTotal:   subtotal.Add(shipping),
		FreeShipping: free,
	}
}

func (uc *CartUseCase) snapshotItemsLocked() []entity.CartItemSnapshot {
	items := make([]entity.CartItemSnapshot, 0)
	for _, l := range uc.lines {
		if l.InCart() {
			items = append(items, entity.CartItemSnapshot{ID: l.ProductID, Quantity: l.Quantity})
		}
	}
	return items
}

func (uc *CartUseCase) snapshotStockLocked() entity.StockSnapshot {
	stock := make(entity.StockSnapshot, len(uc.lines))
	for _, l := range uc.lines {
		stock[l.ProductID] = l.Stock
	}
	return stock
}

// persistLocked guarda carrito y stock para la identidad activa. Invitado no
// persiste nada: su sesión es completamente efímera, incluido el stock que
// haya consumido. Un carrito sin inicializar tampoco escribe: serializaría
// snapshots vacíos encima del estado guardado. Los fallos de escritura se
// registran y se siguen de largo; la mutación en memoria ya está aplicada y
// no se revierte.
func (uc *CartUseCase) persistLocked() {
	if !uc.initialized {
		return
	}
	user, ok := uc.sessionRepo.CurrentUser()
	if !ok || user == entity.GuestUser {
		return
	}
	if err := uc.cartRepo.SaveCart(user, uc.snapshotItemsLocked()); err != nil {
		uc.log.Warn().Err(err).Str("usuario", user).Msg("no se pudo guardar el carrito")
	}
	if err := uc.stockRepo.SaveStock(uc.snapshotStockLocked()); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo guardar el stock")
	}
}

// clearLocked deja todas las cantidades en cero sin devolver stock, borra el
// snapshot de carrito de la identidad activa y reescribe el de stock. Sin
// inicializar es un no-op: no hay estado en memoria que volcar.
func (uc *CartUseCase) clearLocked() {
	if !uc.initialized {
		return
	}
	for i := range uc.lines {
		uc.lines[i].Quantity = 0
	}
	user, ok := uc.sessionRepo.CurrentUser()
	if !ok || user == entity.GuestUser {
		return
	}
	if err := uc.cartRepo.DeleteCart(user); err != nil {
		uc.log.Warn().Err(err).Str("usuario", user).Msg("no se pudo borrar el carrito guardado")
	}
	if err := uc.stockRepo.SaveStock(uc.snapshotStockLocked()); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo guardar el stock")
	}
}
