package cart_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los repositorios de snapshots
// ──────────────────────────────────────────────────────────────────────────────

type memSession struct {
	user string
	ok   bool
}

func (m *memSession) CurrentUser() (string, bool) { return m.user, m.ok }
func (m *memSession) SaveCurrentUser(user string) error {
	m.user, m.ok = user, true
	return nil
}
func (m *memSession) DeleteCurrentUser() error {
	m.user, m.ok = "", false
	return nil
}

type memCartRepo struct {
	carts   map[string][]entity.CartItemSnapshot
	saves   int
	deletes int
	saveErr error
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string][]entity.CartItemSnapshot)}
}

func (m *memCartRepo) GetCart(user string) ([]entity.CartItemSnapshot, bool) {
	items, ok := m.carts[user]
	return items, ok
}

func (m *memCartRepo) SaveCart(user string, items []entity.CartItemSnapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.carts[user] = items
	return nil
}

func (m *memCartRepo) DeleteCart(user string) error {
	m.deletes++
	delete(m.carts, user)
	return nil
}

type memStockRepo struct {
	stock entity.StockSnapshot
	saves int
}

func (m *memStockRepo) GetStock() (entity.StockSnapshot, bool) {
	return m.stock, m.stock != nil
}

func (m *memStockRepo) SaveStock(stock entity.StockSnapshot) error {
	m.saves++
	m.stock = stock
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func beer(id int, price int64, stock int) entity.Product {
	return entity.Product{
		ID:          id,
		Name:        fmt.Sprintf("Cerveza %d", id),
		UnitMeasure: "Lata 473ml",
		Price:       decimal.NewFromInt(price),
		Stock:       stock,
	}
}

type fixture struct {
	uc      *cart.CartUseCase
	session *memSession
	carts   *memCartRepo
	stock   *memStockRepo
}

func newFixture(user string) *fixture {
	f := &fixture{
		session: &memSession{user: user, ok: user != ""},
		carts:   newMemCartRepo(),
		stock:   &memStockRepo{},
	}
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	f.uc = cart.NewCartUseCase(cart.DefaultLimits(), f.session, f.carts, f.stock, log)
	return f
}

func mustInt(t *testing.T, d decimal.Decimal) int64 {
	t.Helper()
	return d.IntPart()
}

// ──────────────────────────────────────────────────────────────────────────────
// Inicialización
// ──────────────────────────────────────────────────────────────────────────────

func TestInitialize_UnaLineaPorProducto(t *testing.T) {
	f := newFixture("Juan")
	restored := f.uc.Initialize([]entity.Product{beer(1, 3500, 24), beer(2, 2800, 36)})

	assert.False(t, restored, "sin snapshots no hay carrito restaurado")
	lines := f.uc.Lines()
	require.Len(t, lines, 2, "debe existir exactamente una línea por producto del catálogo")
	assert.Equal(t, 0, lines[0].Quantity, "las líneas nuevas arrancan con cantidad cero")
	assert.Equal(t, 24, lines[0].Stock, "sin stock guardado se usa el del catálogo")
}

func TestInitialize_FusionaSnapshots(t *testing.T) {
	f := newFixture("Juan")
	f.stock.stock = entity.StockSnapshot{1: 10}
	f.carts.carts["Juan"] = []entity.CartItemSnapshot{{ID: 1, Quantity: 2}}

	restored := f.uc.Initialize([]entity.Product{beer(1, 3500, 24), beer(2, 2800, 36)})

	assert.True(t, restored, "con carrito guardado debe señalar la restauración")
	lines := f.uc.Lines()
	assert.Equal(t, 2, lines[0].Quantity, "la cantidad guardada del usuario se restaura")
	assert.Equal(t, 10, lines[0].Stock, "el stock guardado pisa al del catálogo")
	assert.Equal(t, 0, lines[1].Quantity, "producto sin entrada guardada queda en cero")
	assert.Equal(t, 36, lines[1].Stock, "producto sin stock guardado usa el del catálogo")
}

// La fusión es "gana la última escritura" por campo: una cantidad guardada que
// supera el stock restaurado se replica tal cual, sin recorte. Este test fija
// ese comportamiento; recortar sería un cambio deliberado.
func TestInitialize_CantidadGuardadaMayorQueStock_NoSeRecorta(t *testing.T) {
	f := newFixture("Juan")
	f.stock.stock = entity.StockSnapshot{1: 1}
	f.carts.carts["Juan"] = []entity.CartItemSnapshot{{ID: 1, Quantity: 5}}

	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	lines := f.uc.Lines()
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 1, lines[0].Stock)
}

func TestInitialize_NoDisparaEscrituras(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	assert.Zero(t, f.carts.saves, "inicializar no debe guardar el carrito")
	assert.Zero(t, f.stock.saves, "inicializar no debe guardar el stock")
}

func TestInitialize_CatalogoVacio_NoQuedaOperativo(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize(nil)

	assert.False(t, f.uc.Initialized())
	_, err := f.uc.AddUnit(1)
	assert.ErrorIs(t, err, domain.ErrCartNotInitialized)
}

// ──────────────────────────────────────────────────────────────────────────────
// AddUnit
// ──────────────────────────────────────────────────────────────────────────────

func TestAddUnit_Exito(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	res, err := f.uc.AddUnit(1)
	require.NoError(t, err)

	assert.Equal(t, 1, res.Line.Quantity)
	assert.Equal(t, 23, res.Line.Stock, "cada unidad agregada se descuenta del stock")
	assert.Equal(t, int64(3500), mustInt(t, res.Total))
	assert.False(t, res.LastUnit)
	assert.Equal(t, 1, f.carts.saves, "la mutación debe persistir el carrito")
	assert.Equal(t, 1, f.stock.saves, "la mutación debe persistir el stock")
}

func TestAddUnit_ProductoInexistente(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	_, err := f.uc.AddUnit(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Escenario de la tienda: producto con stock 3. Tres agregados consecutivos
// funcionan; el cuarto falla sin tocar el estado.
func TestAddUnit_SinStock(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 10_000, 3)})

	for i := 1; i <= 3; i++ {
		res, err := f.uc.AddUnit(1)
		require.NoError(t, err, "agregado %d debe funcionar", i)
		assert.Equal(t, i, res.Line.Quantity)
	}

	lines := f.uc.Lines()
	assert.Equal(t, 3, lines[0].Quantity)
	assert.Equal(t, 0, lines[0].Stock)
	assert.Equal(t, int64(30_000), mustInt(t, f.uc.ComputeTotal()))

	_, err := f.uc.AddUnit(1)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	var stockErr *cart.OutOfStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Cerveza 1", stockErr.ProductName)

	lines = f.uc.Lines()
	assert.Equal(t, 3, lines[0].Quantity, "el fallo no debe tocar la cantidad")
	assert.Equal(t, 0, lines[0].Stock, "el fallo no debe tocar el stock")
}

func TestAddUnit_UltimaUnidad(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 1)})

	res, err := f.uc.AddUnit(1)
	require.NoError(t, err)
	assert.True(t, res.LastUnit, "debe avisar cuando el stock llega a cero")
}

// Escenario de la tienda: producto de $150.001. El primero entra
// (150.001 ≤ 300.000); el segundo superaría el tope y falla con la cantidad
// intacta.
func TestAddUnit_LimiteDeCompra(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(2, 150_001, 5)})

	_, err := f.uc.AddUnit(2)
	require.NoError(t, err, "el primer agregado entra dentro del tope")

	_, err = f.uc.AddUnit(2)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)

	var limitErr *cart.LimitExceededError
	require.ErrorAs(t, err, &limitErr)
	assert.Equal(t, int64(300_002), mustInt(t, limitErr.FutureTotal),
		"el error debe informar el total que habría quedado")

	lines := f.uc.Lines()
	assert.Equal(t, 1, lines[0].Quantity, "el fallo deja la cantidad como estaba")
	assert.Equal(t, int64(150_001), mustInt(t, f.uc.ComputeTotal()))
}

// El tope compara estricto: un total de exactamente $300.000 es admisible.
func TestAddUnit_TopeExacto(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 150_000, 5)})

	_, err := f.uc.AddUnit(1)
	require.NoError(t, err)
	_, err = f.uc.AddUnit(1)
	require.NoError(t, err, "llegar justo al tope está permitido")
	assert.Equal(t, int64(300_000), mustInt(t, f.uc.ComputeTotal()))

	_, err = f.uc.AddUnit(1)
	assert.ErrorIs(t, err, domain.ErrLimitExceeded)
}

// El tope valida la próxima unidad aunque el carrito mezcle productos.
func TestAddUnit_TopeValidaLaProximaUnidad(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 299_999, 5), beer(2, 2, 5)})

	_, err := f.uc.AddUnit(1)
	require.NoError(t, err)

	_, err = f.uc.AddUnit(2)
	assert.ErrorIs(t, err, domain.ErrLimitExceeded, "299.999 + 2 supera el tope")
}

func TestAddUnit_InvitadoNoPersiste(t *testing.T) {
	f := newFixture(entity.GuestUser)
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	_, err := f.uc.AddUnit(1)
	require.NoError(t, err)

	assert.Zero(t, f.carts.saves, "el carrito del invitado nunca se guarda")
	assert.Zero(t, f.stock.saves, "el stock consumido por el invitado tampoco")
}

func TestAddUnit_FalloDeEscritura_NoRevierte(t *testing.T) {
	f := newFixture("Juan")
	f.carts.saveErr = errors.New("disco lleno")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	res, err := f.uc.AddUnit(1)
	require.NoError(t, err, "el fallo de persistencia no debe fallar la mutación")
	assert.Equal(t, 1, res.Line.Quantity, "la mutación en memoria queda aplicada")
}

// ──────────────────────────────────────────────────────────────────────────────
// RemoveUnit / RemoveLine
// ──────────────────────────────────────────────────────────────────────────────

func TestRemoveUnit_DevuelveAlStock(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	_, err := f.uc.AddUnit(1)
	require.NoError(t, err)
	_, err = f.uc.AddUnit(1)
	require.NoError(t, err)

	res, err := f.uc.RemoveUnit(1)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Line.Quantity)
	assert.Equal(t, 23, res.Line.Stock)
	assert.False(t, res.RemovedLine, "con cantidad restante el mensaje es \"reducido\"")

	res, err = f.uc.RemoveUnit(1)
	require.NoError(t, err)
	assert.True(t, res.RemovedLine, "al llegar a cero el mensaje es \"eliminado\"")
	assert.Equal(t, 24, res.Line.Stock)
}

func TestRemoveUnit_CantidadCero_NoOp(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	res, err := f.uc.RemoveUnit(1)
	require.NoError(t, err, "quitar con cantidad cero no es un error")
	assert.True(t, res.NoOp)
	assert.Equal(t, 24, res.Line.Stock, "el no-op no toca el stock")
	assert.Zero(t, f.carts.saves, "el no-op no persiste nada")
}

func TestRemoveUnit_ProductoInexistente(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	_, err := f.uc.RemoveUnit(99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveLine_DevuelveTodoAlStock(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	for i := 0; i < 3; i++ {
		_, err := f.uc.AddUnit(1)
		require.NoError(t, err)
	}

	res, err := f.uc.RemoveLine(1)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Line.Quantity)
	assert.Equal(t, 24, res.Line.Stock, "todas las unidades vuelven al stock")

	// Idempotente con cantidad ya en cero
	res, err = f.uc.RemoveLine(1)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Line.Quantity)
	assert.Equal(t, 24, res.Line.Stock)
}

// Propiedad de conservación: para cualquier secuencia de agregar/quitar sobre
// una línea, cantidad + stock restante == stock inicial.
func TestConservacion_CantidadMasStock(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 10)})

	ops := []func() error{
		func() error { _, err := f.uc.AddUnit(1); return err },
		func() error { _, err := f.uc.AddUnit(1); return err },
		func() error { _, err := f.uc.RemoveUnit(1); return err },
		func() error { _, err := f.uc.AddUnit(1); return err },
		func() error { _, err := f.uc.AddUnit(1); return err },
		func() error { _, err := f.uc.RemoveUnit(1); return err },
		func() error { _, err := f.uc.RemoveUnit(1); return err },
	}
	for i, op := range ops {
		require.NoError(t, op(), "operación %d", i)
		line := f.uc.Lines()[0]
		assert.Equal(t, 10, line.Quantity+line.Stock,
			"cantidad + stock debe conservarse tras la operación %d", i)
	}
}

// Sin inicializar no hay estado en memoria que volcar: Persist y Clear deben
// dejar los snapshots guardados exactamente como estaban, no pisarlos con
// vacío. Cubre cerrar sesión o vaciar el carrito antes de pasar por el listado.
func TestPersist_SinInicializar_NoPisaSnapshots(t *testing.T) {
	f := newFixture("Juan")
	savedCart := []entity.CartItemSnapshot{{ID: 1, Quantity: 2}}
	savedStock := entity.StockSnapshot{1: 5}
	f.carts.carts["Juan"] = savedCart
	f.stock.stock = savedStock

	f.uc.Persist()

	got, ok := f.carts.GetCart("Juan")
	require.True(t, ok, "el carrito guardado debe sobrevivir")
	assert.Equal(t, savedCart, got)
	assert.Equal(t, savedStock, f.stock.stock, "el stock guardado debe sobrevivir")
	assert.Zero(t, f.carts.saves, "no debe haber ninguna escritura")
	assert.Zero(t, f.stock.saves)
}

func TestClear_SinInicializar_NoPisaSnapshots(t *testing.T) {
	f := newFixture("Juan")
	savedCart := []entity.CartItemSnapshot{{ID: 1, Quantity: 2}}
	savedStock := entity.StockSnapshot{1: 5}
	f.carts.carts["Juan"] = savedCart
	f.stock.stock = savedStock

	f.uc.Clear()

	got, ok := f.carts.GetCart("Juan")
	require.True(t, ok, "vaciar sin inicializar no debe borrar el carrito guardado")
	assert.Equal(t, savedCart, got)
	assert.Equal(t, savedStock, f.stock.stock)
	assert.Zero(t, f.carts.deletes, "no debe haber borrados")
	assert.Zero(t, f.stock.saves)
}

// ──────────────────────────────────────────────────────────────────────────────
// Clear / Checkout
// ──────────────────────────────────────────────────────────────────────────────

// Vaciar no devuelve stock: las unidades ya salieron del inventario. Esta
// asimetría con RemoveUnit/RemoveLine es deliberada.
func TestClear_NoRestauraStock(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24), beer(2, 2800, 36)})

	_, err := f.uc.AddUnit(1)
	require.NoError(t, err)
	_, err = f.uc.AddUnit(1)
	require.NoError(t, err)

	stockSaves := f.stock.saves
	f.uc.Clear()

	lines := f.uc.Lines()
	assert.Equal(t, 0, lines[0].Quantity, "todas las cantidades quedan en cero")
	assert.Equal(t, 22, lines[0].Stock, "el stock NO se restaura al vaciar")
	assert.Equal(t, 36, lines[1].Stock)

	_, exists := f.carts.GetCart("Juan")
	assert.False(t, exists, "el snapshot del carrito se borra")
	assert.Equal(t, stockSaves+1, f.stock.saves, "el snapshot de stock se reescribe sin cambios")
	assert.Equal(t, 22, f.stock.stock[1])
}

func TestCheckout_Invitado(t *testing.T) {
	f := newFixture(entity.GuestUser)
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})
	_, err := f.uc.AddUnit(1)
	require.NoError(t, err)

	_, err = f.uc.Checkout()
	assert.ErrorIs(t, err, domain.ErrGuestNotAllowed,
		"el invitado no puede comprar aunque tenga carrito")
}

func TestCheckout_CarritoVacio(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24)})

	_, err := f.uc.Checkout()
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

func TestCheckout_Exito(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 30_000, 24), beer(2, 25_000, 10)})

	_, err := f.uc.AddUnit(1)
	require.NoError(t, err)
	_, err = f.uc.AddUnit(2)
	require.NoError(t, err)

	res, err := f.uc.Checkout()
	require.NoError(t, err)

	_, err = uuid.Parse(res.OrderID)
	assert.NoError(t, err, "el id de orden es un UUID")
	assert.Equal(t, "Juan", res.User)
	require.Len(t, res.Items, 2, "el resultado lista solo las líneas compradas")
	assert.Equal(t, int64(55_000), mustInt(t, res.Summary.Subtotal),
		"el total devuelto es el previo al vaciado")
	assert.True(t, res.Summary.FreeShipping)

	// El efecto sobre el estado es el de Clear: cantidades en cero, stock intacto.
	lines := f.uc.Lines()
	assert.Equal(t, 0, lines[0].Quantity)
	assert.Equal(t, 23, lines[0].Stock)
	assert.Equal(t, int64(0), mustInt(t, f.uc.ComputeTotal()))
}

// ──────────────────────────────────────────────────────────────────────────────
// Resumen de compra
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_EnvioEnElUmbral(t *testing.T) {
	// $49.999 paga envío; $50.000 ya no.
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 49_999, 5), beer(2, 1, 5)})

	_, err := f.uc.AddUnit(1)
	require.NoError(t, err)

	s := f.uc.GetSummary()
	assert.Equal(t, int64(49_999), mustInt(t, s.Subtotal))
	assert.Equal(t, int64(5_000), mustInt(t, s.Shipping))
	assert.Equal(t, int64(54_999), mustInt(t, s.GrandTotal))
	assert.False(t, s.FreeShipping)

	_, err = f.uc.AddUnit(2)
	require.NoError(t, err)

	s = f.uc.GetSummary()
	assert.Equal(t, int64(50_000), mustInt(t, s.Subtotal))
	assert.True(t, s.Shipping.IsZero(), "desde $50.000 el envío es gratis")
	assert.Equal(t, int64(50_000), mustInt(t, s.GrandTotal))
	assert.True(t, s.FreeShipping)
}

// ──────────────────────────────────────────────────────────────────────────────
// Snapshots
// ──────────────────────────────────────────────────────────────────────────────

// Inicializar desde snapshots y volver a serializar sin mutaciones en el medio
// reproduce exactamente los mismos snapshots.
func TestSnapshot_RoundTrip(t *testing.T) {
	f := newFixture("Juan")
	savedCart := []entity.CartItemSnapshot{{ID: 1, Quantity: 2}, {ID: 3, Quantity: 1}}
	savedStock := entity.StockSnapshot{1: 8, 2: 36, 3: 4}
	f.carts.carts["Juan"] = savedCart
	f.stock.stock = savedStock

	f.uc.Initialize([]entity.Product{beer(1, 3500, 24), beer(2, 2800, 36), beer(3, 4200, 18)})

	assert.Equal(t, savedCart, f.uc.SnapshotItems(),
		"el carrito serializado reproduce el snapshot de origen")
	assert.Equal(t, savedStock, f.uc.SnapshotStock(),
		"el stock serializado reproduce el snapshot de origen")
}

func TestSnapshotItems_SoloCantidadesPositivas(t *testing.T) {
	f := newFixture("Juan")
	f.uc.Initialize([]entity.Product{beer(1, 3500, 24), beer(2, 2800, 36)})

	_, err := f.uc.AddUnit(2)
	require.NoError(t, err)

	items := f.uc.SnapshotItems()
	require.Len(t, items, 1, "las líneas con cantidad cero no se serializan")
	assert.Equal(t, 2, items[0].ID)
}
