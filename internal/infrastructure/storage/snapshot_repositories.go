package storage

import (
	"encoding/json"

	"github.com/jhoicas/Tienda-api/internal/domain/entity"
)

// Esquema de claves del dispositivo. Mismas claves para cualquier identidad
// que use este equipo; solo el carrito es por usuario.
const (
	keyCurrentUser = "usuarioActual"
	keyStock       = "stockProductos"
	cartKeyPrefix  = "carrito_"
)

// SessionStore persiste la identidad activa sobre el FileStore.
type SessionStore struct {
	store *FileStore
}

// NewSessionStore construye el repositorio.
func NewSessionStore(store *FileStore) *SessionStore {
	return &SessionStore{store: store}
}

// CurrentUser devuelve la identidad activa guardada.
func (r *SessionStore) CurrentUser() (string, bool) {
	data, ok := r.store.Get(keyCurrentUser)
	if !ok {
		return "", false
	}
	var user string
	if err := json.Unmarshal(data, &user); err != nil || user == "" {
		return "", false
	}
	return user, true
}

// SaveCurrentUser guarda la identidad activa. El último login gana.
func (r *SessionStore) SaveCurrentUser(user string) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.Set(keyCurrentUser, data)
}

// DeleteCurrentUser elimina la identidad activa.
func (r *SessionStore) DeleteCurrentUser() error {
	return r.store.Delete(keyCurrentUser)
}

// CartStore persiste el carrito por identidad (carrito_<usuario>).
type CartStore struct {
	store *FileStore
}

// NewCartStore construye el repositorio.
func NewCartStore(store *FileStore) *CartStore {
	return &CartStore{store: store}
}

// GetCart devuelve el carrito guardado del usuario. Un blob corrupto se trata
// como ausente, nunca como error.
func (r *CartStore) GetCart(user string) ([]entity.CartItemSnapshot, bool) {
	data, ok := r.store.Get(cartKeyPrefix + user)
	if !ok {
		return nil, false
	}
	var items []entity.CartItemSnapshot
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	return items, true
}

// SaveCart sobrescribe el carrito guardado del usuario.
func (r *CartStore) SaveCart(user string, items []entity.CartItemSnapshot) error {
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.store.Set(cartKeyPrefix+user, data)
}

// DeleteCart elimina el carrito guardado del usuario.
func (r *CartStore) DeleteCart(user string) error {
	return r.store.Delete(cartKeyPrefix + user)
}

// StockStore persiste el stock restante global (stockProductos).
type StockStore struct {
	store *FileStore
}

// NewStockStore construye el repositorio.
func NewStockStore(store *FileStore) *StockStore {
	return &StockStore{store: store}
}

// GetStock devuelve el stock guardado. Corrupto se trata como ausente.
func (r *StockStore) GetStock() (entity.StockSnapshot, bool) {
	data, ok := r.store.Get(keyStock)
	if !ok {
		return nil, false
	}
	var stock entity.StockSnapshot
	if err := json.Unmarshal(data, &stock); err != nil {
		return nil, false
	}
	return stock, true
}

// SaveStock sobrescribe el stock guardado de todos los productos.
func (r *StockStore) SaveStock(stock entity.StockSnapshot) error {
	data, err := json.Marshal(stock)
	if err != nil {
		return err
	}
	return r.store.Set(keyStock, data)
}
