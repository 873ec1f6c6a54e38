package session

import (
	"strings"

	"github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
)

// SessionUseCase maneja la identidad activa: un nombre visible guardado en el
// dispositivo, sin contraseña ni backend de autenticación. El último login
// gana. La identidad "Invitado" es un centinela cuyo carrito nunca se guarda.
type SessionUseCase struct {
	repo repository.SessionRepository
	cart *cart.CartUseCase
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(repo repository.SessionRepository, cartUC *cart.CartUseCase) *SessionUseCase {
	return &SessionUseCase{repo: repo, cart: cartUC}
}

// Login guarda el nombre como identidad activa. Rechaza nombres en blanco.
// Descarta el carrito en memoria de la identidad anterior; el próximo listado
// lo reconstruye desde los snapshots del nuevo usuario.
func (uc *SessionUseCase) Login(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrInvalidInput
	}
	if err := uc.repo.SaveCurrentUser(name); err != nil {
		return "", err
	}
	uc.cart.Reset()
	return name, nil
}

// ContinueAsGuest inicia una sesión efímera con la identidad invitada.
func (uc *SessionUseCase) ContinueAsGuest() (string, error) {
	if err := uc.repo.SaveCurrentUser(entity.GuestUser); err != nil {
		return "", err
	}
	uc.cart.Reset()
	return entity.GuestUser, nil
}

// Logout guarda el carrito de la identidad activa (invitado no guarda), borra
// la identidad y descarta el carrito en memoria. Devuelve el nombre que salió.
func (uc *SessionUseCase) Logout() (string, error) {
	user, ok := uc.repo.CurrentUser()
	if !ok {
		return "", domain.ErrNoSession
	}
	uc.cart.Persist()
	if err := uc.repo.DeleteCurrentUser(); err != nil {
		return "", err
	}
	uc.cart.Reset()
	return user, nil
}

// Current devuelve la identidad activa.
func (uc *SessionUseCase) Current() (string, bool) {
	return uc.repo.CurrentUser()
}

// IsGuest indica si la identidad activa es el centinela invitado.
func (uc *SessionUseCase) IsGuest() bool {
	user, ok := uc.repo.CurrentUser()
	return ok && user == entity.GuestUser
}
