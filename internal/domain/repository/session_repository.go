package repository

// SessionRepository persiste la identidad activa (clave usuarioActual).
// Hay una sola identidad activa por dispositivo: el último login gana.
type SessionRepository interface {
	// CurrentUser devuelve la identidad activa, o false si no hay sesión.
	CurrentUser() (string, bool)
	// SaveCurrentUser guarda la identidad activa.
	SaveCurrentUser(user string) error
	// DeleteCurrentUser elimina la identidad activa (logout).
	DeleteCurrentUser() error
}
