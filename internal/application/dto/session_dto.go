package dto

// LoginRequest entrada del login: solo un nombre visible, sin contraseña.
type LoginRequest struct {
	User string `json:"usuario" validate:"required,min=1,max=60"`
}

// SessionResponse identidad activa y si es la identidad invitada.
type SessionResponse struct {
	User         string        `json:"usuario"`
	Guest        bool          `json:"invitado"`
	Notification *Notification `json:"notificacion,omitempty"`
}
