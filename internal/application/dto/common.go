package dto

// Tipos de notificación (los cuatro canales del notificador).
const (
	NotifySuccess = "exito"
	NotifyError   = "error"
	NotifyInfo    = "info"
	NotifyWarning = "advertencia"
)

// Notification mensaje dirigido al usuario que acompaña a las respuestas de
// operaciones mutantes (el análogo del toast).
type Notification struct {
	Type    string `json:"tipo"`
	Message string `json:"mensaje"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code         string        `json:"code"`
	Message      string        `json:"message"`
	Notification *Notification `json:"notificacion,omitempty"`
}
