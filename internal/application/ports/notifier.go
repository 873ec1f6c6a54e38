package ports

// Notifier canal de mensajes al usuario (el análogo del toast). Cuatro
// severidades, sin valor de retorno: el núcleo dispara y sigue.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
	Warning(msg string)
}
