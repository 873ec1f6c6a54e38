// Package notify implementa el notificador de la tienda: los mensajes van al
// log estructurado y, por pedido, se recolectan para viajar en la respuesta
// HTTP (el reemplazo del toast en pantalla).
package notify

import (
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// LogNotifier registra cada mensaje con su severidad.
type LogNotifier struct {
	log *logger.Logger
}

// NewLogNotifier construye el notificador.
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Success(msg string) {
	n.log.Info().Str("tipo", dto.NotifySuccess).Msg(msg)
}

func (n *LogNotifier) Error(msg string) {
	n.log.Error().Str("tipo", dto.NotifyError).Msg(msg)
}

func (n *LogNotifier) Info(msg string) {
	n.log.Info().Str("tipo", dto.NotifyInfo).Msg(msg)
}

func (n *LogNotifier) Warning(msg string) {
	n.log.Warn().Str("tipo", dto.NotifyWarning).Msg(msg)
}

// Collector envuelve otro notificador y recuerda el último mensaje emitido.
// Se crea uno por petición: el handler lo consulta al armar la respuesta.
type Collector struct {
	next ports.Notifier
	last *dto.Notification
}

// NewCollector construye el recolector sobre otro notificador.
func NewCollector(next ports.Notifier) *Collector {
	return &Collector{next: next}
}

func (c *Collector) Success(msg string) {
	c.next.Success(msg)
	c.last = &dto.Notification{Type: dto.NotifySuccess, Message: msg}
}

func (c *Collector) Error(msg string) {
	c.next.Error(msg)
	c.last = &dto.Notification{Type: dto.NotifyError, Message: msg}
}

func (c *Collector) Info(msg string) {
	c.next.Info(msg)
	c.last = &dto.Notification{Type: dto.NotifyInfo, Message: msg}
}

func (c *Collector) Warning(msg string) {
	c.next.Warning(msg)
	c.last = &dto.Notification{Type: dto.NotifyWarning, Message: msg}
}

// Last devuelve la última notificación emitida en esta petición, o nil.
func (c *Collector) Last() *dto.Notification {
	return c.last
}
