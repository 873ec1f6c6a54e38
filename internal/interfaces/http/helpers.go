package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
)

// fail responde un error HTTP con el cuerpo estándar y la notificación de la
// petición (si hubo).
func fail(c *fiber.Ctx, status int, code, msg string, n *dto.Notification) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg, Notification: n})
}
