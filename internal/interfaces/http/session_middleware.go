package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/session"
)

// RequireSession protege las vistas de productos y carrito: sin identidad
// activa responde 401 y el cliente redirige al login. El invitado cuenta como
// sesión válida (solo el checkout lo rechaza).
func RequireSession(uc *session.SessionUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := uc.Current(); !ok {
			return fail(c, fiber.StatusUnauthorized, "NO_SESSION", "no hay sesión iniciada", &dto.Notification{
				Type:    dto.NotifyWarning,
				Message: "Debes iniciar sesión",
			})
		}
		return c.Next()
	}
}
