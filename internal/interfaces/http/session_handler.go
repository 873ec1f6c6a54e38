package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/application/session"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/notify"
)

// SessionHandler maneja login, invitado, logout y consulta de sesión.
type SessionHandler struct {
	uc       *session.SessionUseCase
	notifier ports.Notifier
}

// NewSessionHandler construye el handler.
func NewSessionHandler(uc *session.SessionUseCase, notifier ports.Notifier) *SessionHandler {
	return &SessionHandler{uc: uc, notifier: notifier}
}

// Login godoc
// @Summary      Iniciar sesión con un nombre visible
// @Tags         sesion
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Nombre de usuario"
// @Success      200   {object}  dto.SessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sesion/login [post]
func (h *SessionHandler) Login(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return fail(c, fiber.StatusBadRequest, "INVALID_BODY", "cuerpo inválido", nil)
	}
	user, err := h.uc.Login(in.User)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			n.Error("Por favor ingresa un usuario")
			return fail(c, fiber.StatusBadRequest, "VALIDATION", "usuario es requerido", n.Last())
		}
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}

	n.Success(fmt.Sprintf("Bienvenido, %s!", user))
	return c.JSON(dto.SessionResponse{User: user, Notification: n.Last()})
}

// Guest godoc
// @Summary      Continuar como invitado (los cambios no se guardan)
// @Tags         sesion
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Router       /api/sesion/invitado [post]
func (h *SessionHandler) Guest(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	user, err := h.uc.ContinueAsGuest()
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}

	n.Info("Continuando como invitado (los cambios no se guardarán)")
	return c.JSON(dto.SessionResponse{User: user, Guest: true, Notification: n.Last()})
}

// Logout godoc
// @Summary      Cerrar sesión (guarda el carrito antes de salir)
// @Tags         sesion
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sesion/logout [post]
func (h *SessionHandler) Logout(c *fiber.Ctx) error {
	n := notify.NewCollector(h.notifier)

	user, err := h.uc.Logout()
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return fail(c, fiber.StatusUnauthorized, "NO_SESSION", "no hay sesión iniciada", nil)
		}
		return fail(c, fiber.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}

	n.Info(fmt.Sprintf("Hasta pronto, %s!", user))
	return c.JSON(dto.SessionResponse{User: user, Notification: n.Last()})
}

// Current godoc
// @Summary      Identidad activa
// @Tags         sesion
// @Produce      json
// @Success      200  {object}  dto.SessionResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sesion [get]
func (h *SessionHandler) Current(c *fiber.Ctx) error {
	user, ok := h.uc.Current()
	if !ok {
		return fail(c, fiber.StatusUnauthorized, "NO_SESSION", "no hay sesión iniciada", nil)
	}
	return c.JSON(dto.SessionResponse{User: user, Guest: user == entity.GuestUser})
}
