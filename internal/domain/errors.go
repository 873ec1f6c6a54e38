package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("producto no encontrado en el carrito")
	ErrLimitExceeded      = errors.New("superarías el límite de compra")
	ErrOutOfStock         = errors.New("sin stock disponible")
	ErrEmptyCart          = errors.New("el carrito está vacío")
	ErrGuestNotAllowed    = errors.New("los invitados no pueden finalizar compras")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrNoSession          = errors.New("no hay sesión iniciada")
	ErrCartNotInitialized = errors.New("el carrito no está inicializado")
	ErrCatalogUnavailable = errors.New("no se pudieron cargar los productos")
)
