package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidID          = errors.New("identificador con formato inválido")
	ErrMissingField       = errors.New("faltan campos requeridos")
	ErrDuplicateUser      = errors.New("el usuario ya está registrado")
	ErrDuplicateBarcode   = errors.New("el código de barras ya existe")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInvalidDiscount    = errors.New("el descuento debe estar entre 0 y 100")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)
