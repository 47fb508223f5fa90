package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// Errores de disponibilidad del backend remoto: disparan el fallback al espejo local.
	ErrRemoteUnavailable   = errors.New("backend remoto no disponible")
	ErrRemoteNotConfigured = errors.New("backend remoto sin configurar")
)
