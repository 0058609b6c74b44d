package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")

	// ErrUnauthenticated: no hay usuario en sesión. Se devuelve antes de tocar el store.
	ErrUnauthenticated = errors.New("no autenticado")
	// ErrValidation: falta un campo requerido o tiene formato inválido (frontera del formulario).
	ErrValidation = errors.New("validación fallida")
	// ErrStoreUnavailable: el store externo (DB, bucket) no respondió.
	ErrStoreUnavailable = errors.New("almacenamiento no disponible")
	// ErrAnalysisFailed: el servicio de análisis falló o excedió el timeout.
	ErrAnalysisFailed = errors.New("análisis no disponible")
	// ErrSubmissionInFlight: el mismo formulario ya tiene un envío en curso.
	ErrSubmissionInFlight = errors.New("ya hay un envío en curso para este formulario")
)
