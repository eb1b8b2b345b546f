package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicateCode      = errors.New("código de producto duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrProcedureNotActive = errors.New("el procedimiento no está activo")
)

// PartialFailure indica que una operación de dos pasos completó el primero
// pero falló el segundo: la entidad principal quedó escrita y el paso
// dependiente (movimiento de kardex, cierre de paciente) no.
// El caller NO debe asumir que el kardex es autoritativo tras este error.
type PartialFailure struct {
	Op   string // operación que quedó a medias, ej. "cerrar procedimiento"
	Done string // paso que sí se aplicó
	Err  error  // causa del paso fallido
}

func (e *PartialFailure) Error() string {
	return fmt.Sprintf("fallo parcial en %s (%s aplicado): %v", e.Op, e.Done, e.Err)
}

func (e *PartialFailure) Unwrap() error { return e.Err }

// IsPartialFailure reporta si err (o su cadena) es un fallo parcial.
func IsPartialFailure(err error) bool {
	var pf *PartialFailure
	return errors.As(err, &pf)
}
