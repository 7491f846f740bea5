package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrHierarchyViolation = errors.New("movimiento no permitido por la jerarquía de ubicaciones")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
)

// ValidationError describe una entrada mal formada. Se compara con ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// NewValidationError atajo para construir un *ValidationError.
func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// HierarchyError rechazo de la política de jerarquía.
// AllowedTypes lleva los tipos destino válidos para mostrarlos al cliente.
type HierarchyError struct {
	FromType     string
	ToType       string
	Reason       string
	AllowedTypes []string
}

func (e *HierarchyError) Error() string { return e.Reason }

func (e *HierarchyError) Unwrap() error { return ErrHierarchyViolation }

// InsufficientStockError indica cantidad requerida vs disponible para un par (ubicación, producto).
type InsufficientStockError struct {
	LocationID string
	ProductID  string
	Required   int
	Available  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para el producto %s en la ubicación %s: requerido %d, disponible %d",
		e.ProductID, e.LocationID, e.Required, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// TransitionError cambio de estado no permitido por la máquina de estados del movimiento.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("no se puede pasar de %s a %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// JoinReasons une mensajes de validación en una sola línea legible.
func JoinReasons(reasons []string) string {
	return strings.Join(reasons, "; ")
}
