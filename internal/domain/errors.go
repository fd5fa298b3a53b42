package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas salvo decimal para cantidades).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrProductNotFound   = errors.New("producto no encontrado")
	ErrBookingNotFound   = errors.New("reserva no encontrada")
	ErrAdminNotFound     = errors.New("administrador no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que 0")
	ErrInvalidStatus     = errors.New("estado de reserva inválido")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	// ErrConcurrentUpdate indica que otro escritor modificó el producto entre la lectura y la escritura.
	ErrConcurrentUpdate = errors.New("el producto fue modificado concurrentemente")
)

// InsufficientStockError detalle de un descuento rechazado. errors.Is(err, ErrInsufficientStock) es true.
type InsufficientStockError struct {
	ProductName string
	Available   decimal.Decimal
	Required    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %q. Disponible: %s, Requerido: %s",
		e.ProductName, e.Available.String(), e.Required.String())
}

// Is permite comparar contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
