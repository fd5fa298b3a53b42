package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypePurchase   = "purchase"   // compra / reposición
	MovementTypeUsage      = "usage"      // consumo en servicio
	MovementTypeAdjustment = "adjustment" // ajuste manual
	MovementTypeReturn     = "return"     // devolución
	MovementTypeExpired    = "expired"    // vencido / descartado
)

// StockMovement es una entrada del ledger de un producto (append-only).
// Invariante: StockAfter = StockBefore + Quantity.
type StockMovement struct {
	ID          string
	ProductID   string
	Type        string
	Quantity    decimal.Decimal // positivo entrada, negativo salida
	StockBefore decimal.Decimal
	StockAfter  decimal.Decimal
	BookingID   string // vacío si el movimiento no proviene de una reserva
	PerformedBy string // AdminID o actor de sistema
	Reason      string
	CreatedAt   time.Time
}

// IsValidMovementType valida el tipo de movimiento.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeUsage, MovementTypeAdjustment, MovementTypeReturn, MovementTypeExpired:
		return true
	}
	return false
}
