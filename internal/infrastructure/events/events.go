// Package events publica eventos de inventario (stock bajo, descuento por reserva).
package events

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
)

// Tipos de evento.
const (
	TypeStockLow        = "inventory.stock_low"
	TypeBookingDeducted = "inventory.booking_deducted"
)

// StockLowEvent se emite cuando un movimiento deja el producto en o bajo su umbral.
type StockLowEvent struct {
	EventID           string          `json:"eventId"`
	Type              string          `json:"type"`
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	CurrentStock      decimal.Decimal `json:"currentStock"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
	Unit              string          `json:"unit"`
	OccurredAt        time.Time       `json:"occurredAt"`
}

// BookingDeductedEvent resumen del descuento automático de una reserva completada.
type BookingDeductedEvent struct {
	EventID       string               `json:"eventId"`
	Type          string               `json:"type"`
	BookingID     string               `json:"bookingId"`
	BookingNumber string               `json:"bookingNumber"`
	Summary       dto.AutoDeductResult `json:"summary"`
	OccurredAt    time.Time            `json:"occurredAt"`
}
