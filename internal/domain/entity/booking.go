package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva.
const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusInProgress = "in-progress"
	BookingStatusCompleted  = "completed"
	BookingStatusCancelled  = "cancelled"
)

// Tipos de línea de reserva.
const (
	BookingItemService = "service"
	BookingItemPackage = "package"
)

// BookingItem línea de servicio o paquete dentro de una reserva.
type BookingItem struct {
	ItemID       string
	Type         string
	Name         string
	NameAr       string
	Price        decimal.Decimal
	Quantity     int
	Duration     int // minutos
	PackageItems []string
}

// EffectiveQuantity cantidad a consumir; una línea sin cantidad cuenta como 1.
func (i BookingItem) EffectiveQuantity() int64 {
	if i.Quantity < 1 {
		return 1
	}
	return int64(i.Quantity)
}

// Address dirección del servicio a domicilio.
type Address struct {
	Building  string
	Apartment string
	Area      string
}

// Booking reserva de un cliente. El motor de inventario solo la lee.
type Booking struct {
	ID                string
	BookingNumber     string
	CustomerName      string
	Phone             string
	Services          []BookingItem
	TotalAmount       decimal.Decimal
	Date              time.Time
	Time              string
	Address           Address
	Status            string
	AssignedStaff     string
	AssignedStaffName string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValidBookingStatus valida un estado.
func IsValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusInProgress, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

// TriggersInventoryDeduction true solo en la transición X -> completed con X != completed.
func TriggersInventoryDeduction(previous, next string) bool {
	return next == BookingStatusCompleted && previous != BookingStatusCompleted
}
