package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingItemDTO línea de servicio o paquete.
type BookingItemDTO struct {
	ItemID       string          `json:"itemId"`
	Type         string          `json:"type"`
	Name         string          `json:"name"`
	NameAr       string          `json:"nameAr,omitempty"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"quantity"`
	Duration     int             `json:"duration"`
	PackageItems []string        `json:"packageItems,omitempty"`
}

// AddressDTO dirección del servicio.
type AddressDTO struct {
	Building  string `json:"building,omitempty"`
	Apartment string `json:"apartment,omitempty"`
	Area      string `json:"area,omitempty"`
}

// CreateBookingRequest entrada pública para crear una reserva.
type CreateBookingRequest struct {
	CustomerName string           `json:"customerName"`
	Phone        string           `json:"phone"`
	Services     []BookingItemDTO `json:"services"`
	TotalAmount  decimal.Decimal  `json:"totalAmount"`
	Date         time.Time        `json:"date"`
	Time         string           `json:"time"`
	Address      AddressDTO       `json:"address"`
}

// UpdateBookingStatusRequest body para PUT /api/bookings/:id/status.
type UpdateBookingStatusRequest struct {
	Status string `json:"status"`
}

// BookingResponse salida de una reserva.
type BookingResponse struct {
	ID                string           `json:"id"`
	BookingNumber     string           `json:"bookingNumber"`
	CustomerName      string           `json:"customerName"`
	Phone             string           `json:"phone"`
	Services          []BookingItemDTO `json:"services"`
	TotalAmount       decimal.Decimal  `json:"totalAmount"`
	Date              time.Time        `json:"date"`
	Time              string           `json:"time"`
	Address           AddressDTO       `json:"address"`
	Status            string           `json:"status"`
	AssignedStaff     string           `json:"assignedStaff,omitempty"`
	AssignedStaffName string           `json:"assignedStaffName,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// BookingStatusResponse salida del cambio de estado; Inventory solo si se disparó el descuento.
type BookingStatusResponse struct {
	Data           BookingResponse   `json:"data"`
	PreviousStatus string            `json:"previousStatus"`
	Inventory      *AutoDeductResult `json:"inventory,omitempty"`
}

// BookingStatsResponse salida de GET /api/bookings/stats.
type BookingStatsResponse struct {
	TotalBookings   int             `json:"totalBookings"`
	TodayBookings   int             `json:"todayBookings"`
	WeeklyBookings  int             `json:"weeklyBookings"`
	MonthlyBookings int             `json:"monthlyBookings"`
	YearlyBookings  int             `json:"yearlyBookings"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
}
