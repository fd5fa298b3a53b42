package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockChangeRequest body para POST /api/inventory/:id/add-stock y /deduct-stock.
type StockChangeRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason"`
	Type     string          `json:"type,omitempty"` // solo deduct-stock: usage, adjustment, expired...
}

// StockChangeResponse resultado de una operación manual sobre el ledger.
type StockChangeResponse struct {
	Message string        `json:"message"`
	Data    StockLevelDTO `json:"data"`
	Warning string        `json:"warning,omitempty"`
}

// StockLevelDTO saldo actual de un producto.
type StockLevelDTO struct {
	ProductID    string          `json:"productId"`
	Name         string          `json:"name"`
	CurrentStock decimal.Decimal `json:"currentStock"`
	Unit         string          `json:"unit"`
	IsLowStock   bool            `json:"isLowStock"`
}

// StockMovementDTO entrada del historial.
type StockMovementDTO struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	StockBefore decimal.Decimal `json:"stockBefore"`
	StockAfter  decimal.Decimal `json:"stockAfter"`
	BookingID   string          `json:"bookingId,omitempty"`
	PerformedBy string          `json:"performedBy,omitempty"`
	Reason      string          `json:"reason,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// StockHistoryResponse salida de GET /api/inventory/:id/history.
type StockHistoryResponse struct {
	Product StockLevelDTO      `json:"product"`
	Data    []StockMovementDTO `json:"data"`
}

// DeductionResultDTO resultado por producto del descuento automático de una reserva.
// Deducted/Remaining solo aparecen si se descontó; Error/Skipped si se omitió.
type DeductionResultDTO struct {
	Product   string           `json:"product"`
	Deducted  *decimal.Decimal `json:"deducted,omitempty"`
	Remaining *decimal.Decimal `json:"remaining,omitempty"`
	Unit      string           `json:"unit,omitempty"`
	Error     string           `json:"error,omitempty"`
	Skipped   bool             `json:"skipped,omitempty"`
}

// AutoDeductResult resumen del descuento automático al completar una reserva.
type AutoDeductResult struct {
	Success  bool                 `json:"success"`
	Results  []DeductionResultDTO `json:"results"`
	Warnings []string             `json:"warnings"`
	Error    string               `json:"error,omitempty"`
}

// LowStockAlertsResponse salida de GET /api/inventory/low-stock.
type LowStockAlertsResponse struct {
	Summary LowStockSummary     `json:"summary"`
	Data    LowStockAlertGroups `json:"data"`
}

// LowStockSummary conteos por nivel de alerta.
type LowStockSummary struct {
	TotalAlerts int `json:"totalAlerts"`
	OutOfStock  int `json:"outOfStock"`
	Critical    int `json:"critical"`
	Low         int `json:"low"`
}

// LowStockAlertGroups productos agrupados por nivel de alerta.
type LowStockAlertGroups struct {
	OutOfStock []ProductResponse `json:"outOfStock"`
	Critical   []ProductResponse `json:"critical"`
	Low        []ProductResponse `json:"low"`
}

// InventoryStatsResponse salida de GET /api/inventory/stats.
type InventoryStatsResponse struct {
	TotalProducts   int                      `json:"totalProducts"`
	TotalStockValue decimal.Decimal          `json:"totalStockValue"`
	LowStockCount   int                      `json:"lowStockCount"`
	OutOfStockCount int                      `json:"outOfStockCount"`
	ByCategory      map[string]CategoryStats `json:"byCategory"`
}

// CategoryStats conteo de productos y alertas por categoría.
type CategoryStats struct {
	Count    int `json:"count"`
	LowStock int `json:"lowStock"`
}
