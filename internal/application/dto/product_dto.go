package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierDTO datos del proveedor.
type SupplierDTO struct {
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
}

// LinkedServiceDTO vínculo producto-servicio.
type LinkedServiceDTO struct {
	ServiceID       string          `json:"serviceId"`
	ServiceName     string          `json:"serviceName,omitempty"`
	UsagePerSession decimal.Decimal `json:"usagePerSession"`
}

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string             `json:"name" validate:"required"`
	NameAr            string             `json:"nameAr"`
	Category          string             `json:"category" validate:"required"`
	Gender            string             `json:"gender"`
	Unit              string             `json:"unit" validate:"required"`
	CurrentStock      decimal.Decimal    `json:"currentStock"`
	LowStockThreshold *decimal.Decimal   `json:"lowStockThreshold"`
	CostPerUnit       decimal.Decimal    `json:"costPerUnit"`
	Supplier          SupplierDTO        `json:"supplier"`
	LinkedServices    []LinkedServiceDTO `json:"linkedServices"`
	Notes             string             `json:"notes"`
	IsActive          *bool              `json:"isActive"`
}

// UpdateProductRequest entrada para actualizar un producto (sin CurrentStock ni historial).
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	NameAr            *string          `json:"nameAr"`
	Category          *string          `json:"category"`
	Gender            *string          `json:"gender"`
	Unit              *string          `json:"unit"`
	LowStockThreshold *decimal.Decimal `json:"lowStockThreshold"`
	CostPerUnit       *decimal.Decimal `json:"costPerUnit"`
	Supplier          *SupplierDTO     `json:"supplier"`
	Notes             *string          `json:"notes"`
	IsActive          *bool            `json:"isActive"`
}

// LinkServiceRequest body para POST /api/inventory/:id/link-service.
type LinkServiceRequest struct {
	ServiceID       string          `json:"serviceId"`
	ServiceName     string          `json:"serviceName"`
	UsagePerSession decimal.Decimal `json:"usagePerSession"`
}

// LinkServiceResponse servicios vinculados tras link/unlink.
type LinkServiceResponse struct {
	Message string             `json:"message"`
	Data    []LinkedServiceDTO `json:"data"`
}

// ProductResponse salida de un producto. IsLowStock es derivado.
type ProductResponse struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	NameAr            string             `json:"nameAr,omitempty"`
	Category          string             `json:"category"`
	Gender            string             `json:"gender"`
	Unit              string             `json:"unit"`
	CurrentStock      decimal.Decimal    `json:"currentStock"`
	LowStockThreshold decimal.Decimal    `json:"lowStockThreshold"`
	CostPerUnit       decimal.Decimal    `json:"costPerUnit"`
	Supplier          SupplierDTO        `json:"supplier"`
	LinkedServices    []LinkedServiceDTO `json:"linkedServices"`
	Notes             string             `json:"notes,omitempty"`
	IsActive          bool               `json:"isActive"`
	IsLowStock        bool               `json:"isLowStock"`
	StockMovements    []StockMovementDTO `json:"stockMovements,omitempty"`
	CreatedBy         string             `json:"createdBy,omitempty"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// ProductListFilter filtros de GET /api/inventory.
type ProductListFilter struct {
	Category string
	Gender   string
	Search   string
	IsActive *bool
	LowStock bool
}

// ProductListResponse listado con resumen.
type ProductListResponse struct {
	Summary ProductListSummary `json:"summary"`
	Data    []ProductResponse  `json:"data"`
}

// ProductListSummary conteos del listado.
type ProductListSummary struct {
	TotalProducts   int `json:"totalProducts"`
	LowStockCount   int `json:"lowStockCount"`
	OutOfStockCount int `json:"outOfStockCount"`
}
