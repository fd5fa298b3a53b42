package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

// ProductFilter filtros del listado de productos. Los campos vacíos no filtran.
type ProductFilter struct {
	Category     string
	Gender       string // incluye también los productos "both"
	Search       string // nombre o nombre árabe, sin distinguir mayúsculas
	IsActive     *bool
	LowStockOnly bool
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea el producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update actualiza datos de catálogo y servicios vinculados; nunca CurrentStock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock escribe el nuevo saldo si la versión coincide; si no, ErrConcurrentUpdate.
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal, expectedVersion int64) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// ListActiveByService devuelve los productos activos vinculados al servicio, en orden estable.
	ListActiveByService(ctx context.Context, serviceID string) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
