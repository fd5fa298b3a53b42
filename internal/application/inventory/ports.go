package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Saldo y movimiento se escriben juntos o no se escriben.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error) error
}

// EventPublisher publica eventos de inventario hacia otros sistemas.
type EventPublisher interface {
	StockLow(ctx context.Context, product *entity.Product) error
	BookingDeducted(ctx context.Context, booking *entity.Booking, result *dto.AutoDeductResult) error
}

// StockReportGenerator genera el reporte de stock en PDF.
type StockReportGenerator interface {
	GenerateStockReport(stats *dto.InventoryStatsResponse, products []*entity.Product, generatedAt time.Time) ([]byte, error)
}
