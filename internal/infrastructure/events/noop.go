package events

import (
	"context"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

var _ inventory.EventPublisher = Noop{}

// Noop descarta los eventos; se usa cuando no hay brokers configurados.
type Noop struct{}

func (Noop) StockLow(context.Context, *entity.Product) error { return nil }

func (Noop) BookingDeducted(context.Context, *entity.Booking, *dto.AutoDeductResult) error {
	return nil
}
