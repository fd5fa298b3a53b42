package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// publisherMock registra los eventos publicados.
type publisherMock struct {
	mock.Mock
}

func (m *publisherMock) StockLow(ctx context.Context, p *entity.Product) error {
	return m.Called(ctx, p).Error(0)
}

func (m *publisherMock) BookingDeducted(ctx context.Context, b *entity.Booking, r *dto.AutoDeductResult) error {
	return m.Called(ctx, b, r).Error(0)
}

var seedClock = time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)

// seedProduct inserta un producto activo; links alterna serviceID, usage.
func seedProduct(t *testing.T, store *memory.Store, id, name, stock, threshold string, links ...string) {
	t.Helper()
	p := &entity.Product{
		ID:                id,
		Name:              name,
		Category:          "Hair Care",
		Gender:            entity.GenderBoth,
		Unit:              "ml",
		CurrentStock:      dec(stock),
		LowStockThreshold: dec(threshold),
		IsActive:          true,
		CreatedAt:         seedClock,
		UpdatedAt:         seedClock,
	}
	seedClock = seedClock.Add(time.Minute)
	for i := 0; i+1 < len(links); i += 2 {
		p.LinkedServices = append(p.LinkedServices, entity.LinkedService{ServiceID: links[i], UsagePerSession: dec(links[i+1])})
	}
	require.NoError(t, store.Products().Create(context.Background(), p))
}

func seedBooking(t *testing.T, store *memory.Store, id string, items ...entity.BookingItem) *entity.Booking {
	t.Helper()
	b := &entity.Booking{
		ID:            id,
		BookingNumber: "BK" + id,
		CustomerName:  "Mariam",
		Phone:         "+97150000001",
		Services:      items,
		Status:        entity.BookingStatusCompleted,
		CreatedAt:     seedClock,
		UpdatedAt:     seedClock,
	}
	require.NoError(t, store.Bookings().Create(context.Background(), b))
	return b
}

func stockOf(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	p, err := store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

// conflictingTx simula otra escritura entre lectura y escritura en los primeros conflicts intentos.
type conflictingTx struct {
	inner     *memory.TxRunner
	conflicts int
	calls     int
}

func (c *conflictingTx) Run(ctx context.Context, fn func(repository.ProductRepository, repository.StockMovementRepository) error) error {
	return c.inner.Run(ctx, func(products repository.ProductRepository, movements repository.StockMovementRepository) error {
		c.calls++
		if c.calls <= c.conflicts {
			products = staleProducts{ProductRepository: products}
		}
		return fn(products, movements)
	})
}

type staleProducts struct {
	repository.ProductRepository
}

func (staleProducts) UpdateStock(context.Context, string, decimal.Decimal, int64) error {
	return domain.ErrConcurrentUpdate
}
