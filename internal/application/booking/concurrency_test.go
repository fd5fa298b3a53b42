package booking_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-inventario-api/internal/application/booking"
	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	domaininv "github.com/jhoicas/salon-inventario-api/internal/domain/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/events"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/memory"
)

// Varias completions simultáneas de la misma reserva descuentan una sola vez.
func TestUpdateStatus_CompletarEnParaleloDescuentaUnaVez(t *testing.T) {
	const (
		bookings = 20
		racers   = 3
	)
	ctx := context.Background()
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	nop := zerolog.Nop()
	ledger := inventory.NewLedgerUseCase(tx, events.Noop{}, 3, nop)
	deducter := inventory.NewAutoDeductUseCase(store.Bookings(), store.Products(), ledger, events.Noop{}, 4, nop)
	uc := booking.NewUseCase(store.Bookings(), tx, deducter, nop)

	now := time.Now().UTC()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID:                "p-oil",
		Name:              "Massage Oil",
		Category:          "Massage Oils",
		Gender:            entity.GenderBoth,
		Unit:              "ml",
		CurrentStock:      decimal.NewFromInt(100),
		LowStockThreshold: decimal.NewFromInt(10),
		LinkedServices:    []entity.LinkedService{{ServiceID: "svc-massage", UsagePerSession: decimal.NewFromInt(7)}},
		IsActive:          true,
		CreatedAt:         now,
		UpdatedAt:         now,
	}))

	ids := make([]string, 0, bookings)
	for i := 0; i < bookings; i++ {
		req := validRequest()
		req.Services = []dto.BookingItemDTO{{ItemID: "svc-massage", Name: "Swedish Massage", Price: decimal.NewFromInt(300)}}
		b, err := uc.Create(ctx, req)
		require.NoError(t, err)
		ids = append(ids, b.ID)
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		triggered = make(map[string]int, bookings)
	)
	for _, id := range ids {
		for r := 0; r < racers; r++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				out, err := uc.UpdateStatus(ctx, id, entity.BookingStatusCompleted, "admin-1")
				if !assert.NoError(t, err) {
					return
				}
				if out.Inventory != nil {
					mu.Lock()
					triggered[id]++
					mu.Unlock()
				}
			}(id)
		}
	}
	wg.Wait()

	for _, id := range ids {
		assert.Equal(t, 1, triggered[id], "reserva %s", id)
		movs, err := store.Movements().ListByBooking(ctx, id)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(movs), 1, "reserva %s", id)
	}

	p, err := store.Products().GetByID(ctx, "p-oil")
	require.NoError(t, err)
	assert.False(t, p.CurrentStock.IsNegative())
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(2)), "14 sesiones de 7 ml sobre 100 ml")

	chain, err := store.Movements().ListChronological(ctx, "p-oil")
	require.NoError(t, err)
	assert.Len(t, chain, 14)
	assert.True(t, domaininv.VerifyChain(chain, p.CurrentStock))
}
