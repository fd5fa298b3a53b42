package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/memory"
)

func seed(t *testing.T, store *memory.Store) {
	t.Helper()
	require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
		ID: "p-1", Name: "Toner", Unit: "ml", CurrentStock: decimal.NewFromInt(10), IsActive: true,
	}))
}

func TestTxRunner_RollbackRestauraEstado(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	tx := memory.NewTxRunner(store)
	boom := errors.New("boom")

	err := tx.Run(context.Background(), func(products repository.ProductRepository, movements repository.StockMovementRepository) error {
		require.NoError(t, products.UpdateStock(context.Background(), "p-1", decimal.NewFromInt(3), 0))
		require.NoError(t, movements.Create(context.Background(), &entity.StockMovement{ID: "m-1", ProductID: "p-1"}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	p, err := store.Products().GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(0), p.Version)
	movs, err := store.Movements().ListChronological(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestProductRepository_UpdateStockVerificaVersion(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	repo := store.Products()
	ctx := context.Background()

	require.NoError(t, repo.UpdateStock(ctx, "p-1", decimal.NewFromInt(7), 0))
	assert.ErrorIs(t, repo.UpdateStock(ctx, "p-1", decimal.NewFromInt(5), 0), domain.ErrConcurrentUpdate)

	p, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(7)))
	assert.Equal(t, int64(1), p.Version)
}

func TestProductRepository_UpdateConservaStock(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	repo := store.Products()
	ctx := context.Background()

	p, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	p.Name = "Rose Toner"
	p.CurrentStock = decimal.NewFromInt(999)
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Rose Toner", got.Name)
	assert.True(t, got.CurrentStock.Equal(decimal.NewFromInt(10)))
}

func TestProductRepository_CopiasIndependientes(t *testing.T) {
	store := memory.NewStore()
	seed(t, store)
	p, err := store.Products().GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	p.CurrentStock = decimal.Zero

	again, err := store.Products().GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.True(t, again.CurrentStock.Equal(decimal.NewFromInt(10)))

	missing, err := store.Products().GetByID(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
