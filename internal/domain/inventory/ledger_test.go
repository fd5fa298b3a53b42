package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func product(stock, threshold string) *entity.Product {
	return &entity.Product{
		ID:                "p-1",
		Name:              "Argan Oil",
		Unit:              "ml",
		CurrentStock:      dec(stock),
		LowStockThreshold: dec(threshold),
	}
}

func TestApplyAdd_SumaYRegistraMovimiento(t *testing.T) {
	p := product("10", "5")
	at := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

	mv, err := inventory.ApplyAdd(p, inventory.MovementInput{
		Type: entity.MovementTypePurchase, Quantity: dec("2.5"), Reason: "Manual stock addition", PerformedBy: "admin-1", At: at,
	})
	require.NoError(t, err)

	assert.True(t, p.CurrentStock.Equal(dec("12.5")))
	assert.True(t, mv.Quantity.Equal(dec("2.5")))
	assert.True(t, mv.StockBefore.Equal(dec("10")))
	assert.True(t, mv.StockAfter.Equal(dec("12.5")))
	assert.Equal(t, "p-1", mv.ProductID)
	assert.Equal(t, "admin-1", mv.PerformedBy)
	assert.Equal(t, at, mv.CreatedAt)
}

func TestApplyDeduct_CantidadNegativaEnMovimiento(t *testing.T) {
	p := product("10", "5")

	mv, err := inventory.ApplyDeduct(p, inventory.MovementInput{
		Type: entity.MovementTypeUsage, Quantity: dec("6"), BookingID: "b-1",
	})
	require.NoError(t, err)

	assert.True(t, p.CurrentStock.Equal(dec("4")))
	assert.True(t, mv.Quantity.Equal(dec("-6")))
	assert.True(t, mv.StockBefore.Add(mv.Quantity).Equal(mv.StockAfter))
	assert.Equal(t, "b-1", mv.BookingID)
}

func TestApplyDeduct_ExactoDejaCero(t *testing.T) {
	p := product("3", "5")
	_, err := inventory.ApplyDeduct(p, inventory.MovementInput{Type: entity.MovementTypeUsage, Quantity: dec("3")})
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.IsZero())
}

func TestApplyDeduct_StockInsuficiente(t *testing.T) {
	p := product("3", "5")

	mv, err := inventory.ApplyDeduct(p, inventory.MovementInput{Type: entity.MovementTypeUsage, Quantity: dec("5")})
	require.Error(t, err)
	assert.Nil(t, mv)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "Argan Oil", insufficient.ProductName)
	assert.True(t, insufficient.Available.Equal(dec("3")))
	assert.True(t, insufficient.Required.Equal(dec("5")))
	assert.True(t, p.CurrentStock.Equal(dec("3")), "el producto no debe cambiar")
}

func TestApply_CantidadNoPositiva(t *testing.T) {
	for _, q := range []string{"0", "-1"} {
		p := product("10", "5")
		_, err := inventory.ApplyAdd(p, inventory.MovementInput{Type: entity.MovementTypePurchase, Quantity: dec(q)})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "add %s", q)
		_, err = inventory.ApplyDeduct(p, inventory.MovementInput{Type: entity.MovementTypeUsage, Quantity: dec(q)})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "deduct %s", q)
		assert.True(t, p.CurrentStock.Equal(dec("10")))
	}
}

func TestApply_TipoInvalido(t *testing.T) {
	p := product("10", "5")
	_, err := inventory.ApplyAdd(p, inventory.MovementInput{Type: "gift", Quantity: dec("1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerifyChain(t *testing.T) {
	p := product("0", "5")
	var chain []entity.StockMovement
	steps := []struct {
		add bool
		qty string
	}{{true, "10"}, {false, "4"}, {true, "1.5"}, {false, "7.5"}}
	for _, s := range steps {
		var mv *entity.StockMovement
		var err error
		if s.add {
			mv, err = inventory.ApplyAdd(p, inventory.MovementInput{Type: entity.MovementTypePurchase, Quantity: dec(s.qty)})
		} else {
			mv, err = inventory.ApplyDeduct(p, inventory.MovementInput{Type: entity.MovementTypeUsage, Quantity: dec(s.qty)})
		}
		require.NoError(t, err)
		chain = append(chain, *mv)
	}

	assert.True(t, inventory.VerifyChain(chain, p.CurrentStock))
	assert.False(t, inventory.VerifyChain(chain, dec("1")), "saldo distinto al último stockAfter")

	broken := append([]entity.StockMovement(nil), chain...)
	broken[2].StockBefore = dec("99")
	assert.False(t, inventory.VerifyChain(broken, p.CurrentStock))

	assert.True(t, inventory.VerifyChain(nil, decimal.Zero))
	assert.False(t, inventory.VerifyChain(nil, dec("3")))
}
