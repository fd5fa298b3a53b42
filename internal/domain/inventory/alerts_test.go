package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/inventory"
)

func TestStockLevel(t *testing.T) {
	cases := []struct {
		stock, threshold string
		want             string
	}{
		{"0", "10", inventory.LevelOutOfStock},
		{"3", "10", inventory.LevelCritical},
		{"5", "10", inventory.LevelCritical},
		{"5.5", "10", inventory.LevelLow},
		{"10", "10", inventory.LevelLow},
		{"11", "10", inventory.LevelOK},
		{"0", "0", inventory.LevelOutOfStock},
	}
	for _, c := range cases {
		got := inventory.StockLevel(product(c.stock, c.threshold))
		assert.Equal(t, c.want, got, "stock=%s umbral=%s", c.stock, c.threshold)
	}
}

func TestStockValue(t *testing.T) {
	products := []*entity.Product{
		{CurrentStock: dec("10"), CostPerUnit: dec("2.5")},
		{CurrentStock: dec("3"), CostPerUnit: dec("0.333")},
		{CurrentStock: dec("0"), CostPerUnit: dec("100")},
	}
	assert.Equal(t, "26", inventory.StockValue(products).String())
	assert.True(t, inventory.StockValue(nil).IsZero())
}
