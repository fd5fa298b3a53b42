package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/application/usecase"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/events"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/memory"
)

type reportMock struct {
	mock.Mock
}

func (m *reportMock) GenerateStockReport(stats *dto.InventoryStatsResponse, products []*entity.Product, at time.Time) ([]byte, error) {
	args := m.Called(stats, products, at)
	return args.Get(0).([]byte), args.Error(1)
}

type fixture struct {
	store  *memory.Store
	uc     *usecase.ProductUseCase
	ledger *inventory.LedgerUseCase
	report *reportMock
}

func newFixture() *fixture {
	store := memory.NewStore()
	tx := memory.NewTxRunner(store)
	report := &reportMock{}
	return &fixture{
		store:  store,
		uc:     usecase.NewProductUseCase(store.Products(), store.Movements(), tx, report, 10, zerolog.Nop()),
		ledger: inventory.NewLedgerUseCase(tx, events.Noop{}, 3, zerolog.Nop()),
		report: report,
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func createReq(name, category, stock string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:         name,
		Category:     category,
		Unit:         "ml",
		CurrentStock: dec(stock),
		CostPerUnit:  dec("2"),
	}
}

func TestCreate_StockInicialGeneraMovimiento(t *testing.T) {
	f := newFixture()

	out, err := f.uc.Create(context.Background(), "admin-1", createReq("  Argan Oil ", "Hair Care", "25"))
	require.NoError(t, err)

	assert.Equal(t, "Argan Oil", out.Name)
	assert.Equal(t, entity.GenderBoth, out.Gender)
	assert.True(t, out.IsActive)
	assert.True(t, out.LowStockThreshold.Equal(dec("10")), "umbral por defecto")
	assert.True(t, out.CurrentStock.Equal(dec("25")))

	detail, err := f.uc.Get(context.Background(), out.ID)
	require.NoError(t, err)
	require.Len(t, detail.StockMovements, 1)
	m := detail.StockMovements[0]
	assert.Equal(t, entity.MovementTypePurchase, m.Type)
	assert.True(t, m.StockBefore.IsZero())
	assert.True(t, m.StockAfter.Equal(dec("25")))
	assert.Equal(t, "Initial stock", m.Reason)
	assert.Equal(t, "admin-1", m.PerformedBy)
}

func TestCreate_SinStockNoGeneraMovimiento(t *testing.T) {
	f := newFixture()
	out, err := f.uc.Create(context.Background(), "admin-1", createReq("Cotton Pads", "Disposables", "0"))
	require.NoError(t, err)

	detail, err := f.uc.Get(context.Background(), out.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.StockMovements)
	assert.True(t, detail.IsLowStock)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture()
	bad := []dto.CreateProductRequest{
		createReq("", "Hair Care", "1"),
		createReq("X", "Food", "1"),
		createReq("X", "Hair Care", "-1"),
		{Name: "X", Category: "Hair Care", Unit: "gallon"},
		{Name: "X", Category: "Hair Care", Unit: "ml", Gender: "kids"},
		{Name: "X", Category: "Hair Care", Unit: "ml", LinkedServices: []dto.LinkedServiceDTO{
			{ServiceID: "svc-1"}, {ServiceID: "svc-1"},
		}},
	}
	for i, req := range bad {
		_, err := f.uc.Create(context.Background(), "admin-1", req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "caso %d", i)
	}
}

func TestUpdate_NoTocaStock(t *testing.T) {
	f := newFixture()
	p, err := f.uc.Create(context.Background(), "admin-1", createReq("Argan Oil", "Hair Care", "25"))
	require.NoError(t, err)

	name := "Argan Oil Premium"
	threshold := dec("3")
	out, err := f.uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Name: &name, LowStockThreshold: &threshold})
	require.NoError(t, err)

	assert.Equal(t, name, out.Name)
	assert.True(t, out.LowStockThreshold.Equal(threshold))
	assert.True(t, out.CurrentStock.Equal(dec("25")))

	bad := "Food"
	_, err = f.uc.Update(context.Background(), p.ID, dto.UpdateProductRequest{Category: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Update(context.Background(), "nope", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLinkService_CreaYActualiza(t *testing.T) {
	f := newFixture()
	p, err := f.uc.Create(context.Background(), "admin-1", createReq("Wax", "Waxing & Threading", "100"))
	require.NoError(t, err)
	ctx := context.Background()

	links, updated, err := f.uc.LinkService(ctx, p.ID, dto.LinkServiceRequest{ServiceID: "svc-wax", ServiceName: "Full Leg Wax"})
	require.NoError(t, err)
	assert.False(t, updated)
	require.Len(t, links, 1)
	assert.True(t, links[0].UsagePerSession.Equal(dec("1")), "sin usage consume 1")

	links, updated, err = f.uc.LinkService(ctx, p.ID, dto.LinkServiceRequest{ServiceID: "svc-wax", UsagePerSession: dec("30")})
	require.NoError(t, err)
	assert.True(t, updated)
	require.Len(t, links, 1, "no duplica el vínculo")
	assert.True(t, links[0].UsagePerSession.Equal(dec("30")))
	assert.Equal(t, "Full Leg Wax", links[0].ServiceName, "nombre vacío conserva el previo")

	links, _, err = f.uc.LinkService(ctx, p.ID, dto.LinkServiceRequest{ServiceID: "svc-brow", UsagePerSession: dec("2")})
	require.NoError(t, err)
	assert.Len(t, links, 2)

	links, err = f.uc.UnlinkService(ctx, p.ID, "svc-wax")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "svc-brow", links[0].ServiceID)

	links, err = f.uc.UnlinkService(ctx, p.ID, "svc-none")
	require.NoError(t, err)
	assert.Len(t, links, 1)

	_, _, err = f.uc.LinkService(ctx, p.ID, dto.LinkServiceRequest{ServiceID: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, _, err = f.uc.LinkService(ctx, "nope", dto.LinkServiceRequest{ServiceID: "svc-wax"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestLowStockAlerts_AgrupaPorNivel(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	for name, stock := range map[string]string{"A": "0", "B": "4", "C": "8", "D": "30"} {
		_, err := f.uc.Create(ctx, "admin-1", createReq(name, "Skin Care", stock))
		require.NoError(t, err)
	}
	inactive := false
	req := createReq("E", "Skin Care", "0")
	req.IsActive = &inactive
	_, err := f.uc.Create(ctx, "admin-1", req)
	require.NoError(t, err)

	out, err := f.uc.LowStockAlerts(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, out.Summary.TotalAlerts)
	require.Len(t, out.Data.OutOfStock, 1)
	assert.Equal(t, "A", out.Data.OutOfStock[0].Name)
	require.Len(t, out.Data.Critical, 1)
	assert.Equal(t, "B", out.Data.Critical[0].Name)
	require.Len(t, out.Data.Low, 1)
	assert.Equal(t, "C", out.Data.Low[0].Name)
}

func TestStats(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, "admin-1", createReq("A", "Hair Care", "20"))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, "admin-1", createReq("B", "Hair Care", "0"))
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, "admin-1", createReq("C", "Nail Care", "5.5"))
	require.NoError(t, err)

	stats, err := f.uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalProducts)
	assert.True(t, stats.TotalStockValue.Equal(dec("51")))
	assert.Equal(t, 2, stats.LowStockCount)
	assert.Equal(t, 1, stats.OutOfStockCount)
	assert.Equal(t, dto.CategoryStats{Count: 2, LowStock: 1}, stats.ByCategory["Hair Care"])
	assert.Equal(t, dto.CategoryStats{Count: 1, LowStock: 1}, stats.ByCategory["Nail Care"])
}

func TestHistory_FiltraYLimita(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.uc.Create(ctx, "admin-1", createReq("A", "Hair Care", "50"))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := f.ledger.DeductStock(ctx, inventory.DeductStockInput{ProductID: p.ID, Quantity: dec("1")})
		require.NoError(t, err)
	}
	_, err = f.ledger.DeductStock(ctx, inventory.DeductStockInput{ProductID: p.ID, Quantity: dec("2"), Type: entity.MovementTypeExpired})
	require.NoError(t, err)

	all, err := f.uc.History(ctx, p.ID, "", 0)
	require.NoError(t, err)
	require.Len(t, all.Data, 5)
	assert.Equal(t, entity.MovementTypeExpired, all.Data[0].Type, "más recientes primero")
	assert.True(t, all.Product.CurrentStock.Equal(dec("45")))

	usage, err := f.uc.History(ctx, p.ID, entity.MovementTypeUsage, 2)
	require.NoError(t, err)
	assert.Len(t, usage.Data, 2)

	_, err = f.uc.History(ctx, p.ID, "gift", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.uc.History(ctx, "nope", "", 0)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDelete_BorraHistorial(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	p, err := f.uc.Create(ctx, "admin-1", createReq("A", "Hair Care", "5"))
	require.NoError(t, err)

	require.NoError(t, f.uc.Delete(ctx, p.ID))
	_, err = f.uc.Get(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	movs, err := f.store.Movements().ListChronological(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestList_FiltrosYResumen(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	req := createReq("Beard Oil", "Grooming", "3")
	req.Gender = entity.GenderMen
	_, err := f.uc.Create(ctx, "admin-1", req)
	require.NoError(t, err)
	_, err = f.uc.Create(ctx, "admin-1", createReq("Shampoo", "Hair Care", "40"))
	require.NoError(t, err)

	all, err := f.uc.List(ctx, dto.ProductListFilter{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Summary.TotalProducts)
	assert.Equal(t, 1, all.Summary.LowStockCount)

	men, err := f.uc.List(ctx, dto.ProductListFilter{Gender: entity.GenderMen})
	require.NoError(t, err)
	assert.Len(t, men.Data, 2, "los productos both también aplican")

	low, err := f.uc.List(ctx, dto.ProductListFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low.Data, 1)
	assert.Equal(t, "Beard Oil", low.Data[0].Name)

	found, err := f.uc.List(ctx, dto.ProductListFilter{Search: "sham"})
	require.NoError(t, err)
	require.Len(t, found.Data, 1)
	assert.Equal(t, "Shampoo", found.Data[0].Name)
}

func TestStockReportPDF_SoloActivos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	_, err := f.uc.Create(ctx, "admin-1", createReq("A", "Hair Care", "5"))
	require.NoError(t, err)
	inactive := false
	req := createReq("B", "Hair Care", "5")
	req.IsActive = &inactive
	_, err = f.uc.Create(ctx, "admin-1", req)
	require.NoError(t, err)

	f.report.On("GenerateStockReport",
		mock.MatchedBy(func(s *dto.InventoryStatsResponse) bool { return s.TotalProducts == 1 }),
		mock.MatchedBy(func(ps []*entity.Product) bool { return len(ps) == 1 && ps[0].Name == "A" }),
		mock.Anything,
	).Return([]byte("%PDF-1.4"), nil).Once()

	out, err := f.uc.StockReportPDF(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), out)
	f.report.AssertExpectations(t)
}
