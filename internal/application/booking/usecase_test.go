package booking_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/salon-inventario-api/internal/application/booking"
	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/infrastructure/memory"
)

type deducterMock struct {
	mock.Mock
}

func (m *deducterMock) AutoDeductForBooking(ctx context.Context, bookingID, actorID string) *dto.AutoDeductResult {
	return m.Called(ctx, bookingID, actorID).Get(0).(*dto.AutoDeductResult)
}

func newUseCase(t *testing.T) (*booking.UseCase, *deducterMock) {
	t.Helper()
	store := memory.NewStore()
	deducter := &deducterMock{}
	return booking.NewUseCase(store.Bookings(), memory.NewTxRunner(store), deducter, zerolog.Nop()), deducter
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CustomerName: "Noura",
		Phone:        "+97155555555",
		Services: []dto.BookingItemDTO{
			{ItemID: "svc-facial", Name: "Facial", Price: decimal.NewFromInt(180)},
		},
		TotalAmount: decimal.NewFromInt(180),
		Date:        time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC),
		Time:        "16:30",
	}
}

func TestCreate_Pendiente(t *testing.T) {
	uc, _ := newUseCase(t)

	out, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, out.ID)
	assert.Regexp(t, `^BK\d+$`, out.BookingNumber)
	assert.Equal(t, entity.BookingStatusPending, out.Status)
	require.Len(t, out.Services, 1)
	assert.Equal(t, entity.BookingItemService, out.Services[0].Type)
	assert.Equal(t, 1, out.Services[0].Quantity)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := newUseCase(t)
	cases := map[string]func(*dto.CreateBookingRequest){
		"sin nombre":     func(r *dto.CreateBookingRequest) { r.CustomerName = " " },
		"sin servicios":  func(r *dto.CreateBookingRequest) { r.Services = nil },
		"sin fecha":      func(r *dto.CreateBookingRequest) { r.Date = time.Time{} },
		"tipo inválido":  func(r *dto.CreateBookingRequest) { r.Services[0].Type = "voucher" },
		"item sin id":    func(r *dto.CreateBookingRequest) { r.Services[0].ItemID = "" },
		"total negativo": func(r *dto.CreateBookingRequest) { r.TotalAmount = decimal.NewFromInt(-1) },
	}
	for name, mutate := range cases {
		req := validRequest()
		mutate(&req)
		_, err := uc.Create(context.Background(), req)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, name)
	}
}

func TestUpdateStatus_CompletarDisparaDescuento(t *testing.T) {
	uc, deducter := newUseCase(t)
	b, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	summary := &dto.AutoDeductResult{Success: true, Warnings: []string{"stock bajo"}}
	deducter.On("AutoDeductForBooking", mock.Anything, b.ID, "admin-1").Return(summary).Once()

	out, err := uc.UpdateStatus(context.Background(), b.ID, entity.BookingStatusCompleted, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusPending, out.PreviousStatus)
	assert.Equal(t, entity.BookingStatusCompleted, out.Data.Status)
	assert.Same(t, summary, out.Inventory)
	deducter.AssertExpectations(t)
}

func TestUpdateStatus_CompletedACompletedNoDescuenta(t *testing.T) {
	uc, deducter := newUseCase(t)
	b, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	deducter.On("AutoDeductForBooking", mock.Anything, b.ID, "").Return(&dto.AutoDeductResult{Success: true}).Once()

	_, err = uc.UpdateStatus(context.Background(), b.ID, entity.BookingStatusCompleted, "")
	require.NoError(t, err)
	out, err := uc.UpdateStatus(context.Background(), b.ID, entity.BookingStatusCompleted, "")
	require.NoError(t, err)

	assert.Equal(t, entity.BookingStatusCompleted, out.PreviousStatus)
	assert.Nil(t, out.Inventory)
	deducter.AssertNumberOfCalls(t, "AutoDeductForBooking", 1)
}

func TestUpdateStatus_OtrosEstadosNoDescuentan(t *testing.T) {
	uc, deducter := newUseCase(t)
	b, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	for _, s := range []string{entity.BookingStatusConfirmed, entity.BookingStatusInProgress, entity.BookingStatusCancelled} {
		out, err := uc.UpdateStatus(context.Background(), b.ID, s, "")
		require.NoError(t, err)
		assert.Nil(t, out.Inventory, s)
	}
	deducter.AssertNotCalled(t, "AutoDeductForBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_FalloDelDescuentoNoRevierteEstado(t *testing.T) {
	uc, deducter := newUseCase(t)
	b, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	deducter.On("AutoDeductForBooking", mock.Anything, b.ID, "").
		Return(&dto.AutoDeductResult{Success: false, Error: "db caída"}).Once()

	out, err := uc.UpdateStatus(context.Background(), b.ID, entity.BookingStatusCompleted, "")
	require.NoError(t, err)
	assert.False(t, out.Inventory.Success)

	got, err := uc.Get(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusCompleted, got.Status)
}

func TestUpdateStatus_EstadoInvalido(t *testing.T) {
	uc, deducter := newUseCase(t)
	b, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uc.UpdateStatus(context.Background(), b.ID, "done", "")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	deducter.AssertNotCalled(t, "AutoDeductForBooking", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_ReservaInexistente(t *testing.T) {
	uc, _ := newUseCase(t)
	_, err := uc.UpdateStatus(context.Background(), "nope", entity.BookingStatusCompleted, "")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestStats(t *testing.T) {
	uc, deducter := newUseCase(t)
	deducter.On("AutoDeductForBooking", mock.Anything, mock.Anything, mock.Anything).Return(&dto.AutoDeductResult{Success: true})

	first, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), validRequest())
	require.NoError(t, err)
	_, err = uc.UpdateStatus(context.Background(), first.ID, entity.BookingStatusCompleted, "")
	require.NoError(t, err)

	stats, err := uc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBookings)
	assert.Equal(t, 2, stats.YearlyBookings)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(180)))
}

func TestListYDelete(t *testing.T) {
	uc, _ := newUseCase(t)
	b, err := uc.Create(context.Background(), validRequest())
	require.NoError(t, err)

	list, err := uc.List(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(context.Background(), b.ID))
	_, err = uc.Get(context.Background(), b.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}
