package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	domaininv "github.com/jhoicas/salon-inventario-api/internal/domain/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// AddStockInput entrada de una entrada de stock. Type vacío = purchase.
type AddStockInput struct {
	ProductID string
	Quantity  decimal.Decimal
	Reason    string
	ActorID   string
	Type      string
}

// DeductStockInput entrada de una salida de stock. Type vacío = usage.
type DeductStockInput struct {
	ProductID string
	Quantity  decimal.Decimal
	Reason    string
	ActorID   string
	BookingID string
	Type      string
}

// StockChange producto tras la operación y el movimiento registrado.
type StockChange struct {
	Product  *entity.Product
	Movement *entity.StockMovement
}

// LedgerUseCase único punto de escritura de CurrentStock.
// Cada operación es un read-modify-write bajo SELECT FOR UPDATE con verificación de versión;
// si la versión cambió entre lectura y escritura se reintenta hasta maxRetries veces.
type LedgerUseCase struct {
	txRunner   TxRunner
	events     EventPublisher
	maxRetries int
	log        zerolog.Logger
	now        func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, events EventPublisher, maxRetries int, log zerolog.Logger) *LedgerUseCase {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &LedgerUseCase{
		txRunner:   txRunner,
		events:     events,
		maxRetries: maxRetries,
		log:        log,
		now:        time.Now,
	}
}

// AddStock suma quantity al producto y registra el movimiento.
func (uc *LedgerUseCase) AddStock(ctx context.Context, in AddStockInput) (*StockChange, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Type == "" {
		in.Type = entity.MovementTypePurchase
	}
	return uc.mutate(ctx, in.ProductID, func(p *entity.Product) (*entity.StockMovement, error) {
		return domaininv.ApplyAdd(p, domaininv.MovementInput{
			Type:        in.Type,
			Quantity:    in.Quantity,
			Reason:      in.Reason,
			PerformedBy: in.ActorID,
			At:          uc.now().UTC(),
		})
	})
}

// DeductStock descuenta quantity del producto y registra el movimiento.
// Con stock insuficiente devuelve *domain.InsufficientStockError sin modificar nada.
func (uc *LedgerUseCase) DeductStock(ctx context.Context, in DeductStockInput) (*StockChange, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Type == "" {
		in.Type = entity.MovementTypeUsage
	}
	return uc.mutate(ctx, in.ProductID, func(p *entity.Product) (*entity.StockMovement, error) {
		return domaininv.ApplyDeduct(p, domaininv.MovementInput{
			Type:        in.Type,
			Quantity:    in.Quantity,
			Reason:      in.Reason,
			PerformedBy: in.ActorID,
			BookingID:   in.BookingID,
			At:          uc.now().UTC(),
		})
	})
}

func (uc *LedgerUseCase) mutate(
	ctx context.Context,
	productID string,
	apply func(*entity.Product) (*entity.StockMovement, error),
) (*StockChange, error) {
	var change *StockChange
	var err error
	for attempt := 1; attempt <= uc.maxRetries; attempt++ {
		change, err = uc.mutateOnce(ctx, productID, apply)
		if !errors.Is(err, domain.ErrConcurrentUpdate) {
			break
		}
		uc.log.Warn().Str("product_id", productID).Int("attempt", attempt).Msg("conflicto de versión, reintentando")
	}
	if err != nil {
		return nil, err
	}

	m := change.Movement
	uc.log.Debug().
		Str("product_id", productID).
		Str("type", m.Type).
		Str("quantity", m.Quantity.String()).
		Str("stock_after", m.StockAfter.String()).
		Str("booking_id", m.BookingID).
		Msg("movimiento de stock registrado")

	if change.Product.IsLowStock() && uc.events != nil {
		if perr := uc.events.StockLow(ctx, change.Product); perr != nil {
			uc.log.Error().Err(perr).Str("product_id", productID).Msg("no se pudo publicar stock bajo")
		}
	}
	return change, nil
}

func (uc *LedgerUseCase) mutateOnce(
	ctx context.Context,
	productID string,
	apply func(*entity.Product) (*entity.StockMovement, error),
) (*StockChange, error) {
	var change *StockChange
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) error {
		p, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		mv, err := apply(p)
		if err != nil {
			return err
		}
		if err := productRepo.UpdateStock(ctx, p.ID, p.CurrentStock, p.Version); err != nil {
			return err
		}
		p.Version++
		mv.ID = uuid.New().String()
		if err := movementRepo.Create(ctx, mv); err != nil {
			return err
		}
		change = &StockChange{Product: p, Movement: mv}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return change, nil
}
