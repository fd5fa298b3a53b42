package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	domaininv "github.com/jhoicas/salon-inventario-api/internal/domain/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

// DefaultHistoryLimit movimientos devueltos por History si no se pide otro límite.
const DefaultHistoryLimit = 50

// ProductUseCase catálogo de productos. CurrentStock y el historial solo cambian vía el ledger.
type ProductUseCase struct {
	products         repository.ProductRepository
	movements        repository.StockMovementRepository
	txRunner         inventory.TxRunner
	report           inventory.StockReportGenerator
	defaultThreshold decimal.Decimal
	log              zerolog.Logger
	now              func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	movements repository.StockMovementRepository,
	txRunner inventory.TxRunner,
	report inventory.StockReportGenerator,
	defaultThreshold int,
	log zerolog.Logger,
) *ProductUseCase {
	return &ProductUseCase{
		products:         products,
		movements:        movements,
		txRunner:         txRunner,
		report:           report,
		defaultThreshold: decimal.NewFromInt(int64(defaultThreshold)),
		log:              log,
		now:              time.Now,
	}
}

// Create crea un producto. Un stock inicial > 0 queda registrado como movimiento purchase
// para que el historial arranque en 0 y cuadre con el saldo.
func (uc *ProductUseCase) Create(ctx context.Context, actorID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || !entity.IsValidCategory(in.Category) || !entity.IsValidUnit(in.Unit) {
		return nil, domain.ErrInvalidInput
	}
	if in.Gender == "" {
		in.Gender = entity.GenderBoth
	}
	if !entity.IsValidGender(in.Gender) || in.CurrentStock.IsNegative() || in.CostPerUnit.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	threshold := uc.defaultThreshold
	if in.LowStockThreshold != nil {
		if in.LowStockThreshold.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.LowStockThreshold
	}
	links, err := toLinkedServices(in.LinkedServices)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	p := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		NameAr:            in.NameAr,
		Category:          in.Category,
		Gender:            in.Gender,
		Unit:              in.Unit,
		CurrentStock:      decimal.Zero,
		LowStockThreshold: threshold,
		CostPerUnit:       in.CostPerUnit,
		Supplier:          entity.Supplier{Name: in.Supplier.Name, Contact: in.Supplier.Contact},
		LinkedServices:    links,
		Notes:             in.Notes,
		IsActive:          in.IsActive == nil || *in.IsActive,
		CreatedBy:         actorID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.StockMovementRepository) error {
		var opening *entity.StockMovement
		if in.CurrentStock.IsPositive() {
			mv, err := domaininv.ApplyAdd(p, domaininv.MovementInput{
				Type:        entity.MovementTypePurchase,
				Quantity:    in.CurrentStock,
				Reason:      "Initial stock",
				PerformedBy: actorID,
				At:          now,
			})
			if err != nil {
				return err
			}
			mv.ID = uuid.New().String()
			opening = mv
		}
		if err := productRepo.Create(ctx, p); err != nil {
			return err
		}
		if opening != nil {
			return movementRepo.Create(ctx, opening)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("producto creado")
	return toProductResponse(p), nil
}

// List lista productos con filtros y resumen. No incluye historial.
func (uc *ProductUseCase) List(ctx context.Context, f dto.ProductListFilter) (*dto.ProductListResponse, error) {
	products, err := uc.products.List(ctx, repository.ProductFilter{
		Category:     f.Category,
		Gender:       f.Gender,
		Search:       f.Search,
		IsActive:     f.IsActive,
		LowStockOnly: f.LowStock,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{Data: make([]dto.ProductResponse, 0, len(products))}
	for _, p := range products {
		out.Data = append(out.Data, *toProductResponse(p))
		if p.IsLowStock() {
			out.Summary.LowStockCount++
		}
		if p.IsOutOfStock() {
			out.Summary.OutOfStockCount++
		}
	}
	out.Summary.TotalProducts = len(products)
	return out, nil
}

// Get devuelve el producto con su historial completo en orden cronológico.
func (uc *ProductUseCase) Get(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := uc.movements.ListChronological(ctx, id)
	if err != nil {
		return nil, err
	}
	p.StockMovements = history
	return toProductResponse(p), nil
}

// Update modifica datos de catálogo. No existe forma de tocar CurrentStock por aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository) error {
		p, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if err := applyProductUpdate(p, in); err != nil {
			return err
		}
		p.UpdatedAt = uc.now().UTC()
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(out), nil
}

func applyProductUpdate(p *entity.Product, in dto.UpdateProductRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return domain.ErrInvalidInput
		}
		p.Name = name
	}
	if in.NameAr != nil {
		p.NameAr = *in.NameAr
	}
	if in.Category != nil {
		if !entity.IsValidCategory(*in.Category) {
			return domain.ErrInvalidInput
		}
		p.Category = *in.Category
	}
	if in.Gender != nil {
		if !entity.IsValidGender(*in.Gender) {
			return domain.ErrInvalidInput
		}
		p.Gender = *in.Gender
	}
	if in.Unit != nil {
		if !entity.IsValidUnit(*in.Unit) {
			return domain.ErrInvalidInput
		}
		p.Unit = *in.Unit
	}
	if in.LowStockThreshold != nil {
		if in.LowStockThreshold.IsNegative() {
			return domain.ErrInvalidInput
		}
		p.LowStockThreshold = *in.LowStockThreshold
	}
	if in.CostPerUnit != nil {
		if in.CostPerUnit.IsNegative() {
			return domain.ErrInvalidInput
		}
		p.CostPerUnit = *in.CostPerUnit
	}
	if in.Supplier != nil {
		p.Supplier = entity.Supplier{Name: in.Supplier.Name, Contact: in.Supplier.Contact}
	}
	if in.Notes != nil {
		p.Notes = *in.Notes
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return nil
}

// Delete elimina el producto y su historial (borrado físico).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.products.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	return nil
}

// LinkService vincula el producto a un servicio o actualiza el vínculo existente.
// Si ya estaba vinculado, usage cero y nombre vacío conservan los valores previos; un vínculo nuevo sin usage consume 1.
// updated indica si el vínculo ya existía.
func (uc *ProductUseCase) LinkService(ctx context.Context, productID string, in dto.LinkServiceRequest) (links []dto.LinkedServiceDTO, updated bool, err error) {
	in.ServiceID = strings.TrimSpace(in.ServiceID)
	if in.ServiceID == "" || in.UsagePerSession.IsNegative() {
		return nil, false, domain.ErrInvalidInput
	}
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository) error {
		p, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if link := p.LinkFor(in.ServiceID); link != nil {
			updated = true
			if in.UsagePerSession.IsPositive() {
				link.UsagePerSession = in.UsagePerSession
			}
			if in.ServiceName != "" {
				link.ServiceName = in.ServiceName
			}
		} else {
			usage := in.UsagePerSession
			if !usage.IsPositive() {
				usage = decimal.NewFromInt(1)
			}
			p.LinkedServices = append(p.LinkedServices, entity.LinkedService{
				ServiceID:       in.ServiceID,
				ServiceName:     in.ServiceName,
				UsagePerSession: usage,
			})
		}
		p.UpdatedAt = uc.now().UTC()
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		links = toLinkedServiceDTOs(p.LinkedServices)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return links, updated, nil
}

// UnlinkService quita el vínculo; si no existía no hace nada.
func (uc *ProductUseCase) UnlinkService(ctx context.Context, productID, serviceID string) ([]dto.LinkedServiceDTO, error) {
	var links []dto.LinkedServiceDTO
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, _ repository.StockMovementRepository) error {
		p, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		kept := p.LinkedServices[:0]
		for _, l := range p.LinkedServices {
			if l.ServiceID != serviceID {
				kept = append(kept, l)
			}
		}
		p.LinkedServices = kept
		p.UpdatedAt = uc.now().UTC()
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}
		links = toLinkedServiceDTOs(p.LinkedServices)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// LowStockAlerts agrupa los productos activos en o bajo el umbral por nivel.
func (uc *ProductUseCase) LowStockAlerts(ctx context.Context) (*dto.LowStockAlertsResponse, error) {
	active, err := uc.activeProducts(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.LowStockAlertsResponse{Data: dto.LowStockAlertGroups{
		OutOfStock: []dto.ProductResponse{},
		Critical:   []dto.ProductResponse{},
		Low:        []dto.ProductResponse{},
	}}
	for _, p := range active {
		switch domaininv.StockLevel(p) {
		case domaininv.LevelOutOfStock:
			out.Data.OutOfStock = append(out.Data.OutOfStock, *toProductResponse(p))
		case domaininv.LevelCritical:
			out.Data.Critical = append(out.Data.Critical, *toProductResponse(p))
		case domaininv.LevelLow:
			out.Data.Low = append(out.Data.Low, *toProductResponse(p))
		}
	}
	out.Summary = dto.LowStockSummary{
		OutOfStock:  len(out.Data.OutOfStock),
		Critical:    len(out.Data.Critical),
		Low:         len(out.Data.Low),
		TotalAlerts: len(out.Data.OutOfStock) + len(out.Data.Critical) + len(out.Data.Low),
	}
	return out, nil
}

// Stats resumen del inventario activo.
func (uc *ProductUseCase) Stats(ctx context.Context) (*dto.InventoryStatsResponse, error) {
	active, err := uc.activeProducts(ctx)
	if err != nil {
		return nil, err
	}
	return buildStats(active), nil
}

func buildStats(active []*entity.Product) *dto.InventoryStatsResponse {
	out := &dto.InventoryStatsResponse{
		TotalProducts:   len(active),
		TotalStockValue: domaininv.StockValue(active),
		ByCategory:      make(map[string]dto.CategoryStats),
	}
	for _, p := range active {
		cs := out.ByCategory[p.Category]
		cs.Count++
		if p.IsLowStock() {
			out.LowStockCount++
			cs.LowStock++
		}
		if p.IsOutOfStock() {
			out.OutOfStockCount++
		}
		out.ByCategory[p.Category] = cs
	}
	return out
}

// History movimientos del producto, más recientes primero. limit <= 0 usa DefaultHistoryLimit.
func (uc *ProductUseCase) History(ctx context.Context, productID, movementType string, limit int) (*dto.StockHistoryResponse, error) {
	if movementType != "" && !entity.IsValidMovementType(movementType) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	p, err := uc.mustGet(ctx, productID)
	if err != nil {
		return nil, err
	}
	movements, err := uc.movements.ListByProduct(ctx, productID, movementType, limit)
	if err != nil {
		return nil, err
	}
	out := &dto.StockHistoryResponse{Product: ToStockLevel(p), Data: make([]dto.StockMovementDTO, 0, len(movements))}
	for _, m := range movements {
		out.Data = append(out.Data, toMovementDTO(*m))
	}
	return out, nil
}

// StockReportPDF genera el reporte de stock de los productos activos.
func (uc *ProductUseCase) StockReportPDF(ctx context.Context) ([]byte, error) {
	active, err := uc.activeProducts(ctx)
	if err != nil {
		return nil, err
	}
	return uc.report.GenerateStockReport(buildStats(active), active, uc.now())
}

func (uc *ProductUseCase) activeProducts(ctx context.Context) ([]*entity.Product, error) {
	active := true
	return uc.products.List(ctx, repository.ProductFilter{IsActive: &active})
}

func (uc *ProductUseCase) mustGet(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}
