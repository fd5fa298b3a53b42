package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, name_ar, category, gender, unit, current_stock, low_stock_threshold,
	cost_per_unit, supplier, linked_services, notes, is_active, created_by, version, created_at, updated_at`

type supplierJSON struct {
	Name    string `json:"name,omitempty"`
	Contact string `json:"contact,omitempty"`
}

type linkedServiceJSON struct {
	ServiceID       string          `json:"serviceId"`
	ServiceName     string          `json:"serviceName,omitempty"`
	UsagePerSession decimal.Decimal `json:"usagePerSession"`
}

func encodeLinks(links []entity.LinkedService) ([]byte, error) {
	out := make([]linkedServiceJSON, 0, len(links))
	for _, l := range links {
		out = append(out, linkedServiceJSON{ServiceID: l.ServiceID, ServiceName: l.ServiceName, UsagePerSession: l.UsagePerSession})
	}
	return toJSONB(out)
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var supplierRaw, linksRaw []byte
	if err := row.Scan(
		&p.ID, &p.Name, &p.NameAr, &p.Category, &p.Gender, &p.Unit, &p.CurrentStock, &p.LowStockThreshold,
		&p.CostPerUnit, &supplierRaw, &linksRaw, &p.Notes, &p.IsActive, &p.CreatedBy, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var sup supplierJSON
	if err := fromJSONB(supplierRaw, &sup); err != nil {
		return nil, err
	}
	p.Supplier = entity.Supplier{Name: sup.Name, Contact: sup.Contact}
	var links []linkedServiceJSON
	if err := fromJSONB(linksRaw, &links); err != nil {
		return nil, err
	}
	for _, l := range links {
		p.LinkedServices = append(p.LinkedServices, entity.LinkedService{
			ServiceID: l.ServiceID, ServiceName: l.ServiceName, UsagePerSession: l.UsagePerSession,
		})
	}
	return &p, nil
}

// Create persiste un nuevo producto con su saldo inicial.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	supplier, err := toJSONB(supplierJSON{Name: p.Supplier.Name, Contact: p.Supplier.Contact})
	if err != nil {
		return err
	}
	links, err := encodeLinks(p.LinkedServices)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err = r.q.Exec(ctx, query,
		p.ID, p.Name, p.NameAr, p.Category, p.Gender, p.Unit, p.CurrentStock, p.LowStockThreshold,
		p.CostPerUnit, supplier, links, p.Notes, p.IsActive, p.CreatedBy, p.Version, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) get(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza catálogo y servicios vinculados. No toca current_stock ni version (solo vía ledger).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	supplier, err := toJSONB(supplierJSON{Name: p.Supplier.Name, Contact: p.Supplier.Contact})
	if err != nil {
		return err
	}
	links, err := encodeLinks(p.LinkedServices)
	if err != nil {
		return err
	}
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET name = $2, name_ar = $3, category = $4, gender = $5, unit = $6,
			low_stock_threshold = $7, cost_per_unit = $8, supplier = $9, linked_services = $10,
			notes = $11, is_active = $12, updated_at = now()
		WHERE id = $1`,
		p.ID, p.Name, p.NameAr, p.Category, p.Gender, p.Unit,
		p.LowStockThreshold, p.CostPerUnit, supplier, links, p.Notes, p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateStock escribe el saldo solo si la versión no cambió desde la lectura.
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal, expectedVersion int64) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET current_stock = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3`,
		id, stock, expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConcurrentUpdate
	}
	return nil
}

// List lista productos filtrados, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var where []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Gender != "" {
		add("(gender = $%d OR gender = 'both')", f.Gender)
	}
	if f.IsActive != nil {
		add("is_active = $%d", *f.IsActive)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		args = append(args, "%"+s+"%")
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR name_ar ILIKE $%d)", len(args), len(args)))
	}
	if f.LowStockOnly {
		where = append(where, "current_stock <= low_stock_threshold")
	}
	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, args...)
}

// ListActiveByService productos activos cuyo linked_services contiene el servicio, en orden de creación.
func (r *ProductRepo) ListActiveByService(ctx context.Context, serviceID string) ([]*entity.Product, error) {
	filter, err := toJSONB([]map[string]string{{"serviceId": serviceID}})
	if err != nil {
		return nil, err
	}
	return r.list(ctx, `
		SELECT `+productColumns+` FROM products
		WHERE is_active AND linked_services @> $1::jsonb
		ORDER BY created_at, id`, filter)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Delete borra el producto; el historial cae por ON DELETE CASCADE.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
