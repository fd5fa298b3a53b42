package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/salon-inventario-api/internal/domain"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	"github.com/jhoicas/salon-inventario-api/internal/domain/repository"
)

var _ repository.AdminRepository = (*AdminRepo)(nil)

// AdminRepo implementación del puerto AdminRepository sobre PostgreSQL.
type AdminRepo struct {
	q Querier
}

// NewAdminRepository construye el adaptador.
func NewAdminRepository(q Querier) *AdminRepo {
	return &AdminRepo{q: q}
}

// Create persiste un administrador. Email duplicado -> ErrDuplicate.
func (r *AdminRepo) Create(ctx context.Context, a *entity.Admin) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO admins (id, name, email, password_hash, role, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.Name, strings.ToLower(a.Email), a.PasswordHash, a.Role, a.IsActive, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

// FindByEmail busca por email sin distinguir mayúsculas.
func (r *AdminRepo) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	var a entity.Admin
	err := r.q.QueryRow(ctx, `
		SELECT id, name, email, password_hash, role, is_active, created_at, updated_at
		FROM admins WHERE email = $1`, strings.ToLower(email),
	).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.Role, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin by email: %w", err)
	}
	return &a, nil
}
