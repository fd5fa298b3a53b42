package repository

import (
	"context"

	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
)

// AdminRepository define el puerto de persistencia para Admin.
type AdminRepository interface {
	Create(ctx context.Context, admin *entity.Admin) error
	FindByEmail(ctx context.Context, email string) (*entity.Admin, error)
}
