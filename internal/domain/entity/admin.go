package entity

import "time"

// Roles válidos para Admin.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super-admin"
)

// Admin operador del panel; su ID queda como PerformedBy en los movimientos.
type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash
	Role         string // admin, super-admin
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
