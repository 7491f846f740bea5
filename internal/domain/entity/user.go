package entity

import "time"

// Roles válidos para User. Solo RoleSuperAdmin tiene alcance global.
const (
	RoleSuperAdmin       = "super_admin"
	RoleWarehouseManager = "warehouse_manager"
	RoleDistributor      = "distributor"
	RoleSalesAgent       = "sales_agent"
	RoleStoreManager     = "store_manager"
)

// User representa un usuario del sistema, opcionalmente asignado a una ubicación.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	LocationID   string // vacío = sin ubicación asignada
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
