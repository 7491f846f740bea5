package entity

import "time"

// Tipos de entidad usados en la bitácora general.
const (
	EntityTypeMovement  = "movement"
	EntityTypeInventory = "inventory"
)

// ActivityLog registro append-only de la bitácora general de la aplicación.
type ActivityLog struct {
	ID          string
	UserID      string // vacío = acción del sistema
	Action      string
	Description string
	EntityType  string
	EntityID    string
	CreatedAt   time.Time

	UserName  string
	UserEmail string
}
