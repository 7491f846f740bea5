package entity

import "time"

// Tipos de ubicación en la cadena de distribución.
const (
	LocationTypeWarehouse   = "warehouse"
	LocationTypeDistributor = "distributor"
	LocationTypeSalesAgent  = "sales_agent"
	LocationTypeStore       = "store"
)

// Location representa un punto de la cadena (bodega, distribuidor, agente o tienda).
// Type no cambia después de crearse: la política de jerarquía depende de él.
type Location struct {
	ID        string
	Name      string
	Type      string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
