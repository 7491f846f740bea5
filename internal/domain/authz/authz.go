// Package authz contiene los predicados de capacidad sobre movimientos e inventario.
// Son funciones puras: no consultan repositorios.
package authz

import (
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

// Actor identidad autenticada que ejecuta una operación.
type Actor struct {
	UserID     string
	Role       string
	LocationID string
}

// IsAdmin solo super_admin tiene alcance global.
func (a Actor) IsAdmin() bool {
	return a.Role == entity.RoleSuperAdmin
}

// HasLocation indica si el actor tiene una ubicación asignada.
func (a Actor) HasLocation() bool {
	return a.LocationID != ""
}

// CanOriginate el actor puede crear movimientos con origen fromLocationID.
func CanOriginate(a Actor, fromLocationID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.HasLocation() && a.LocationID == fromLocationID
}

// CanTransition el actor puede llevar m al estado target.
// approved y received los ejecuta la ubicación receptora; cancelled el origen o el creador.
func CanTransition(a Actor, m *entity.Movement, target string) bool {
	if a.IsAdmin() {
		return true
	}
	switch target {
	case entity.MovementStatusApproved, entity.MovementStatusReceived:
		return a.HasLocation() && a.LocationID == m.ToLocationID
	case entity.MovementStatusCancelled:
		if a.UserID != "" && a.UserID == m.CreatedBy {
			return true
		}
		return a.HasLocation() && a.LocationID == m.FromLocationID
	}
	return false
}

// CanView el actor puede ver m y anotar su bitácora.
func CanView(a Actor, m *entity.Movement) bool {
	if a.IsAdmin() {
		return true
	}
	if !a.HasLocation() {
		return false
	}
	return a.LocationID == m.FromLocationID || a.LocationID == m.ToLocationID
}

// CanAddInitialStock carga inicial: admin o warehouse_manager de esa ubicación.
func CanAddInitialStock(a Actor, locationID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.Role == entity.RoleWarehouseManager && a.HasLocation() && a.LocationID == locationID
}

// CanAdjust ajustes manuales de inventario, solo admin.
func CanAdjust(a Actor) bool {
	return a.IsAdmin()
}

// CanViewLocation el actor puede consultar inventario de locationID.
func CanViewLocation(a Actor, locationID string) bool {
	if a.IsAdmin() {
		return true
	}
	return a.HasLocation() && a.LocationID == locationID
}
