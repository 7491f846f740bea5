// Package memory implementa los repositorios en memoria. Se usa con STORAGE_DRIVER=memory
// para ejecuciones locales y como doble de pruebas de los casos de uso y handlers.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

type inventoryKey struct {
	locationID string
	productID  string
}

// state datos del almacén. Solo se accede con Store.mu tomado.
type state struct {
	locations  map[string]entity.Location
	products   map[string]entity.Product
	users      map[string]entity.User
	inventory  map[inventoryKey]entity.InventoryRecord
	movements  map[string]entity.Movement
	movOrder   []string
	items      map[string][]entity.MovementItem
	activities map[string][]entity.MovementActivity
	logs       []entity.ActivityLog
}

func newState() *state {
	return &state{
		locations:  make(map[string]entity.Location),
		products:   make(map[string]entity.Product),
		users:      make(map[string]entity.User),
		inventory:  make(map[inventoryKey]entity.InventoryRecord),
		movements:  make(map[string]entity.Movement),
		items:      make(map[string][]entity.MovementItem),
		activities: make(map[string][]entity.MovementActivity),
	}
}

// clone copia profunda para poder deshacer una transacción fallida.
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.inventory {
		c.inventory[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	c.movOrder = append([]string(nil), s.movOrder...)
	for k, v := range s.items {
		c.items[k] = append([]entity.MovementItem(nil), v...)
	}
	for k, v := range s.activities {
		c.activities[k] = append([]entity.MovementActivity(nil), v...)
	}
	c.logs = append([]entity.ActivityLog(nil), s.logs...)
	return c
}

// Store almacén compartido por todos los repositorios en memoria.
// Las transacciones se serializan con mu: equivale a bloquear todas las filas tocadas.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState(), now: time.Now}
}

// guard toma el lock salvo que la llamada ya esté dentro de Run.
func (s *Store) guard(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

// Locations repositorio de ubicaciones fuera de transacción.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Users repositorio de usuarios fuera de transacción.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Inventory repositorio de inventario fuera de transacción.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

// Movements repositorio de movimientos fuera de transacción.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// ActivityLog repositorio de bitácora fuera de transacción.
func (s *Store) ActivityLog() *ActivityLogRepo { return &ActivityLogRepo{s: s} }

// Analytics agregados de solo lectura para el tablero.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func sortRecords(out []*entity.InventoryRecord) {
	sort.Slice(out, func(i, j int) bool {
		if out[i].LocationName != out[j].LocationName {
			return out[i].LocationName < out[j].LocationName
		}
		return out[i].ProductName < out[j].ProductName
	})
}
