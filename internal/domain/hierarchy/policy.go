// Package hierarchy contiene la única tabla de rutas permitidas entre tipos de ubicación.
//
//	warehouse → distributor → sales_agent → store
//
// El servidor la usa para validar; el cliente la consulta (GET /api/hierarchy) solo como ayuda visual.
package hierarchy

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

var table = map[string][]string{
	entity.LocationTypeWarehouse:   {entity.LocationTypeDistributor},
	entity.LocationTypeDistributor: {entity.LocationTypeSalesAgent},
	entity.LocationTypeSalesAgent:  {entity.LocationTypeStore},
	entity.LocationTypeStore:       {},
}

// order fija el orden de salida de Table().
var order = []string{
	entity.LocationTypeWarehouse,
	entity.LocationTypeDistributor,
	entity.LocationTypeSalesAgent,
	entity.LocationTypeStore,
}

// IsKnownType indica si t es uno de los cuatro tipos de ubicación.
func IsKnownType(t string) bool {
	_, ok := table[t]
	return ok
}

// Types devuelve los tipos en orden de la cadena.
func Types() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// AllowedDestinations devuelve los tipos a los que fromType puede enviar stock.
// Siempre devuelve un slice no nil (store → vacío).
func AllowedDestinations(fromType string) []string {
	allowed := table[fromType]
	out := make([]string, len(allowed))
	copy(out, allowed)
	return out
}

// CanSendTo indica si existe la arista fromType → toType.
func CanSendTo(fromType, toType string) bool {
	for _, t := range table[fromType] {
		if t == toType {
			return true
		}
	}
	return false
}

// Validate devuelve nil si el traslado fromType → toType está permitido,
// o un *domain.HierarchyError con el motivo y los tipos permitidos.
func Validate(fromType, toType string) error {
	if fromType == toType {
		return &domain.HierarchyError{
			FromType:     fromType,
			ToType:       toType,
			Reason:       "el origen y el destino deben ser diferentes",
			AllowedTypes: AllowedDestinations(fromType),
		}
	}
	if !CanSendTo(fromType, toType) {
		return &domain.HierarchyError{
			FromType:     fromType,
			ToType:       toType,
			Reason:       fmt.Sprintf("%s no puede enviar stock a %s", Label(fromType), Label(toType)),
			AllowedTypes: AllowedDestinations(fromType),
		}
	}
	return nil
}

// Table copia completa de la tabla, en orden de la cadena.
func Table() []Edge {
	out := make([]Edge, 0, len(order))
	for _, t := range order {
		out = append(out, Edge{FromType: t, AllowedTypes: AllowedDestinations(t)})
	}
	return out
}

// Edge fila de la tabla de jerarquía.
type Edge struct {
	FromType     string
	AllowedTypes []string
}

var titleCaser = cases.Title(language.Spanish)

// Label etiqueta legible de un tipo: "sales_agent" → "Sales Agent".
func Label(t string) string {
	return titleCaser.String(strings.ReplaceAll(t, "_", " "))
}
