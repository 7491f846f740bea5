// Package lifecycle define la máquina de estados de un movimiento de stock.
//
//	pending ──► approved ──► received
//	   │
//	   └──────► cancelled
//
// received y cancelled son terminales.
package lifecycle

import (
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
)

var successors = map[string][]string{
	entity.MovementStatusPending:   {entity.MovementStatusApproved, entity.MovementStatusCancelled},
	entity.MovementStatusApproved:  {entity.MovementStatusReceived},
	entity.MovementStatusReceived:  {},
	entity.MovementStatusCancelled: {},
}

// IsKnownStatus indica si s es un estado válido.
func IsKnownStatus(s string) bool {
	_, ok := successors[s]
	return ok
}

// IsTerminal indica si desde s no hay transiciones posibles.
func IsTerminal(s string) bool {
	next, ok := successors[s]
	return ok && len(next) == 0
}

// Next devuelve los estados alcanzables desde current.
func Next(current string) []string {
	next := successors[current]
	out := make([]string, len(next))
	copy(out, next)
	return out
}

// CanTransition indica si current → target es una arista de la máquina.
func CanTransition(current, target string) bool {
	for _, s := range successors[current] {
		if s == target {
			return true
		}
	}
	return false
}

// Check devuelve *domain.TransitionError si current → target no es legal.
func Check(current, target string) error {
	if !CanTransition(current, target) {
		return &domain.TransitionError{From: current, To: target}
	}
	return nil
}

// DefaultAction etiqueta de bitácora para el estado destino.
func DefaultAction(target string) string {
	switch target {
	case entity.MovementStatusApproved:
		return entity.MovementActionApproved
	case entity.MovementStatusReceived:
		return entity.MovementActionReceived
	case entity.MovementStatusCancelled:
		return entity.MovementActionCancelled
	}
	return target
}

// DefaultDescription descripción de bitácora cuando el cliente no envía una.
func DefaultDescription(target string) string {
	switch target {
	case entity.MovementStatusApproved:
		return "Movimiento aprobado por el destino"
	case entity.MovementStatusReceived:
		return "Movimiento recibido: stock trasladado al destino"
	case entity.MovementStatusCancelled:
		return "Movimiento cancelado"
	}
	return ""
}
