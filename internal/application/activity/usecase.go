// Package activity expone la bitácora general de la aplicación (solo agregar y leer).
package activity

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/authz"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/entity"
	"github.com/jhoicas/Inventario-distribucion/internal/domain/repository"
)

// Límites de lectura de la bitácora.
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// TrailUseCase registra y consulta la bitácora general.
type TrailUseCase struct {
	repo repository.ActivityLogRepository
}

// NewTrailUseCase construye el caso de uso.
func NewTrailUseCase(repo repository.ActivityLogRepository) *TrailUseCase {
	return &TrailUseCase{repo: repo}
}

// Record agrega una entrada a nombre del actor.
func (uc *TrailUseCase) Record(ctx context.Context, actor authz.Actor, in dto.RecordActivityRequest) (*dto.ActivityLogResponse, error) {
	action := strings.TrimSpace(in.Action)
	if action == "" {
		return nil, domain.NewValidationError("action", "es requerido")
	}
	entry := &entity.ActivityLog{
		ID:          uuid.New().String(),
		UserID:      actor.UserID,
		Action:      action,
		Description: in.Description,
		EntityType:  in.EntityType,
		EntityID:    in.EntityID,
	}
	if err := uc.repo.Record(ctx, entry); err != nil {
		return nil, err
	}
	return toResponse(entry), nil
}

// Recent últimas limit entradas; quien no es admin solo ve las propias.
func (uc *TrailUseCase) Recent(ctx context.Context, actor authz.Actor, limit int) ([]dto.ActivityLogResponse, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	userID := ""
	if !actor.IsAdmin() {
		if actor.UserID == "" {
			return nil, domain.ErrUnauthorized
		}
		userID = actor.UserID
	}
	entries, err := uc.repo.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, *toResponse(e))
	}
	return out, nil
}

func toResponse(e *entity.ActivityLog) *dto.ActivityLogResponse {
	return &dto.ActivityLogResponse{
		ID:          e.ID,
		UserID:      e.UserID,
		UserName:    e.UserName,
		UserEmail:   e.UserEmail,
		Action:      e.Action,
		Description: e.Description,
		EntityType:  e.EntityType,
		EntityID:    e.EntityID,
		CreatedAt:   e.CreatedAt,
	}
}
