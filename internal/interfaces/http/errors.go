package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Inventario-distribucion/internal/application/dto"
	"github.com/jhoicas/Inventario-distribucion/internal/domain"
)

// errorMapper traduce errores de dominio a respuestas HTTP. Solo los 500 se registran como error.
type errorMapper struct {
	log zerolog.Logger
}

func (m errorMapper) write(c *fiber.Ctx, err error) error {
	status, body := m.translate(err)
	if status == fiber.StatusInternalServerError {
		m.log.Error().Err(err).
			Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error inesperado")
	}
	return c.Status(status).JSON(body)
}

func (m errorMapper) translate(err error) (int, dto.ErrorResponse) {
	var (
		hierErr  *domain.HierarchyError
		stockErr *domain.InsufficientStockError
		transErr *domain.TransitionError
		valErr   *domain.ValidationError
		fiberErr *fiber.Error
	)
	switch {
	case errors.As(err, &hierErr):
		allowed := hierErr.AllowedTypes
		if allowed == nil {
			allowed = []string{}
		}
		body := dto.NewError("HIERARCHY_VIOLATION", hierErr.Error())
		body.AllowedTypes = &allowed
		return fiber.StatusBadRequest, body
	case errors.As(err, &stockErr):
		body := dto.NewError("INSUFFICIENT_STOCK", stockErr.Error())
		body.Details = fiber.Map{
			"location_id": stockErr.LocationID,
			"product_id":  stockErr.ProductID,
			"required":    stockErr.Required,
			"available":   stockErr.Available,
		}
		return fiber.StatusBadRequest, body
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, dto.NewError("INSUFFICIENT_STOCK", err.Error())
	case errors.As(err, &transErr):
		body := dto.NewError("INVALID_TRANSITION", transErr.Error())
		body.Details = fiber.Map{"from": transErr.From, "to": transErr.To}
		return fiber.StatusBadRequest, body
	case errors.As(err, &valErr):
		return fiber.StatusBadRequest, dto.NewError("VALIDATION", valErr.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.NewError("VALIDATION", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.NewError("UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.NewError("FORBIDDEN", "acceso denegado al recurso")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, dto.NewError("NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.NewError("DUPLICATE_REQUEST", err.Error())
	case errors.As(err, &fiberErr):
		return fiberErr.Code, dto.NewError("HTTP_ERROR", fiberErr.Message)
	default:
		return fiber.StatusInternalServerError, dto.NewError("INTERNAL", "error interno del servidor")
	}
}

// badBody respuesta estándar para un JSON que no se puede leer.
func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.NewError("INVALID_BODY", "cuerpo inválido"))
}
