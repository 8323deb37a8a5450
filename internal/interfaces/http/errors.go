package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/BrandoCommando/product-taxonomy/internal/application/dto"
	"github.com/BrandoCommando/product-taxonomy/internal/domain"
)

// writeError traduce errores de dominio a respuestas HTTP. Los errores de definición
// incluyen tipo, id y campo para ubicar la definición que falló.
func writeError(c *fiber.Ctx, err error) error {
	var defErr *domain.DefinitionError
	if errors.As(err, &defErr) {
		status := fiber.StatusUnprocessableEntity
		if errors.Is(err, domain.ErrDuplicateIdentifier) {
			status = fiber.StatusConflict
		}
		return c.Status(status).JSON(dto.DefinitionErrorResponse{
			Code:    definitionCode(err),
			Message: err.Error(),
			Kind:    defErr.Kind,
			ID:      defErr.ID,
			Field:   defErr.Field,
		})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "SEED_IN_PROGRESS", Message: err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		return c.Status(fiber.StatusGatewayTimeout).JSON(dto.ErrorResponse{Code: "TIMEOUT", Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func definitionCode(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingIdentifier):
		return "MISSING_IDENTIFIER"
	case errors.Is(err, domain.ErrMissingField):
		return "MISSING_FIELD"
	case errors.Is(err, domain.ErrTypeMismatch):
		return "TYPE_MISMATCH"
	case errors.Is(err, domain.ErrUnresolvedParent):
		return "UNRESOLVED_PARENT"
	case errors.Is(err, domain.ErrDuplicateIdentifier):
		return "DUPLICATE_IDENTIFIER"
	}
	return "INVALID_DEFINITION"
}
