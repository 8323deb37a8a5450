package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/BrandoCommando/product-taxonomy/internal/application/dto"
	"github.com/BrandoCommando/product-taxonomy/internal/application/usecase"
)

// CatalogHandler lectura del catálogo (público).
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// GetProperty GET /api/properties/:id
func (h *CatalogHandler) GetProperty(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "el id de una propiedad es un entero"})
	}
	out, err := h.uc.GetProperty(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetCategory GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetCategory(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats GET /api/catalog/stats
func (h *CatalogHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
