package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/BrandoCommando/product-taxonomy/internal/application/dto"
	"github.com/BrandoCommando/product-taxonomy/internal/application/usecase"
)

// SeedHandler siembra y verificación del catálogo (solo admin).
type SeedHandler struct {
	uc *usecase.SeedUseCase
}

// NewSeedHandler construye el handler.
func NewSeedHandler(uc *usecase.SeedUseCase) *SeedHandler {
	return &SeedHandler{uc: uc}
}

// Seed POST /api/seed. Cuerpo opcional {"reset": bool, "verify": bool}.
func (h *SeedHandler) Seed(c *fiber.Ctx) error {
	var in dto.SeedRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	out, err := h.uc.Run(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Verify POST /api/seed/verify. Responde 200 aunque haya diferencias; ver "ok".
func (h *SeedHandler) Verify(c *fiber.Ctx) error {
	out, err := h.uc.Verify(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
