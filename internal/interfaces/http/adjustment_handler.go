package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastro/stockpilot-api/internal/application/adjustments"
	"github.com/jmcastro/stockpilot-api/internal/application/dto"
)

// AdjustmentHandler maneja ajustes manuales de stock (protegido).
type AdjustmentHandler struct {
	uc *adjustments.UseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *adjustments.UseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar ajuste de stock (merma, daño, corrección, etc.)
// @Tags         stock-adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "Ajuste"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ajustes de stock
// @Tags         stock-adjustments
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AdjustmentResponse
// @Router       /api/stock-adjustments [get]
func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
