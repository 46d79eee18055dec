package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastro/stockpilot-api/internal/application/cyclecount"
	"github.com/jmcastro/stockpilot-api/internal/application/dto"
)

// CycleCountHandler maneja conteos cíclicos de inventario (protegido).
type CycleCountHandler struct {
	uc *cyclecount.UseCase
}

// NewCycleCountHandler construye el handler.
func NewCycleCountHandler(uc *cyclecount.UseCase) *CycleCountHandler {
	return &CycleCountHandler{uc: uc}
}

// Create godoc
// @Summary      Crear conteo cíclico (snapshot de la ubicación)
// @Tags         cycle-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCycleCountRequest  true  "Conteo"
// @Success      201   {object}  dto.CycleCountResponse
// @Router       /api/cycle-counts [post]
func (h *CycleCountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCycleCountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener conteo cíclico
// @Tags         cycle-counts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.CycleCountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id} [get]
func (h *CycleCountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(GetCompanyID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar conteos cíclicos
// @Tags         cycle-counts
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {array}  dto.CycleCountResponse
// @Router       /api/cycle-counts [get]
func (h *CycleCountHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(GetCompanyID(c), c.Query("status"), pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitItems godoc
// @Summary      Registrar cantidades contadas (parcial o total)
// @Tags         cycle-counts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID"
// @Param        body  body  dto.SubmitCountItemsRequest  true  "Cantidades contadas"
// @Success      200   {object}  dto.CycleCountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id}/items [patch]
func (h *CycleCountHandler) SubmitItems(c *fiber.Ctx) error {
	var in dto.SubmitCountItemsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.SubmitItems(GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Complete godoc
// @Summary      Cerrar conteo (genera ajustes de corrección por varianza)
// @Tags         cycle-counts
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID"
// @Success      200  {object}  dto.CycleCountResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id}/complete [patch]
func (h *CycleCountHandler) Complete(c *fiber.Ctx) error {
	out, err := h.uc.Complete(c.Context(), GetCompanyID(c), GetUserID(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar conteo (solo en estado planned)
// @Tags         cycle-counts
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      204  "sin contenido"
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cycle-counts/{id} [delete]
func (h *CycleCountHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
