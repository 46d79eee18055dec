package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jmcastro/stockpilot-api/internal/application/dto"
	"github.com/jmcastro/stockpilot-api/internal/application/ledger"
	"github.com/jmcastro/stockpilot-api/internal/application/usecase"
	"github.com/jmcastro/stockpilot-api/internal/domain/entity"
	"github.com/jmcastro/stockpilot-api/internal/domain/repository"
)

// InventoryHandler maneja el ledger de movimientos y la proyección por
// ubicación (protegido).
type InventoryHandler struct {
	ledger    *ledger.Service
	inventory *usecase.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(svc *ledger.Service, inventory *usecase.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: svc, inventory: inventory}
}

// CreateMovement godoc
// @Summary      Registrar movimiento manual (in/out)
// @Tags         stock-movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/stock-movements [post]
func (h *InventoryHandler) CreateMovement(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.ledger.RegisterMovement(c.Context(), GetCompanyID(c), GetUserID(c), ledger.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reference: in.Reference,
		Notes:     in.Notes,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Historial del ledger (más recientes primero)
// @Tags         stock-movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        type        query  string  false  "in|out|adjustment|transfer"
// @Param        from        query  string  false  "RFC3339"
// @Param        to          query  string  false  "RFC3339"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/stock-movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	page := pageFromQuery(c)
	f := repository.MovementFilter{
		ProductID: c.Query("product_id"),
		Type:      c.Query("type"),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		f.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		f.To = &t
	}
	movs, err := h.ledger.List(GetCompanyID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, toMovementResponse(m))
	}
	return c.JSON(out)
}

// UpsertInventory godoc
// @Summary      Fijar cantidad de un producto en una ubicación (asignación inicial)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpsertInventoryRequest  true  "Fila de inventario"
// @Success      200   {object}  dto.InventoryRowResponse
// @Router       /api/inventory [put]
func (h *InventoryHandler) UpsertInventory(c *fiber.Ctx) error {
	var in dto.UpsertInventoryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.inventory.Upsert(GetCompanyID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListInventory godoc
// @Summary      Proyección de inventario por ubicación
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        location_id  query  string  false  "Filtrar por ubicación"
// @Success      200  {array}  dto.InventoryRowResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) ListInventory(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if locationID := c.Query("location_id"); locationID != "" {
		out, err := h.inventory.ListByLocation(companyID, locationID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(out)
	}
	out, err := h.inventory.List(companyID, pageFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func toMovementResponse(m *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reference: m.Reference,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		CreatedBy: m.CreatedBy,
	}
}
