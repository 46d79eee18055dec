package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jmcastro/stockpilot-api/internal/application/reports"
)

// ReportHandler expone reportes analíticos y alertas de stock (protegido).
type ReportHandler struct {
	uc *reports.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Usage godoc
// @Summary      Reporte de consumo (salidas últimos 60 días, uso diario, días de stock)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UsageRow
// @Router       /api/reports/usage [get]
func (h *ReportHandler) Usage(c *fiber.Ctx) error {
	out, err := h.uc.Usage(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DeadStock godoc
// @Summary      Reporte de stock muerto (sin salidas en 90 días y con existencias)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DeadStockRow
// @Router       /api/reports/dead-stock [get]
func (h *ReportHandler) DeadStock(c *fiber.Ctx) error {
	out, err := h.uc.DeadStock(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Reporte de stock bajo (stock <= punto de reorden)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockRow
// @Router       /api/reports/low-stock [get]
func (h *ReportHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.uc.LowStock(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AtRisk godoc
// @Summary      Top 5 productos en riesgo de agotarse (menos días de stock)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AtRiskRow
// @Router       /api/reports/top-at-risk [get]
func (h *ReportHandler) AtRisk(c *fiber.Ctx) error {
	out, err := h.uc.AtRisk(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopCashConsuming godoc
// @Summary      Top 5 productos con mayor valor inmovilizado a costo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CashConsumingRow
// @Router       /api/reports/top-cash-consuming [get]
func (h *ReportHandler) TopCashConsuming(c *fiber.Ctx) error {
	out, err := h.uc.TopCashConsuming(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SupplierDelays godoc
// @Summary      Top 5 proveedores con más órdenes recibidas tarde (90 días)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierDelayRow
// @Router       /api/reports/supplier-delays [get]
func (h *ReportHandler) SupplierDelays(c *fiber.Ctx) error {
	out, err := h.uc.SupplierDelays(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// InventoryValue godoc
// @Summary      Valorización del inventario (a costo y a precio de venta)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryValueReport
// @Router       /api/reports/inventory-value [get]
func (h *ReportHandler) InventoryValue(c *fiber.Ctx) error {
	out, err := h.uc.InventoryValue(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GenerateAlerts godoc
// @Summary      Generar alertas de stock bajo (idempotente por producto)
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts/generate [post]
func (h *ReportHandler) GenerateAlerts(c *fiber.Ctx) error {
	out, err := h.uc.GenerateLowStockAlerts(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListAlerts godoc
// @Summary      Listar alertas abiertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *ReportHandler) ListAlerts(c *fiber.Ctx) error {
	out, err := h.uc.ListAlerts(GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// DismissAlert godoc
// @Summary      Descartar una alerta
// @Tags         alerts
// @Security     Bearer
// @Param        id  path  string  true  "ID"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [delete]
func (h *ReportHandler) DismissAlert(c *fiber.Ctx) error {
	if err := h.uc.DismissAlert(GetCompanyID(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
