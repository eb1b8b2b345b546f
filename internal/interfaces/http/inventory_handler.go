package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/inventory"
	"github.com/clinivac/npwt-inventario/internal/application/reports"
)

// InventoryHandler maneja ingreso masivo de stock, historial de kardex,
// productos bajo mínimo y la reconciliación bajo demanda.
type InventoryHandler struct {
	invUC    *inventory.UseCase
	reportUC *reports.InventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(invUC *inventory.UseCase, reportUC *reports.InventoryUseCase) *InventoryHandler {
	return &InventoryHandler{invUC: invUC, reportUC: reportUC}
}

// BulkStockEntry godoc
// @Summary      Ingreso masivo de stock
// @Description  Aplica cada producto en su propia transacción; el batch es best-effort y reporta applied/skipped/failed.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockEntryRequest  true  "Renglones del ingreso"
// @Success      200   {object}  dto.StockEntryResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/entries [post]
func (h *InventoryHandler) BulkStockEntry(c *fiber.Ctx) error {
	var in dto.StockEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.invUC.BulkStockEntry(c.Context(), actorFrom(c), in)
	if err != nil {
		return domainError(c, err)
	}
	// 200 aunque haya fallos por producto: el detalle va en el resultado.
	return c.JSON(out)
}

// MovementHistory godoc
// @Summary      Historial de movimientos de un producto
// @Description  Hasta 50 movimientos recientes con notas de procedimiento enriquecidas con el nombre actual del paciente.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.MovementHistoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{productId} [get]
func (h *InventoryHandler) MovementHistory(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	out, err := h.invUC.GetMovementHistory(c.Context(), productID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en o bajo stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.InventoryRow
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	rows, err := h.reportUC.ListBelowMinimum(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(rows)
}

// Reconcile godoc
// @Summary      Reconciliar stock contra el kardex
// @Description  Recalcula el stock desde la suma firmada del kardex y lo contrasta con el campo denormalizado. No corrige.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  inventory.Reconciliation
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/reconcile/{productId} [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	productID := c.Params("productId")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "productId es requerido"})
	}
	out, err := h.invUC.ReconcileStock(c.Context(), productID)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
