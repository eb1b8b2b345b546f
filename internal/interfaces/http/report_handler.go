package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/application/reports"
)

// ReportHandler maneja los reportes de consumo (JSON y PDF) y el inventario
// valorizado.
type ReportHandler struct {
	consumptionUC *reports.ConsumptionUseCase
	inventoryUC   *reports.InventoryUseCase
	pdfGen        reports.PDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(
	consumptionUC *reports.ConsumptionUseCase,
	inventoryUC *reports.InventoryUseCase,
	pdfGen reports.PDFGenerator,
) *ReportHandler {
	return &ReportHandler{consumptionUC: consumptionUC, inventoryUC: inventoryUC, pdfGen: pdfGen}
}

// parseRange lee start y end (YYYY-MM-DD) de la query. end se extiende al final
// del día para que el rango sea inclusivo.
func parseRange(c *fiber.Ctx) (time.Time, time.Time, bool) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, false
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end = end.Add(24*time.Hour - time.Nanosecond)
	return start, end, true
}

// Consumption godoc
// @Summary      Reporte de consumo por producto
// @Description  Una fila por producto del catálogo (consumo cero incluido), valorizado a precio vigente, con conteos de procedimientos y pacientes distintos.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  true  "Fecha inicial YYYY-MM-DD"
// @Param        end    query  string  true  "Fecha final YYYY-MM-DD"
// @Success      200    {object}  dto.ConsumptionReport
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/consumption [get]
func (h *ReportHandler) Consumption(c *fiber.Ctx) error {
	start, end, ok := parseRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end son requeridos en formato YYYY-MM-DD"})
	}
	out, err := h.consumptionUC.GetConsumptionReport(c.Context(), start, end)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}

// ConsumptionPDF godoc
// @Summary      Reporte de consumo en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start  query  string  true  "Fecha inicial YYYY-MM-DD"
// @Param        end    query  string  true  "Fecha final YYYY-MM-DD"
// @Success      200    {file}  binary
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/reports/consumption/pdf [get]
func (h *ReportHandler) ConsumptionPDF(c *fiber.Ctx) error {
	start, end, ok := parseRange(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end son requeridos en formato YYYY-MM-DD"})
	}
	report, err := h.consumptionUC.GetConsumptionReport(c.Context(), start, end)
	if err != nil {
		return domainError(c, err)
	}
	raw, err := h.pdfGen.GenerateConsumptionPDF(c.Context(), report)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PDF_GENERATION", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-consumo.pdf"`)
	return c.Send(raw)
}

// Inventory godoc
// @Summary      Inventario valorizado
// @Description  Valorización del catálogo actual (stock × precio vigente), servida desde cache cuando hay copia fresca.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryReport
// @Router       /api/reports/inventory [get]
func (h *ReportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.inventoryUC.GetInventoryReport(c.Context())
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(out)
}
