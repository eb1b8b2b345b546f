package reports

import (
	"context"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
)

// Cache puerto del cache de reportes (implementado sobre redis). Get devuelve
// false en miss o con cache deshabilitado; los fallos de cache nunca impiden
// servir el reporte desde la base.
type Cache interface {
	GetInventoryReport(ctx context.Context) (*dto.InventoryReport, bool)
	SetInventoryReport(ctx context.Context, report *dto.InventoryReport)
}

// PDFGenerator puerto de generación de la versión imprimible del reporte de
// consumo (implementado con Maroto en infraestructura).
type PDFGenerator interface {
	GenerateConsumptionPDF(ctx context.Context, report *dto.ConsumptionReport) ([]byte, error)
}
