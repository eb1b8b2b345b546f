package inventory

import (
	"strings"

	"github.com/clinivac/npwt-inventario/internal/application/dto"
	"github.com/clinivac/npwt-inventario/internal/domain/authz"
	"github.com/clinivac/npwt-inventario/internal/domain/entity"
	domaininv "github.com/clinivac/npwt-inventario/internal/domain/inventory"
	"github.com/clinivac/npwt-inventario/internal/domain/repository"
	"github.com/clinivac/npwt-inventario/pkg/logger"
)

// UseCase agrupa los mutadores de stock y la vista de historial de kardex.
// Los cuatro mutadores (crear con stock inicial, edición manual, ingreso
// masivo, consumo de procedimiento) son las ÚNICAS rutas legítimas para
// cambiar product.stock, y cada una escribe el movimiento de kardex en la
// misma transacción que el stock.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	procRepo    repository.ProcedureRepository
	patientRepo repository.PatientRepository
	authz       authz.Checker
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	procRepo repository.ProcedureRepository,
	patientRepo repository.PatientRepository,
	checker authz.Checker,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		movRepo:     movRepo,
		procRepo:    procRepo,
		patientRepo: patientRepo,
		authz:       checker,
		log:         log,
	}
}

// NormalizeCode recorta espacios y pasa a mayúsculas el código de producto.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Code:       p.Code,
		Category:   p.Category,
		Stock:      p.Stock,
		MinStock:   p.MinStock,
		UnitPrice:  p.UnitPrice,
		Lot:        p.Lot,
		StockValue: p.StockValue(),
		Status:     domaininv.StockStatus(p),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
