package inventory

import (
	"context"

	"github.com/clinivac/npwt-inventario/internal/domain"
)

// Reconciliation resultado de contrastar el stock denormalizado contra la
// suma firmada del kardex de un producto.
type Reconciliation struct {
	ProductID   string `json:"product_id"`
	CachedStock int64  `json:"cached_stock"`
	LedgerStock int64  `json:"ledger_stock"`
	Consistent  bool   `json:"consistent"`
}

// ReconcileStock recomputa el stock de un producto desde el kardex y lo
// compara con el campo denormalizado. No corrige nada: es el chequeo bajo
// demanda que detecta inconsistencias dejadas por fallos parciales.
func (uc *UseCase) ReconcileStock(ctx context.Context, productID string) (*Reconciliation, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	ledger, err := uc.movRepo.SignedSumByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	rec := &Reconciliation{
		ProductID:   productID,
		CachedStock: product.Stock,
		LedgerStock: ledger,
		Consistent:  product.Stock == ledger,
	}
	if !rec.Consistent {
		uc.log.Warn().Str("product_id", productID).
			Int64("cached", rec.CachedStock).Int64("ledger", rec.LedgerStock).
			Msg("stock denormalizado no cuadra con el kardex")
	}
	return rec, nil
}
