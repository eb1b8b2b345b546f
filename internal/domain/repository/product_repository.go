package repository

import (
	"context"

	"github.com/clinivac/npwt-inventario/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// La implementación vive en infrastructure.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetByIDForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
	// Solo tiene sentido con un repo ligado a una transacción.
	GetByIDForUpdate(id string) (*entity.Product, error)
	// GetByCode busca por código normalizado (mayúsculas). Devuelve nil si no existe.
	GetByCode(code string) (*entity.Product, error)
	// Update actualiza los atributos de catálogo y el stock denormalizado.
	Update(product *entity.Product) error
	// IncrementStock suma qty al stock del producto en una sola sentencia.
	IncrementStock(productID string, qty int64) error
	// DecrementStock resta qty de forma condicional (stock >= qty en la misma
	// sentencia). Devuelve false si el stock era insuficiente; no escribe nada
	// en ese caso.
	DecrementStock(productID string, qty int64) (bool, error)
	List(limit, offset int) ([]*entity.Product, error)
	// ListAll devuelve el catálogo completo (para reportes).
	ListAll() ([]*entity.Product, error)
	// ListBelowMinimum devuelve los productos con stock <= stock mínimo,
	// calculado del lado del almacén, ordenados por mayor déficit primero.
	ListBelowMinimum(ctx context.Context) ([]*entity.Product, error)
	Count() (int, error)
}
