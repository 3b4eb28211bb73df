package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fruteria-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE).
	// Solo tiene sentido dentro de una transacción del TxRunner.
	GetForUpdate(id string) (*entity.Product, error)
	// Update modifica los campos de catálogo. No toca Stock: eso es del ledger.
	Update(product *entity.Product) error
	// UpdateStock fija el stock del producto (usado solo por el ledger, en tx).
	UpdateStock(productID string, stock decimal.Decimal) error
	// UpdateCost fija el costo de compra (promedio ponderado tras una compra).
	UpdateCost(productID string, purchasePrice decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
	Delete(id string) error
}
