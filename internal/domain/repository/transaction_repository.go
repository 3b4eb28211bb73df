package repository

import (
	"time"

	"github.com/jhoicas/fruteria-api/internal/domain/entity"
)

// TransactionFilter filtros para listar transacciones.
type TransactionFilter struct {
	Type   string // vacío = todos
	UserID string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// TransactionRepository define el puerto de persistencia para el registro de
// transacciones del ledger (cabecera + líneas).
type TransactionRepository interface {
	Create(tx *entity.Transaction) error
	GetByID(id string) (*entity.Transaction, error)
	// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) antes de cancelar.
	GetForUpdate(id string) (*entity.Transaction, error)
	// Delete elimina cabecera y líneas. La cancelación lo invoca dentro de la
	// misma transacción de BD que la reversa de stock.
	Delete(id string) error
	List(filter TransactionFilter) ([]*entity.Transaction, error)
}
