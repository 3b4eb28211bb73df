package ledger

import (
	"context"

	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ledger: todas
// las lecturas ven un snapshot consistente y las escrituras se confirman
// juntas o ninguna. Ante un conflicto de escritura concurrente el runner
// reintenta fn completa un número acotado de veces y luego devuelve
// domain.ErrConflict.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
