package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/fruteria-api/internal/application/ledger"
	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// Ensure TxRunner implements ledger.TxRunner.
var _ ledger.TxRunner = (*TxRunner)(nil)

// maxRetries intentos totales ante conflictos de serialización antes de
// devolver domain.ErrConflict.
const maxRetries = 3

// lockTimeout cota de espera por SELECT ... FOR UPDATE dentro de cada
// intento; al vencer, Postgres devuelve lock_not_available y el intento
// falla en lugar de quedar bloqueado.
const lockTimeout = "5s"

// txBeginner abstrae el inicio de transacciones. Lo implementa
// *pgxpool.Pool; en tests se sustituye por un fake.
type txBeginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL en
// REPEATABLE READ. Los repositorios que recibe el callback quedan atados a la
// tx, así que todas sus lecturas ven el mismo snapshot y sus escrituras se
// confirman juntas. Ante serialization_failure o deadlock reintenta el
// callback completo hasta maxRetries veces.
type TxRunner struct {
	db txBeginner
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{db: pool}
}

// Run inicia la transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Solo los conflictos de serialización (en fn o en el
// Commit) se reintentan; cualquier otro error de fn aborta sin reintento.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		err := r.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isSerializationFailure(err) {
			return err
		}
		lastErr = err
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, "SET LOCAL lock_timeout = '"+lockTimeout+"'"); err != nil {
		return fmt.Errorf("set lock_timeout: %w", err)
	}

	if err := fn(NewProductRepository(tx), NewTransactionRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		if isSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
