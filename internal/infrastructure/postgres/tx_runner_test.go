package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// fakeTx simula una pgx.Tx en memoria: registra los Exec y devuelve en
// Commit el error que se le haya programado. El resto de la interfaz queda
// en el embed (nil) porque estos tests no la tocan.
type fakeTx struct {
	pgx.Tx
	owner     *fakeBeginner
	commitErr error
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.owner.execs = append(t.owner.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.owner.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback(context.Context) error {
	t.owner.rollbacks++
	return nil
}

// fakeBeginner reparte fakeTx y cuenta begins/commits/rollbacks. commitErrs
// se consume en orden: un error por transacción iniciada (nil = commit ok).
type fakeBeginner struct {
	commitErrs []error
	begins     int
	commits    int
	rollbacks  int
	execs      []string
}

func (b *fakeBeginner) BeginTx(context.Context, pgx.TxOptions) (pgx.Tx, error) {
	var commitErr error
	if b.begins < len(b.commitErrs) {
		commitErr = b.commitErrs[b.begins]
	}
	b.begins++
	return &fakeTx{owner: b, commitErr: commitErr}, nil
}

func serializationFailure() error {
	return &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
}

func noopCallback(repository.ProductRepository, repository.TransactionRepository) error {
	return nil
}

func TestTxRunner_CommitOK_UnSoloIntento(t *testing.T) {
	db := &fakeBeginner{}
	runner := &TxRunner{db: db}

	calls := 0
	err := runner.Run(context.Background(), func(repository.ProductRepository, repository.TransactionRepository) error {
		calls++
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, db.begins)
	assert.Equal(t, 1, db.commits)
}

func TestTxRunner_ConflictoDeCommit_AgotaReintentos(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{
		serializationFailure(), serializationFailure(), serializationFailure(),
	}}
	runner := &TxRunner{db: db}

	calls := 0
	err := runner.Run(context.Background(), func(repository.ProductRepository, repository.TransactionRepository) error {
		calls++
		return nil
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, maxRetries, calls, "el callback se reejecuta completo en cada intento")
	assert.Equal(t, maxRetries, db.begins)
	// El defer Rollback corre también tras un Commit fallido.
	assert.Equal(t, maxRetries, db.rollbacks)
}

func TestTxRunner_ConflictoTransitorio_ReintentaYConfirma(t *testing.T) {
	db := &fakeBeginner{commitErrs: []error{serializationFailure(), nil}}
	runner := &TxRunner{db: db}

	err := runner.Run(context.Background(), noopCallback)

	require.NoError(t, err)
	assert.Equal(t, 2, db.begins)
	assert.Equal(t, 2, db.commits)
}

func TestTxRunner_DeadlockEnCallback_Reintenta(t *testing.T) {
	db := &fakeBeginner{}
	runner := &TxRunner{db: db}

	calls := 0
	err := runner.Run(context.Background(), func(repository.ProductRepository, repository.TransactionRepository) error {
		calls++
		return &pgconn.PgError{Code: "40P01", Message: "deadlock detected"}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, maxRetries, calls)
}

func TestTxRunner_ErrorDeNegocio_NoReintenta(t *testing.T) {
	db := &fakeBeginner{}
	runner := &TxRunner{db: db}

	boom := errors.New("fallo de negocio")
	calls := 0
	err := runner.Run(context.Background(), func(repository.ProductRepository, repository.TransactionRepository) error {
		calls++
		return boom
	})

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, db.commits)
	assert.Equal(t, 1, db.rollbacks)
}

func TestTxRunner_AplicaLockTimeoutPorIntento(t *testing.T) {
	db := &fakeBeginner{}
	runner := &TxRunner{db: db}

	require.NoError(t, runner.Run(context.Background(), noopCallback))

	require.Len(t, db.execs, 1)
	assert.Equal(t, "SET LOCAL lock_timeout = '"+lockTimeout+"'", db.execs[0])
}
