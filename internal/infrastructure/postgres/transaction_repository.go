package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación de TransactionRepository sobre PostgreSQL
// (usable con pool o tx). Cabecera en transactions, líneas en
// transaction_items con borrado en cascada.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create persiste cabecera y líneas. El ledger lo invoca dentro de la misma
// transacción de BD que las actualizaciones de stock.
func (r *TransactionRepo) Create(t *entity.Transaction) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO transactions (id, type, date, user_id, user_name, total, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		t.ID, t.Type, t.Date, nullIfEmpty(t.UserID), t.UserName, t.Total, t.Reason,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	for i, it := range t.Items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO transaction_items (transaction_id, position, product_id, product_name, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			t.ID, i, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert transaction item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una transacción con sus líneas.
func (r *TransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la transacción bloqueando la cabecera (SELECT FOR
// UPDATE), para que dos cancelaciones concurrentes no la reviertan dos veces.
func (r *TransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	return r.get(id, true)
}

func (r *TransactionRepo) get(id string, forUpdate bool) (*entity.Transaction, error) {
	ctx := context.Background()
	query := `SELECT id, type, date, COALESCE(user_id, ''), user_name, total, reason FROM transactions WHERE id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var t entity.Transaction
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Type, &t.Date, &t.UserID, &t.UserName, &t.Total, &t.Reason,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	if err := r.loadItems(ctx, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepo) loadItems(ctx context.Context, t *entity.Transaction) error {
	rows, err := r.q.Query(ctx, `
		SELECT product_id, product_name, quantity, unit_price
		FROM transaction_items WHERE transaction_id = $1 ORDER BY position`,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("load transaction items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it entity.TransactionItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan transaction item: %w", err)
		}
		t.Items = append(t.Items, it)
	}
	return rows.Err()
}

// Delete elimina cabecera y líneas (ON DELETE CASCADE). La cancelación lo
// invoca en la misma transacción de BD que la reversa de stock.
func (r *TransactionRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

// List lista transacciones filtradas, más recientes primero.
func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]*entity.Transaction, error) {
	ctx := context.Background()
	var sb strings.Builder
	sb.WriteString(`SELECT id, type, date, COALESCE(user_id, ''), user_name, total, reason FROM transactions`)
	var conds []string
	var args []any
	if filter.Type != "" {
		args = append(args, filter.Type)
		conds = append(conds, "type = $"+strconv.Itoa(len(args)))
	}
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		conds = append(conds, "user_id = $"+strconv.Itoa(len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conds = append(conds, "date >= $"+strconv.Itoa(len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conds = append(conds, "date <= $"+strconv.Itoa(len(args)))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY date DESC")
	args = append(args, filter.Limit)
	sb.WriteString(" LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, filter.Offset)
	sb.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Type, &t.Date, &t.UserID, &t.UserName, &t.Total, &t.Reason); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		if err := r.loadItems(ctx, t); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
