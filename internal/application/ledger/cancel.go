package ledger

import (
	"context"

	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// CancelTransaction revierte una venta o compra ya confirmada: restaura el
// stock de cada producto y borra el registro, en un solo Commit. El efecto
// neto de registrar y cancelar es nulo.
//
// Cancelar una compra cuyo stock ya se revendió dejaría el stock negativo;
// en ese caso la cancelación se rechaza con stock insuficiente en lugar de
// romper el invariante stock >= 0.
func (l *StockLedger) CancelTransaction(ctx context.Context, transactionID string, _ Actor) error {
	if transactionID == "" {
		return domain.ErrInvalidInput
	}

	return l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		txn, err := txRepo.GetForUpdate(transactionID)
		if err != nil {
			return err
		}
		if txn == nil {
			return domain.ErrTransactionNotFound
		}
		if !txn.IsCancellable() {
			return domain.ErrNotCancellable
		}

		for _, it := range txn.Items {
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				// El producto fue borrado después de la transacción.
				return domain.ErrProductNotFound
			}

			newStock := product.Stock
			switch txn.Type {
			case entity.TransactionTypeSale:
				newStock = newStock.Add(it.Quantity)
			case entity.TransactionTypePurchase:
				newStock = newStock.Sub(it.Quantity)
				if newStock.IsNegative() {
					return &domain.InsufficientStockError{ProductName: product.Name, Available: product.Stock}
				}
			}
			if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
				return err
			}
		}

		return txRepo.Delete(txn.ID)
	})
}
