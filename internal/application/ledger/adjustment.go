package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// RecordAdjustment registra un ajuste manual de stock (merma, recuento,
// corrección). El ajuste se valora al precio de compra del producto y el
// total queda con signo: negativo cuando el stock baja.
func (l *StockLedger) RecordAdjustment(ctx context.Context, in AdjustmentInput) (*entity.Transaction, error) {
	if err := l.validateAdjustment(in); err != nil {
		return nil, err
	}

	signedDelta := in.Quantity
	if in.Direction == DirectionDecrease {
		signedDelta = in.Quantity.Neg()
	}

	reason := in.Reason
	if reason == "" {
		if in.Direction == DirectionIncrease {
			reason = "Ajuste de entrada"
		} else {
			reason = "Ajuste de salida"
		}
	}

	txn := &entity.Transaction{
		ID:       uuid.New().String(),
		Type:     entity.TransactionTypeAdjustment,
		UserID:   in.Actor.ID,
		UserName: in.Actor.Name,
		Reason:   reason,
	}

	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		txn.Date = time.Now()

		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		newStock := product.Stock.Add(signedDelta)
		if newStock.IsNegative() {
			return &domain.InsufficientStockError{ProductName: product.Name, Available: product.Stock}
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}

		txn.Items = []entity.TransactionItem{{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   product.PurchasePrice,
		}}
		txn.Total = signedDelta.Mul(product.PurchasePrice)
		return txRepo.Create(txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
