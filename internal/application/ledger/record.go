package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/inventory"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// RecordSale registra una venta: bloquea cada producto, verifica stock
// disponible, resta las cantidades y crea la transacción SALE, todo en un
// solo Commit. Si algún producto no existe o no alcanza el stock, no se
// escribe nada.
func (l *StockLedger) RecordSale(ctx context.Context, in SaleInput) (*entity.Transaction, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	return l.record(ctx, entity.TransactionTypeSale, in.Actor, in.Items, "")
}

// RecordPurchase registra una compra a proveedor: suma las cantidades al
// stock, recalcula el costo de compra como promedio ponderado y crea la
// transacción PURCHASE. No hay chequeo de stock (las compras solo agregan),
// pero conserva la misma disciplina atómica.
func (l *StockLedger) RecordPurchase(ctx context.Context, in PurchaseInput) (*entity.Transaction, error) {
	if err := validateItems(in.Items); err != nil {
		return nil, err
	}
	return l.record(ctx, entity.TransactionTypePurchase, in.Actor, in.Items, "")
}

// record ejecuta la venta o compra dentro del TxRunner.
func (l *StockLedger) record(ctx context.Context, txType string, actor Actor, items []ItemInput, reason string) (*entity.Transaction, error) {
	txn := &entity.Transaction{
		ID:       uuid.New().String(),
		Type:     txType,
		UserID:   actor.ID,
		UserName: actor.Name,
		Reason:   reason,
	}

	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error {
		// La fecha se asigna dentro del callback: en un reintento por
		// conflicto debe reflejar el intento que sí confirmó.
		txn.Date = time.Now()
		txn.Items = txn.Items[:0]
		total := decimal.Zero

		for _, it := range items {
			// Bloquea la fila del producto para serializar escritores
			// concurrentes sobre el mismo stock.
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrProductNotFound
			}

			var newStock decimal.Decimal
			switch txType {
			case entity.TransactionTypeSale:
				if product.Stock.LessThan(it.Quantity) {
					return &domain.InsufficientStockError{ProductName: product.Name, Available: product.Stock}
				}
				newStock = product.Stock.Sub(it.Quantity)
			case entity.TransactionTypePurchase:
				newStock = product.Stock.Add(it.Quantity)
				// El costo pasa al promedio ponderado entre lo que había y
				// lo que entra.
				newCost := inventory.AverageCost(product.Stock, product.PurchasePrice, it.Quantity, it.UnitPrice)
				if err := productRepo.UpdateCost(product.ID, newCost); err != nil {
					return err
				}
			}

			if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
				return err
			}

			txn.Items = append(txn.Items, entity.TransactionItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
			})
			total = total.Add(it.Quantity.Mul(it.UnitPrice))
		}

		txn.Total = total
		return txRepo.Create(txn)
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}
