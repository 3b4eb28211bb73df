package usecase

import (
	"time"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// TransactionUseCase consultas del historial de transacciones. Las altas y
// cancelaciones no pasan por aquí: son del StockLedger.
type TransactionUseCase struct {
	repo repository.TransactionRepository
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(repo repository.TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{repo: repo}
}

// List lista transacciones filtradas por tipo y rango de fechas.
func (uc *TransactionUseCase) List(txType string, from, to *time.Time, page dto.PageRequest) ([]dto.TransactionResponse, error) {
	switch txType {
	case "", entity.TransactionTypeSale, entity.TransactionTypePurchase, entity.TransactionTypeAdjustment:
	default:
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	txns, err := uc.repo.List(repository.TransactionFilter{
		Type: txType, From: from, To: to,
		Limit: page.Limit, Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, *ToTransactionResponse(t))
	}
	return out, nil
}

// GetByID obtiene una transacción con sus líneas.
func (uc *TransactionUseCase) GetByID(id string) (*dto.TransactionResponse, error) {
	txn, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, domain.ErrTransactionNotFound
	}
	return ToTransactionResponse(txn), nil
}

// ToTransactionResponse mapea la entidad al DTO HTTP.
func ToTransactionResponse(t *entity.Transaction) *dto.TransactionResponse {
	out := &dto.TransactionResponse{
		ID:       t.ID,
		Type:     t.Type,
		Date:     t.Date,
		UserID:   t.UserID,
		UserName: t.UserName,
		Total:    t.Total,
		Reason:   t.Reason,
	}
	for _, it := range t.Items {
		out.Items = append(out.Items, dto.TransactionItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}
