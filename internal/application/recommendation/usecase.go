package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/application/ports"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// salesWindowDays ventana de historial de ventas que se le pasa al modelo.
const salesWindowDays = 30

// OrderRecommendationUseCase arma el contexto de negocio (ventas recientes +
// inventario actual) y le pide al LLM cantidades de compra sugeridas por
// producto. Aplica un timeout de 10 s en cada llamada para que las latencias
// externas no bloqueen los goroutines del servidor.
type OrderRecommendationUseCase struct {
	llm         ports.LLMService
	reportRepo  repository.ReportRepository
	productRepo repository.ProductRepository
}

// NewOrderRecommendationUseCase construye el caso de uso.
func NewOrderRecommendationUseCase(
	llm ports.LLMService,
	reportRepo repository.ReportRepository,
	productRepo repository.ProductRepository,
) *OrderRecommendationUseCase {
	return &OrderRecommendationUseCase{llm: llm, reportRepo: reportRepo, productRepo: productRepo}
}

type salesEntry struct {
	Product  string          `json:"product"`
	Quantity decimal.Decimal `json:"quantity_sold"`
}

type inventoryEntry struct {
	Product   string          `json:"product"`
	Stock     decimal.Decimal `json:"stock"`
	Threshold decimal.Decimal `json:"low_stock_threshold"`
	Unit      string          `json:"unit"`
}

// Recommend consulta ventas de los últimos 30 días e inventario completo,
// los serializa y delega en el LLM.
func (uc *OrderRecommendationUseCase) Recommend(ctx context.Context) (*dto.OrderRecommendationsResponse, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -salesWindowDays)

	sold, err := uc.reportRepo.GetTopProducts(ctx, from, now, 100)
	if err != nil {
		return nil, fmt.Errorf("ventas recientes: %w", err)
	}
	products, err := uc.productRepo.List(500, 0)
	if err != nil {
		return nil, fmt.Errorf("inventario actual: %w", err)
	}

	sales := make([]salesEntry, 0, len(sold))
	for _, s := range sold {
		sales = append(sales, salesEntry{Product: s.ProductName, Quantity: s.Quantity})
	}
	inventory := make([]inventoryEntry, 0, len(products))
	for _, p := range products {
		inventory = append(inventory, inventoryEntry{
			Product: p.Name, Stock: p.Stock, Threshold: p.LowStockThreshold, Unit: p.Unit,
		})
	}

	salesJSON, err := json.Marshal(sales)
	if err != nil {
		return nil, err
	}
	inventoryJSON, err := json.Marshal(inventory)
	if err != nil {
		return nil, err
	}

	// Timeout de 10 s: las llamadas a LLMs pueden demorar varios segundos.
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	recs, err := uc.llm.RecommendOrderQuantities(ctx, string(salesJSON), string(inventoryJSON))
	if err != nil {
		return nil, fmt.Errorf("recomendación IA: %w", err)
	}
	return &dto.OrderRecommendationsResponse{Recommendations: recs}, nil
}
