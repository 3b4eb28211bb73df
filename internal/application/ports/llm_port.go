package ports

import (
	"context"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
)

// LLMService define el puerto de salida hacia los servicios de IA.
// Cualquier adaptador (Anthropic, Gemini, mock) debe implementar esta
// interfaz; la aplicación solo conoce este contrato (DIP).
type LLMService interface {
	// RecommendOrderQuantities recibe el historial de ventas reciente y el
	// inventario actual serializados en JSON y devuelve la cantidad de compra
	// sugerida por producto. El contexto debe llevar timeout: la llamada sale
	// a un servicio externo.
	RecommendOrderQuantities(ctx context.Context, salesJSON, inventoryJSON string) ([]dto.OrderRecommendationDTO, error)
}
