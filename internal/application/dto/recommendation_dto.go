package dto

import "github.com/shopspring/decimal"

// OrderRecommendationDTO cantidad de compra sugerida por la IA para un producto.
type OrderRecommendationDTO struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// OrderRecommendationsResponse respuesta de GET /api/recommendations/orders.
type OrderRecommendationsResponse struct {
	Recommendations []OrderRecommendationDTO `json:"recommendations"`
}
