package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/application/recommendation"
)

// RecommendationHandler sugerencias de compra generadas por IA (protegido).
type RecommendationHandler struct {
	uc *recommendation.OrderRecommendationUseCase
}

// NewRecommendationHandler construye el handler.
func NewRecommendationHandler(uc *recommendation.OrderRecommendationUseCase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

// Orders godoc
// @Summary      Cantidades de compra sugeridas según ventas e inventario
// @Tags         recommendations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.OrderRecommendationsResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/recommendations/orders [get]
func (h *RecommendationHandler) Orders(c *fiber.Ctx) error {
	out, err := h.uc.Recommend(c.Context())
	if err != nil {
		// El servicio de IA es externo: sus fallos se reportan como gateway.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "AI_UNAVAILABLE", Message: err.Error()})
	}
	return c.JSON(out)
}
