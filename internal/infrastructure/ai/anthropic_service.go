package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fruteria-api/internal/application/dto"
	"github.com/jhoicas/fruteria-api/internal/application/ports"
)

// Verificar en tiempo de compilación que AnthropicService implementa LLMService.
var _ ports.LLMService = (*AnthropicService)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	anthropicSystemPrompt = `Eres un asistente de compras para una frutería.
Recibirás dos bloques JSON: el historial de ventas reciente y el inventario actual
(con stock y umbral de stock bajo por producto).
Analiza la rotación de cada producto y sugiere cuánto comprar para cubrir la demanda
de la próxima semana sin quedar por debajo del umbral.

Devuelve ÚNICAMENTE un objeto JSON válido (sin markdown, sin bloques de código` + " ```json" + `)
con el nombre exacto de cada producto como clave y la cantidad sugerida como valor numérico:
{
  "<nombre del producto>": <cantidad>,
  ...
}

Reglas:
- Usa los nombres de producto exactamente como aparecen en el inventario.
- Omite los productos que no necesitan reposición (no incluyas ceros).
- Las cantidades pueden ser decimales para productos vendidos por kg.
- No incluyas texto fuera del JSON. Solo el objeto JSON.`
)

// AnthropicService adaptador que implementa LLMService usando la API REST
// de Anthropic (Claude) vía resty; no requiere el SDK oficial.
type AnthropicService struct {
	apiKey string
	model  string
	client *resty.Client
}

// NewAnthropicService construye el adaptador.
// model suele ser "claude-3-5-haiku-20241022".
// Si apiKey está vacío las llamadas devuelven error descriptivo en lugar de panic.
func NewAnthropicService(apiKey, model string) *AnthropicService {
	client := resty.New().
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetHeader("content-type", "application/json").
		// Timeout de red de 25 s; el use case impone además un context.WithTimeout de 10 s.
		SetTimeout(25 * time.Second)

	return &AnthropicService{apiKey: apiKey, model: model, client: client}
}

// ── Estructuras internas del protocolo Anthropic Messages API ─────────────────

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque Claude lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// ── Implementación del puerto ─────────────────────────────────────────────────

// RecommendOrderQuantities envía el historial de ventas y el inventario a Claude
// y devuelve la cantidad de compra sugerida por producto, ordenada por nombre.
func (s *AnthropicService) RecommendOrderQuantities(
	ctx context.Context,
	salesJSON string,
	inventoryJSON string,
) ([]dto.OrderRecommendationDTO, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}

	userContent := fmt.Sprintf("Ventas recientes:\n%s\n\nInventario actual:\n%s", salesJSON, inventoryJSON)

	payload := anthropicRequest{
		Model:     s.model,
		MaxTokens: 1024,
		System:    anthropicSystemPrompt,
		Messages: []anthropicMessage{
			{Role: "user", Content: userContent},
		},
	}

	var anthResp anthropicResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&anthResp).
		SetError(&anthResp).
		Post(anthropicMessagesURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	if resp.IsError() {
		if anthResp.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", anthResp.Error.Type, anthResp.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode(), resp.String())
	}
	if len(anthResp.Content) == 0 {
		return nil, fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}

	return parseRecommendations(anthResp.Content[0].Text)
}

// parseRecommendations convierte el texto del modelo (mapa producto→cantidad)
// en la lista ordenada de recomendaciones. Tolera envolturas markdown.
func parseRecommendations(rawText string) ([]dto.OrderRecommendationDTO, error) {
	cleanJSON := extractJSON(rawText)
	if cleanJSON == "" {
		return nil, fmt.Errorf("AI: no se encontró JSON válido en la respuesta del modelo (respuesta: %s)", rawText)
	}

	var quantities map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(cleanJSON), &quantities); err != nil {
		return nil, fmt.Errorf("AI: parsear JSON de recomendaciones: %w (JSON extraído: %s)", err, cleanJSON)
	}

	recs := make([]dto.OrderRecommendationDTO, 0, len(quantities))
	for name, qty := range quantities {
		if qty.IsPositive() {
			recs = append(recs, dto.OrderRecommendationDTO{ProductName: name, Quantity: qty})
		}
	}
	// Orden estable para la respuesta HTTP (los mapas de Go no lo garantizan).
	sort.Slice(recs, func(i, j int) bool { return recs[i].ProductName < recs[j].ProductName })
	return recs, nil
}

// extractJSON extrae el primer objeto JSON bien formado de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		// Quitar la línea de apertura (```json o ```)
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		// Quitar el cierre ```
		if close := strings.LastIndex(after, "```"); close != -1 {
			after = after[:close]
		}
		text = strings.TrimSpace(after)
	}

	if strings.HasPrefix(text, "{") {
		return text
	}

	match := jsonBlockRe.FindString(text)
	return strings.TrimSpace(match)
}
