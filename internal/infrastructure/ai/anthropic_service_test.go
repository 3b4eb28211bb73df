package ai

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecommendations(t *testing.T) {
	t.Run("JSON limpio", func(t *testing.T) {
		recs, err := parseRecommendations(`{"Manzana": 12, "Banana": 8.5}`)
		require.NoError(t, err)
		require.Len(t, recs, 2)
		// Orden alfabético estable
		assert.Equal(t, "Banana", recs[0].ProductName)
		assert.True(t, recs[0].Quantity.Equal(decimal.RequireFromString("8.5")))
		assert.Equal(t, "Manzana", recs[1].ProductName)
		assert.True(t, recs[1].Quantity.Equal(decimal.NewFromInt(12)))
	})

	t.Run("envuelto en bloque markdown", func(t *testing.T) {
		raw := "```json\n{\"Naranja\": 20}\n```"
		recs, err := parseRecommendations(raw)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Naranja", recs[0].ProductName)
	})

	t.Run("texto alrededor del JSON", func(t *testing.T) {
		raw := "Aquí está mi sugerencia:\n{\"Pera\": 5}\nSaludos."
		recs, err := parseRecommendations(raw)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Pera", recs[0].ProductName)
	})

	t.Run("descarta cantidades no positivas", func(t *testing.T) {
		recs, err := parseRecommendations(`{"Manzana": 0, "Banana": -2, "Uva": 3}`)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Uva", recs[0].ProductName)
	})

	t.Run("sin JSON en la respuesta", func(t *testing.T) {
		_, err := parseRecommendations("no puedo ayudar con eso")
		require.Error(t, err)
	})

	t.Run("JSON malformado", func(t *testing.T) {
		_, err := parseRecommendations(`{"Manzana": }`)
		require.Error(t, err)
	})
}
