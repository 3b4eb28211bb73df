package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fruteria-api/internal/domain/entity"
)

// El catálogo de demo debe pasar las mismas validaciones que la API aplica a
// los productos: categorías y unidades dentro del enum, valores numéricos
// parseables y no negativos.
func TestDemoProducts_ValoresValidos(t *testing.T) {
	validCategories := map[string]bool{
		entity.CategoryFruta:     true,
		entity.CategoryProcesado: true,
		entity.CategoryOtro:      true,
	}
	validUnits := map[string]bool{
		entity.UnitUnidad: true,
		entity.UnitKg:     true,
	}

	require.NotEmpty(t, demoProducts)
	for _, p := range demoProducts {
		t.Run(p.name, func(t *testing.T) {
			assert.True(t, validCategories[p.category], "categoría fuera del enum: %q", p.category)
			assert.True(t, validUnits[p.unit], "unidad fuera del enum: %q", p.unit)

			for _, raw := range []string{p.buyPrice, p.sellPrice, p.stock, p.threshold} {
				d, err := decimal.NewFromString(raw)
				require.NoError(t, err)
				assert.False(t, d.IsNegative())
			}
		})
	}
}

func TestEscapeSQL_DuplicaComillas(t *testing.T) {
	assert.Equal(t, "O''Higgins", escapeSQL("O'Higgins"))
	assert.Equal(t, "sin comillas", escapeSQL("sin comillas"))
}
