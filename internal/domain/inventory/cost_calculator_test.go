package inventory

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAverageCost(t *testing.T) {
	tests := []struct {
		name                                              string
		stockActual, costoActual, cantEntrada, costoEntrada string
		want                                              string
	}{
		{"misma cantidad, costos distintos", "10", "2", "10", "4", "3"},
		{"entrada más cara domina proporcionalmente", "5", "2", "15", "4", "3.5"},
		{"stock cero toma el costo de entrada", "0", "0", "10", "2.5", "2.5"},
		{"costo igual se mantiene", "8", "3", "4", "3", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AverageCost(d(tt.stockActual), d(tt.costoActual), d(tt.cantEntrada), d(tt.costoEntrada))
			assert.True(t, got.Equal(d(tt.want)), "esperado %s, obtenido %s", tt.want, got)
		})
	}
}

func TestAverageCost_SinCantidadDevuelveCero(t *testing.T) {
	got := AverageCost(d("0"), d("5"), d("0"), d("3"))
	assert.True(t, got.IsZero())
}
