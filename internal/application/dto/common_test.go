package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPage(t *testing.T) {
	cases := []struct {
		name       string
		in         PageRequest
		wantLimit  int
		wantOffset int
	}{
		{"cero aplica el default", PageRequest{}, 20, 0},
		{"negativos se normalizan", PageRequest{Limit: -5, Offset: -3}, 20, 0},
		{"dentro de rango queda igual", PageRequest{Limit: 50, Offset: 40}, 50, 40},
		{"por encima del máximo se acota", PageRequest{Limit: 500, Offset: 0}, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.DefaultPage()
			assert.Equal(t, tc.wantLimit, tc.in.Limit)
			assert.Equal(t, tc.wantOffset, tc.in.Offset)
		})
	}
}
