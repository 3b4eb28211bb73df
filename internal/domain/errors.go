package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// MinPasswordLen largo mínimo de password, compartido por registro inicial y
// altas de empleados.
const MinPasswordLen = 8

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrTransactionNotFound = errors.New("transacción no encontrada")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto de escritura concurrente, reintente la operación")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrNotCancellable      = errors.New("la transacción no admite cancelación")
)

// InsufficientStockError indica que una operación pedía más unidades de las
// disponibles. Lleva el nombre del producto y el stock actual porque el
// mensaje se muestra tal cual al usuario final.
type InsufficientStockError struct {
	ProductName string
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para %s: solo hay %s disponibles", e.ProductName, e.Available.String())
}

// Is permite errors.Is(err, domain.ErrInsufficientStock) sobre el error tipado.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
