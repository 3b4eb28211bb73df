package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fruteria-api/internal/application/ledger"
	"github.com/jhoicas/fruteria-api/internal/domain"
	"github.com/jhoicas/fruteria-api/internal/domain/entity"
	"github.com/jhoicas/fruteria-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica transaccional: el runner trabaja sobre una
// copia del estado y solo la publica si el callback termina sin error, igual
// que un Commit/Rollback real. El mutex serializa escritores concurrentes.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	products     map[string]*entity.Product
	transactions map[string]*entity.Transaction
}

func newMemState() *memState {
	return &memState{
		products:     map[string]*entity.Product{},
		transactions: map[string]*entity.Transaction{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for id, p := range s.products {
		cp := *p
		c.products[id] = &cp
	}
	for id, t := range s.transactions {
		ct := *t
		ct.Items = append([]entity.TransactionItem(nil), t.Items...)
		c.transactions[id] = &ct
	}
	return c
}

type fakeTxRunner struct {
	mu    sync.Mutex
	state *memState
	runs  int
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++
	snapshot := r.state.clone()
	if err := fn(&memProductRepo{s: snapshot}, &memTransactionRepo{s: snapshot}); err != nil {
		return err
	}
	r.state = snapshot
	return nil
}

func (r *fakeTxRunner) stockOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.state.products[id]
	require.True(t, ok, "producto %s debe existir", id)
	return p.Stock
}

func (r *fakeTxRunner) costOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.state.products[id]
	require.True(t, ok, "producto %s debe existir", id)
	return p.PurchasePrice
}

func (r *fakeTxRunner) transactionCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.state.transactions)
}

func (r *fakeTxRunner) hasTransaction(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.state.transactions[id]
	return ok
}

type memProductRepo struct{ s *memState }

func (m *memProductRepo) Create(p *entity.Product) error {
	cp := *p
	m.s.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := m.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return m.GetByID(id)
}

func (m *memProductRepo) Update(p *entity.Product) error {
	existing, ok := m.s.products[p.ID]
	if !ok {
		return domain.ErrProductNotFound
	}
	cp := *p
	cp.Stock = existing.Stock
	m.s.products[p.ID] = &cp
	return nil
}

func (m *memProductRepo) UpdateStock(id string, stock decimal.Decimal) error {
	p, ok := m.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = stock
	return nil
}

func (m *memProductRepo) UpdateCost(id string, purchasePrice decimal.Decimal) error {
	p, ok := m.s.products[id]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.PurchasePrice = purchasePrice
	return nil
}

func (m *memProductRepo) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }
func (m *memProductRepo) ListLowStock() ([]*entity.Product, error)          { return nil, nil }
func (m *memProductRepo) Delete(id string) error {
	delete(m.s.products, id)
	return nil
}

type memTransactionRepo struct{ s *memState }

func (m *memTransactionRepo) Create(t *entity.Transaction) error {
	ct := *t
	ct.Items = append([]entity.TransactionItem(nil), t.Items...)
	m.s.transactions[t.ID] = &ct
	return nil
}

func (m *memTransactionRepo) GetByID(id string) (*entity.Transaction, error) {
	t, ok := m.s.transactions[id]
	if !ok {
		return nil, nil
	}
	ct := *t
	ct.Items = append([]entity.TransactionItem(nil), t.Items...)
	return &ct, nil
}

func (m *memTransactionRepo) GetForUpdate(id string) (*entity.Transaction, error) {
	return m.GetByID(id)
}

func (m *memTransactionRepo) Delete(id string) error {
	delete(m.s.transactions, id)
	return nil
}

func (m *memTransactionRepo) List(repository.TransactionFilter) ([]*entity.Transaction, error) {
	return nil, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

var testActor = ledger.Actor{ID: "u1", Name: "Ana"}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newFixture(policy ledger.ReasonPolicy, products ...*entity.Product) (*fakeTxRunner, *ledger.StockLedger) {
	runner := &fakeTxRunner{state: newMemState()}
	for _, p := range products {
		cp := *p
		runner.state.products[p.ID] = &cp
	}
	return runner, ledger.NewStockLedger(runner, policy)
}

func productP1() *entity.Product {
	return &entity.Product{
		ID: "p1", Name: "Manzana", Category: entity.CategoryFruta, Unit: entity.UnitKg,
		PurchasePrice: dec("2"), SellingPrice: dec("5"), Stock: dec("10"),
	}
}

func productP2() *entity.Product {
	return &entity.Product{
		ID: "p2", Name: "Banana", Category: entity.CategoryFruta, Unit: entity.UnitKg,
		PurchasePrice: dec("3"), SellingPrice: dec("6"), Stock: dec("5"),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStockYCreaTransaccion(t *testing.T) {
	runner, l := newFixture("", productP1())

	txn, err := l.RecordSale(context.Background(), ledger.SaleInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("4"), UnitPrice: dec("5")}},
	})
	require.NoError(t, err)
	require.NotNil(t, txn)

	assert.Equal(t, entity.TransactionTypeSale, txn.Type)
	assert.True(t, txn.Total.Equal(dec("20")), "total = 4×5, fue %s", txn.Total)
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("6")))
	assert.False(t, txn.Date.IsZero(), "la fecha la asigna el ledger al confirmar")
	assert.Equal(t, "u1", txn.UserID)
	assert.True(t, runner.hasTransaction(txn.ID))

	require.Len(t, txn.Items, 1)
	assert.Equal(t, "Manzana", txn.Items[0].ProductName)
}

func TestRecordSale_StockInsuficienteNoMutaNada(t *testing.T) {
	runner, l := newFixture("", productP1())

	_, err := l.RecordSale(context.Background(), ledger.SaleInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("20"), UnitPrice: dec("5")}},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.Equal(t, "Manzana", insErr.ProductName)
	assert.True(t, insErr.Available.Equal(dec("10")))
	assert.Contains(t, err.Error(), "Manzana", "el mensaje es para el usuario final")

	assert.True(t, runner.stockOf(t, "p1").Equal(dec("10")), "el stock no debe cambiar")
	assert.Equal(t, 0, runner.transactionCount(), "no debe quedar transacción")
}

func TestRecordSale_MultiItemRevierteTodoSiUnoFalla(t *testing.T) {
	runner, l := newFixture("", productP1(), productP2())

	_, err := l.RecordSale(context.Background(), ledger.SaleInput{
		Actor: testActor,
		Items: []ledger.ItemInput{
			{ProductID: "p1", Quantity: dec("4"), UnitPrice: dec("5")},
			{ProductID: "p2", Quantity: dec("9"), UnitPrice: dec("6")}, // solo hay 5
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El descuento de p1 ocurrió dentro de la tx abortada: debe revertirse.
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("10")))
	assert.True(t, runner.stockOf(t, "p2").Equal(dec("5")))
	assert.Equal(t, 0, runner.transactionCount())
}

func TestRecordSale_ProductoInexistente(t *testing.T) {
	runner, l := newFixture("", productP1())

	_, err := l.RecordSale(context.Background(), ledger.SaleInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "nope", Quantity: dec("1"), UnitPrice: dec("5")}},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Equal(t, 0, runner.transactionCount())
}

func TestRecordSale_ValidacionNoLlegaAlStore(t *testing.T) {
	tests := []struct {
		name  string
		items []ledger.ItemInput
	}{
		{"sin items", nil},
		{"cantidad cero", []ledger.ItemInput{{ProductID: "p1", Quantity: dec("0"), UnitPrice: dec("5")}}},
		{"cantidad negativa", []ledger.ItemInput{{ProductID: "p1", Quantity: dec("-3"), UnitPrice: dec("5")}}},
		{"precio negativo", []ledger.ItemInput{{ProductID: "p1", Quantity: dec("1"), UnitPrice: dec("-1")}}},
		{"sin producto", []ledger.ItemInput{{Quantity: dec("1"), UnitPrice: dec("5")}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			runner, l := newFixture("", productP1())
			_, err := l.RecordSale(context.Background(), ledger.SaleInput{Actor: testActor, Items: tc.items})
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, 0, runner.runs, "la validación corre antes de abrir transacción")
		})
	}
}

func TestRecordSale_PrecioCeroEsValido(t *testing.T) {
	// Regalos o degustaciones: precio 0 pasa validación y descuenta stock.
	runner, l := newFixture("", productP1())

	txn, err := l.RecordSale(context.Background(), ledger.SaleInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("2"), UnitPrice: dec("0")}},
	})
	require.NoError(t, err)
	assert.True(t, txn.Total.Equal(decimal.Zero))
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("8")))
}

func TestRecordSale_ConcurrenciaSoloUnaGana(t *testing.T) {
	// Dos ventas concurrentes de 6 sobre stock 10: exactamente una debe
	// confirmar y la otra fallar por stock insuficiente.
	runner, l := newFixture("", productP1())

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = l.RecordSale(context.Background(), ledger.SaleInput{
				Actor: testActor,
				Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("6"), UnitPrice: dec("5")}},
			})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, domain.ErrInsufficientStock)
		insufficient++
	}
	assert.Equal(t, 1, ok, "exactamente una venta debe confirmar")
	assert.Equal(t, 1, insufficient)
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("4")))
	assert.Equal(t, 1, runner.transactionCount())
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordPurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordPurchase_SumaStock(t *testing.T) {
	runner, l := newFixture("", productP1())

	txn, err := l.RecordPurchase(context.Background(), ledger.PurchaseInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("15"), UnitPrice: dec("2")}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.TransactionTypePurchase, txn.Type)
	assert.True(t, txn.Total.Equal(dec("30")))
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("25")))
}

func TestRecordPurchase_CostoPromedioPonderado(t *testing.T) {
	// p1: 10 unidades a costo 2. Entran 10 a costo 4 → costo promedio 3.
	runner, l := newFixture("", productP1())

	_, err := l.RecordPurchase(context.Background(), ledger.PurchaseInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("10"), UnitPrice: dec("4")}},
	})
	require.NoError(t, err)

	assert.True(t, runner.costOf(t, "p1").Equal(dec("3")),
		"el costo debe pasar al promedio ponderado, fue %s", runner.costOf(t, "p1"))
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("20")))
}

func TestRecordPurchase_VariosProductos(t *testing.T) {
	runner, l := newFixture("", productP1(), productP2())

	txn, err := l.RecordPurchase(context.Background(), ledger.PurchaseInput{
		Actor: testActor,
		Items: []ledger.ItemInput{
			{ProductID: "p1", Quantity: dec("10"), UnitPrice: dec("2")},
			{ProductID: "p2", Quantity: dec("4"), UnitPrice: dec("3")},
		},
	})
	require.NoError(t, err)

	assert.True(t, txn.Total.Equal(dec("32")), "20 + 12")
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("20")))
	assert.True(t, runner.stockOf(t, "p2").Equal(dec("9")))
	require.Len(t, txn.Items, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordAdjustment
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordAdjustment_SalidaHastaCero(t *testing.T) {
	runner, l := newFixture("", productP2())

	txn, err := l.RecordAdjustment(context.Background(), ledger.AdjustmentInput{
		Actor:     testActor,
		ProductID: "p2",
		Direction: ledger.DirectionDecrease,
		Quantity:  dec("5"),
		Reason:    "merma",
	})
	require.NoError(t, err)

	assert.True(t, runner.stockOf(t, "p2").Equal(decimal.Zero))
	assert.True(t, txn.Total.Equal(dec("-15")), "5 × 3 con signo negativo, fue %s", txn.Total)
	require.Len(t, txn.Items, 1)
	assert.True(t, txn.Items[0].Quantity.Equal(dec("5")), "la cantidad reportada es siempre positiva")
	assert.True(t, txn.Items[0].UnitPrice.Equal(dec("3")), "valorado al precio de compra")
	assert.Equal(t, "merma", txn.Reason)
}

func TestRecordAdjustment_SalidaMayorQueStockFalla(t *testing.T) {
	runner, l := newFixture("", productP2())

	_, err := l.RecordAdjustment(context.Background(), ledger.AdjustmentInput{
		Actor:     testActor,
		ProductID: "p2",
		Direction: ledger.DirectionDecrease,
		Quantity:  dec("6"),
		Reason:    "merma",
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, runner.stockOf(t, "p2").Equal(dec("5")))
	assert.Equal(t, 0, runner.transactionCount())
}

func TestRecordAdjustment_EntradaConMotivoPorDefecto(t *testing.T) {
	runner, l := newFixture("", productP1())

	txn, err := l.RecordAdjustment(context.Background(), ledger.AdjustmentInput{
		Actor:     testActor,
		ProductID: "p1",
		Direction: ledger.DirectionIncrease,
		Quantity:  dec("3"),
	})
	require.NoError(t, err)

	assert.True(t, runner.stockOf(t, "p1").Equal(dec("13")))
	assert.True(t, txn.Total.Equal(dec("6")), "3 × 2 positivo")
	assert.Equal(t, "Ajuste de entrada", txn.Reason)
}

func TestRecordAdjustment_PoliticaDeMotivo(t *testing.T) {
	base := ledger.AdjustmentInput{
		Actor:     testActor,
		ProductID: "p1",
		Quantity:  dec("1"),
	}

	t.Run("default exige motivo solo en salidas", func(t *testing.T) {
		_, l := newFixture("", productP1())

		in := base
		in.Direction = ledger.DirectionDecrease
		_, err := l.RecordAdjustment(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrInvalidInput)

		in.Direction = ledger.DirectionIncrease
		_, err = l.RecordAdjustment(context.Background(), in)
		require.NoError(t, err)
	})

	t.Run("always exige motivo también en entradas", func(t *testing.T) {
		_, l := newFixture(ledger.ReasonPolicyAlways, productP1())

		in := base
		in.Direction = ledger.DirectionIncrease
		_, err := l.RecordAdjustment(context.Background(), in)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("none nunca lo exige", func(t *testing.T) {
		_, l := newFixture(ledger.ReasonPolicyNone, productP1())

		in := base
		in.Direction = ledger.DirectionDecrease
		in.Reason = ""
		in.Quantity = dec("1")
		_, err := l.RecordAdjustment(context.Background(), in)
		require.NoError(t, err)
	})
}

func TestRecordAdjustment_DireccionInvalida(t *testing.T) {
	runner, l := newFixture("", productP1())

	_, err := l.RecordAdjustment(context.Background(), ledger.AdjustmentInput{
		Actor:     testActor,
		ProductID: "p1",
		Direction: "sideways",
		Quantity:  dec("1"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, 0, runner.runs)
}

// ──────────────────────────────────────────────────────────────────────────────
// CancelTransaction
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelTransaction_VentaRestauraStock(t *testing.T) {
	runner, l := newFixture("", productP1(), productP2())

	txn, err := l.RecordSale(context.Background(), ledger.SaleInput{
		Actor: testActor,
		Items: []ledger.ItemInput{
			{ProductID: "p1", Quantity: dec("4"), UnitPrice: dec("5")},
			{ProductID: "p2", Quantity: dec("2"), UnitPrice: dec("6")},
		},
	})
	require.NoError(t, err)

	err = l.CancelTransaction(context.Background(), txn.ID, testActor)
	require.NoError(t, err)

	assert.True(t, runner.stockOf(t, "p1").Equal(dec("10")), "registrar+cancelar debe ser neutro")
	assert.True(t, runner.stockOf(t, "p2").Equal(dec("5")))
	assert.False(t, runner.hasTransaction(txn.ID), "la transacción deja de existir")
}

func TestCancelTransaction_CompraReviertStock(t *testing.T) {
	runner, l := newFixture("", productP1())

	txn, err := l.RecordPurchase(context.Background(), ledger.PurchaseInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("8"), UnitPrice: dec("2")}},
	})
	require.NoError(t, err)
	require.True(t, runner.stockOf(t, "p1").Equal(dec("18")))

	require.NoError(t, l.CancelTransaction(context.Background(), txn.ID, testActor))
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("10")))
	assert.False(t, runner.hasTransaction(txn.ID))
}

func TestCancelTransaction_CompraYaRevendidaSeRechaza(t *testing.T) {
	// Compra de 8 (stock 18), luego venta de 15 (stock 3). Cancelar la compra
	// dejaría el stock en -5: se rechaza para preservar stock >= 0.
	runner, l := newFixture("", productP1())

	purchase, err := l.RecordPurchase(context.Background(), ledger.PurchaseInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("8"), UnitPrice: dec("2")}},
	})
	require.NoError(t, err)

	_, err = l.RecordSale(context.Background(), ledger.SaleInput{
		Actor: testActor,
		Items: []ledger.ItemInput{{ProductID: "p1", Quantity: dec("15"), UnitPrice: dec("5")}},
	})
	require.NoError(t, err)

	err = l.CancelTransaction(context.Background(), purchase.ID, testActor)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, runner.stockOf(t, "p1").Equal(dec("3")), "la cancelación rechazada no toca el stock")
	assert.True(t, runner.hasTransaction(purchase.ID), "la compra sigue registrada")
}

func TestCancelTransaction_AjusteNoSeCancela(t *testing.T) {
	runner, l := newFixture("", productP1())

	txn, err := l.RecordAdjustment(context.Background(), ledger.AdjustmentInput{
		Actor:     testActor,
		ProductID: "p1",
		Direction: ledger.DirectionDecrease,
		Quantity:  dec("2"),
		Reason:    "recuento",
	})
	require.NoError(t, err)

	err = l.CancelTransaction(context.Background(), txn.ID, testActor)
	require.ErrorIs(t, err, domain.ErrNotCancellable)
	assert.True(t, runner.hasTransaction(txn.ID))
	assert.True(t, runner.stockOf(t, "p1").Equal(dec("8")))
}

func TestCancelTransaction_Inexistente(t *testing.T) {
	_, l := newFixture("", productP1())

	err := l.CancelTransaction(context.Background(), "nope", testActor)
	require.ErrorIs(t, err, domain.ErrTransactionNotFound)
}
