// Package scheduler ejecuta tareas programadas del negocio.
// Por ahora una sola: el resumen diario de productos bajos de stock.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jhoicas/fruteria-api/internal/domain/repository"
	"github.com/jhoicas/fruteria-api/pkg/logger"
)

// Scheduler agenda tareas con expresiones cron estándar (5 campos).
type Scheduler struct {
	cron        *cron.Cron
	productRepo repository.ProductRepository
	reportRepo  repository.ReportRepository
	digestSpec  string
	log         *logger.Logger
}

// New construye el scheduler. digestSpec es la expresión cron del resumen
// diario; vacío usa "0 7 * * *" (todos los días a las 07:00).
func New(productRepo repository.ProductRepository, reportRepo repository.ReportRepository, digestSpec string, log *logger.Logger) *Scheduler {
	if digestSpec == "" {
		digestSpec = "0 7 * * *"
	}
	return &Scheduler{
		cron:        cron.New(),
		productRepo: productRepo,
		reportRepo:  reportRepo,
		digestSpec:  digestSpec,
		log:         log,
	}
}

// Start registra las tareas y arranca el cron en su propia goroutine.
func (s *Scheduler) Start() {
	if _, err := s.cron.AddFunc(s.digestSpec, s.lowStockDigest); err != nil {
		s.log.Error().Err(err).Str("spec", s.digestSpec).Msg("No se pudo agendar el resumen de stock bajo")
		return
	}
	s.log.Info().Str("spec", s.digestSpec).Msg("Scheduler iniciado")
	s.cron.Start()
}

// Stop detiene el cron y espera a que terminen las tareas en curso.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("Scheduler detenido")
}

// lowStockDigest registra en el log un resumen de los productos por debajo
// de su umbral, junto con las ventas de ayer.
func (s *Scheduler) lowStockDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	low, err := s.productRepo.ListLowStock()
	if err != nil {
		s.log.Error().Err(err).Msg("Resumen de stock bajo: consulta fallida")
		return
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	yesterday, err := s.reportRepo.GetSalesSummary(ctx, todayStart.AddDate(0, 0, -1), todayStart)
	if err != nil {
		s.log.Error().Err(err).Msg("Resumen de stock bajo: ventas de ayer fallidas")
		return
	}

	ev := s.log.Info().
		Int("productos_bajos", len(low)).
		Int("ventas_ayer", yesterday.Count).
		Str("ingresos_ayer", yesterday.Revenue.StringFixed(2))
	ev.Msg("Resumen diario de inventario")

	for _, p := range low {
		s.log.Warn().
			Str("producto", p.Name).
			Str("stock", p.Stock.String()).
			Str("umbral", p.LowStockThreshold.String()).
			Msg("Producto bajo de stock")
	}
}
