package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/fruteria-api/internal/application/auth"
	"github.com/jhoicas/fruteria-api/internal/application/ledger"
	"github.com/jhoicas/fruteria-api/internal/application/recommendation"
	"github.com/jhoicas/fruteria-api/internal/application/usecase"
	infraai "github.com/jhoicas/fruteria-api/internal/infrastructure/ai"
	infrapdf "github.com/jhoicas/fruteria-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fruteria-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/fruteria-api/internal/interfaces/http"
	"github.com/jhoicas/fruteria-api/internal/scheduler"
	"github.com/jhoicas/fruteria-api/pkg/config"
	"github.com/jhoicas/fruteria-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	transactionRepo := postgres.NewTransactionRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	stockLedger := ledger.NewStockLedger(txRunner, ledger.ReasonPolicy(cfg.Ledger.ReasonPolicy))
	productUC := usecase.NewProductUseCase(productRepo)
	transactionUC := usecase.NewTransactionUseCase(transactionRepo)
	employeeUC := usecase.NewEmployeeUseCase(userRepo)

	pdfGenerator := infrapdf.NewMarotoReportGenerator(cfg.App.Name)
	reportUC := usecase.NewReportUseCase(reportRepo, productRepo, pdfGenerator)

	anthropicSvc := infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.Model)
	recommendationUC := recommendation.NewOrderRecommendationUseCase(anthropicSvc, reportRepo, productRepo)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:           authUC,
		ProductUC:        productUC,
		StockLedger:      stockLedger,
		TransactionUC:    transactionUC,
		EmployeeUC:       employeeUC,
		ReportUC:         reportUC,
		RecommendationUC: recommendationUC,
		JWTSecret:        cfg.JWT.Secret,
	})

	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(productRepo, reportRepo, cfg.Scheduler.LowStockDigest, log.Component("scheduler"))
		sched.Start()
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	if sched != nil {
		sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
