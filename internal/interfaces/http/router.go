package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/fruteria-api/internal/application/auth"
	"github.com/jhoicas/fruteria-api/internal/application/ledger"
	"github.com/jhoicas/fruteria-api/internal/application/recommendation"
	"github.com/jhoicas/fruteria-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.AuthUseCase
	ProductUC        *usecase.ProductUseCase
	StockLedger      *ledger.StockLedger
	TransactionUC    *usecase.TransactionUseCase
	EmployeeUC       *usecase.EmployeeUseCase
	ReportUC         *usecase.ReportUseCase
	RecommendationUC *recommendation.OrderRecommendationUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireAdmin(), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.ListLowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireAdmin(), productHandler.Update)
	products.Delete("/:id", RequireAdmin(), productHandler.Delete)

	// Transactions: el ledger (protegido)
	transactions := protected.Group("/transactions")
	transactionHandler := NewTransactionHandler(deps.StockLedger, deps.TransactionUC)
	transactions.Post("/sales", transactionHandler.RecordSale)
	transactions.Post("/purchases", transactionHandler.RecordPurchase)
	transactions.Post("/adjustments", transactionHandler.RecordAdjustment)
	transactions.Get("/", transactionHandler.List)
	transactions.Get("/:id", transactionHandler.GetByID)
	transactions.Delete("/:id", transactionHandler.Cancel)

	// Employees (protegido, solo admin)
	employees := protected.Group("/employees", RequireAdmin())
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Put("/:id", employeeHandler.Update)

	// Reports (protegido; actividad por empleado solo admin)
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/sales/pdf", reportHandler.SalesPDF)
	reports.Get("/employees", RequireAdmin(), reportHandler.Employees)

	// Recommendations (protegido, solo admin: dispara una llamada externa de pago)
	recommendations := protected.Group("/recommendations", RequireAdmin())
	recommendationHandler := NewRecommendationHandler(deps.RecommendationUC)
	recommendations.Get("/orders", recommendationHandler.Orders)
}
