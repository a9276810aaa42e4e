package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/steelfabpro/inventory-service/internal/application/inventory"
	"github.com/steelfabpro/inventory-service/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MaterialUC *usecase.MaterialUseCase
	SupplierUC *usecase.SupplierUseCase
	StockUC    *inventory.StockUseCase
	AuditUC    *inventory.AuditUseCase
	AlertUC    *inventory.AlertUseCase
	JWTSecret  string
}

// Router registra las rutas de la API. Todas las rutas van protegidas con
// Bearer Token; las operaciones que mutan stock o resuelven alertas exigen
// además rol de admin o almacenista.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	mutador := RequireRole("admin", "almacenista")

	// Suppliers
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", mutador, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Materials (catálogo)
	materials := api.Group("/materials")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materials.Post("/", mutador, materialHandler.Register)
	materials.Get("/", materialHandler.List)
	materials.Get("/:id", materialHandler.GetByID)
	materials.Put("/:id/min-stock", mutador, materialHandler.UpdateMinStock)

	// Movimientos y stock
	inventoryHandler := NewInventoryHandler(deps.StockUC)
	materials.Post("/:id/stock-in", mutador, inventoryHandler.StockIn)
	materials.Post("/:id/stock-out", mutador, inventoryHandler.StockOut)
	materials.Get("/:id/stock", inventoryHandler.CurrentStock)
	materials.Get("/:id/movements", inventoryHandler.ListMovements)

	// Bitácora
	auditHandler := NewAuditHandler(deps.AuditUC)
	materials.Get("/:id/audit", auditHandler.ListByMaterial)
	materials.Post("/:id/audit", mutador, auditHandler.Annotate)

	// Alertas
	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Put("/:id/resolve", mutador, alertHandler.Resolve)
}
