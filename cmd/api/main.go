package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/steelfabpro/inventory-service/internal/application/inventory"
	"github.com/steelfabpro/inventory-service/internal/application/usecase"
	"github.com/steelfabpro/inventory-service/internal/domain/repository"
	"github.com/steelfabpro/inventory-service/internal/infrastructure/memory"
	"github.com/steelfabpro/inventory-service/internal/infrastructure/postgres"
	httpRouter "github.com/steelfabpro/inventory-service/internal/interfaces/http"
	"github.com/steelfabpro/inventory-service/pkg/config"
	"github.com/steelfabpro/inventory-service/pkg/logger"
)

// repos agrupa los puertos de persistencia que arma el driver elegido.
type repos struct {
	txRunner     inventory.TxRunner
	materialRepo repository.MaterialRepository
	supplierRepo repository.SupplierRepository
	stockRepo    repository.StockRepository
	movRepo      repository.StockMovementRepository
	auditRepo    repository.AuditRepository
	alertRepo    repository.AlertRepository
}

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var r repos
	switch cfg.Store.Driver {
	case "memory":
		// Driver efímero para desarrollo local; los datos viven en el proceso.
		store := memory.NewStore()
		r = repos{
			txRunner:     memory.NewTxRunner(store),
			materialRepo: memory.NewMaterialRepository(store),
			supplierRepo: memory.NewSupplierRepository(store),
			stockRepo:    memory.NewStockRepository(store),
			movRepo:      memory.NewStockMovementRepository(store),
			auditRepo:    memory.NewAuditRepository(store),
			alertRepo:    memory.NewAlertRepository(store),
		}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		r = repos{
			txRunner:     postgres.NewTxRunner(pool),
			materialRepo: postgres.NewMaterialRepository(pool),
			supplierRepo: postgres.NewSupplierRepository(pool),
			stockRepo:    postgres.NewStockRepository(pool),
			movRepo:      postgres.NewStockMovementRepository(pool),
			auditRepo:    postgres.NewAuditRepository(pool),
			alertRepo:    postgres.NewAlertRepository(pool),
		}
	}

	stockUC := inventory.NewStockUseCase(r.txRunner, r.materialRepo, r.stockRepo, r.movRepo)
	alertUC := inventory.NewAlertUseCase(r.alertRepo)
	auditUC := inventory.NewAuditUseCase(r.auditRepo, r.materialRepo)
	materialUC := usecase.NewMaterialUseCase(r.materialRepo, r.supplierRepo)
	supplierUC := usecase.NewSupplierUseCase(r.supplierRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs. El spec lo genera
	// `swag init` fuera del build; si no está, el middleware hace panic, así
	// que solo se registra cuando el archivo existe.
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "SteelFab Inventory API",
		}))
	} else {
		log.Warn().Msg("docs/swagger.json no encontrado, Swagger UI deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MaterialUC: materialUC,
		SupplierUC: supplierUC,
		StockUC:    stockUC,
		AuditUC:    auditUC,
		AlertUC:    alertUC,
		JWTSecret:  cfg.JWT.Secret,
	})

	// Reconciliación periódica: re-suma el libro por material y repara la fila
	// de total si hay deriva.
	reconcileCtx, stopReconcile := context.WithCancel(ctx)
	defer stopReconcile()
	if cfg.Store.ReconcileIntervalMin > 0 {
		go func() {
			ticker := time.NewTicker(time.Duration(cfg.Store.ReconcileIntervalMin) * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-reconcileCtx.Done():
					return
				case <-ticker.C:
					if err := stockUC.ReconcileAll(reconcileCtx); err != nil {
						log.Error().Err(err).Msg("pasada de reconciliación")
					}
				}
			}
		}()
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
	stopReconcile()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
