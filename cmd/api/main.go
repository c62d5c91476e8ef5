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
	"github.com/jhoicas/bodega-wms/internal/application/inventory"
	infrapdf "github.com/jhoicas/bodega-wms/internal/infrastructure/pdf"
	"github.com/jhoicas/bodega-wms/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bodega-wms/internal/interfaces/http"
	"github.com/jhoicas/bodega-wms/pkg/config"
	"github.com/jhoicas/bodega-wms/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
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

	levelRepo := postgres.NewInventoryLevelRepository(pool)
	ledgerRepo := postgres.NewInventoryTransactionRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	locationRepo := postgres.NewWarehouseLocationRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	worksheetGen := infrapdf.NewMarotoWorksheetGenerator()

	movementUC := inventory.NewStockMovementUseCase(txRunner)
	availabilityUC := inventory.NewAvailabilityUseCase(levelRepo, catalogRepo)
	historyUC := inventory.NewHistoryUseCase(ledgerRepo, levelRepo)
	replenishmentUC := inventory.NewReplenishmentUseCase(txRunner, warehouseRepo, locationRepo, levelRepo, worksheetGen)
	capacityUC := inventory.NewCapacityUseCase(levelRepo, locationRepo, catalogRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Bodega WMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		MovementUC:      movementUC,
		AvailabilityUC:  availabilityUC,
		HistoryUC:       historyUC,
		ReplenishmentUC: replenishmentUC,
		CapacityUC:      capacityUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
