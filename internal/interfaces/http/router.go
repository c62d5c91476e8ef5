package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-wms/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	MovementUC      *inventory.StockMovementUseCase
	AvailabilityUC  *inventory.AvailabilityUseCase
	HistoryUC       *inventory.HistoryUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	CapacityUC      *inventory.CapacityUseCase
}

// Router registra las rutas de la API. No hay middleware de autenticación:
// el servicio corre detrás del gateway, que resuelve identidad y permisos.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Movimientos de inventario (escritura)
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.MovementUC)
	inv.Post("/reservations", inventoryHandler.Reserve)
	inv.Delete("/reservations", inventoryHandler.Release)
	inv.Post("/picks", inventoryHandler.Pick)
	inv.Post("/shipments", inventoryHandler.Ship)
	inv.Post("/receipts", inventoryHandler.Receive)
	inv.Post("/adjustments", inventoryHandler.Adjust)
	inv.Post("/backorders", inventoryHandler.RecordBackorder)
	inv.Delete("/backorders", inventoryHandler.ClearBackorder)

	// Disponibilidad y auditoría (lectura)
	availabilityHandler := NewAvailabilityHandler(deps.AvailabilityUC, deps.HistoryUC)
	inv.Get("/items/sku/:sku/summary", availabilityHandler.ItemSummaryBySku)
	inv.Get("/barcodes/:code/summary", availabilityHandler.LookupByBarcode)
	inv.Get("/variants/:id/siblings", availabilityHandler.SiblingVariants)
	inv.Get("/items/:id/summary", availabilityHandler.ItemSummary)
	inv.Get("/items/:id/backorder-status", availabilityHandler.BackorderStatus)
	inv.Get("/items/:id/transactions", availabilityHandler.ItemTransactions)
	inv.Get("/items/:id/reconciliation", availabilityHandler.Reconciliation)
	inv.Get("/orders/:id/transactions", availabilityHandler.OrderTransactions)
	inv.Get("/transactions", availabilityHandler.ReferenceTransactions)
	inv.Get("/transactions/:id", availabilityHandler.TransactionByID)

	// Reposición
	repl := api.Group("/replenishment")
	replenishmentHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	repl.Get("/review", replenishmentHandler.Review)
	repl.Post("/moves", replenishmentHandler.Move)
	repl.Get("/worksheet", replenishmentHandler.Worksheet)

	// Cubicaje
	capGroup := api.Group("/capacity")
	capacityHandler := NewCapacityHandler(deps.CapacityUC)
	capGroup.Get("/locations/:id", capacityHandler.LocationOccupancy)
	capGroup.Get("/overflow-bin", capacityHandler.OverflowBin)
}
