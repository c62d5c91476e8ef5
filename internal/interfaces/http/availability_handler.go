package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/application/inventory"
	"github.com/jhoicas/bodega-wms/internal/domain"
)

// AvailabilityHandler expone las vistas de lectura: resumen del item, ATP,
// disponibilidad por presentación, backorder y auditoría del libro.
type AvailabilityHandler struct {
	availability *inventory.AvailabilityUseCase
	history      *inventory.HistoryUseCase
}

// NewAvailabilityHandler construye el handler.
func NewAvailabilityHandler(availability *inventory.AvailabilityUseCase, history *inventory.HistoryUseCase) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, history: history}
}

// ItemSummary godoc
// @Summary      Resumen agregado del item (contadores, ATP, presentaciones)
// @Tags         availability
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  dto.ItemSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/summary [get]
func (h *AvailabilityHandler) ItemSummary(c *fiber.Ctx) error {
	summary, err := h.availability.GetItemSummary(c.Context(), c.Params("id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(summary)
}

// ItemSummaryBySku godoc
// @Summary      Resumen del item por SKU base
// @Tags         availability
// @Produce      json
// @Param        sku  path  string  true  "SKU base"
// @Success      200  {object}  dto.ItemSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/sku/{sku}/summary [get]
func (h *AvailabilityHandler) ItemSummaryBySku(c *fiber.Ctx) error {
	summary, err := h.availability.GetItemSummaryBySku(c.Context(), c.Params("sku"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(summary)
}

// LookupByBarcode godoc
// @Summary      Resumen del item desde un código de barras escaneado
// @Tags         availability
// @Produce      json
// @Param        code  path  string  true  "código de barras de la presentación"
// @Success      200  {object}  dto.ItemSummaryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/barcodes/{code}/summary [get]
func (h *AvailabilityHandler) LookupByBarcode(c *fiber.Ctx) error {
	summary, err := h.availability.LookupByBarcode(c.Context(), c.Params("code"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(summary)
}

// SiblingVariants godoc
// @Summary      Presentaciones hermanas de una variante con disponibilidad
// @Tags         availability
// @Produce      json
// @Param        id  path  string  true  "ID de la variante"
// @Success      200  {array}  dto.VariantAvailabilityDTO
// @Router       /api/inventory/variants/{id}/siblings [get]
func (h *AvailabilityHandler) SiblingVariants(c *fiber.Ctx) error {
	siblings, err := h.availability.SiblingAvailability(c.Context(), c.Params("id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(siblings)
}

// BackorderStatus godoc
// @Summary      Estado de backorder derivado del ATP
// @Tags         availability
// @Produce      json
// @Param        id  path  string  true  "ID del item"
// @Success      200  {object}  dto.BackorderStatusDTO
// @Router       /api/inventory/items/{id}/backorder-status [get]
func (h *AvailabilityHandler) BackorderStatus(c *fiber.Ctx) error {
	status, err := h.availability.CheckBackorderStatus(c.Context(), c.Params("id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(status)
}

// ItemTransactions godoc
// @Summary      Movimientos del item (más recientes primero)
// @Tags         audit
// @Produce      json
// @Param        id      path   string  true   "ID del item"
// @Param        from    query  string  false  "RFC3339"
// @Param        to      query  string  false  "RFC3339"
// @Param        limit   query  int     false  "máx 500, default 100"
// @Param        offset  query  int     false  "default 0"
// @Success      200  {array}  entity.InventoryTransaction
// @Router       /api/inventory/items/{id}/transactions [get]
func (h *AvailabilityHandler) ItemTransactions(c *fiber.Ctx) error {
	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido, se espera RFC3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido, se espera RFC3339"})
		}
		to = &t
	}
	txs, err := h.history.ItemHistory(c.Context(), c.Params("id"), from, to, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(txs)
}

// OrderTransactions godoc
// @Summary      Movimientos asociados a una orden
// @Tags         audit
// @Produce      json
// @Param        id  path  string  true  "ID de la orden"
// @Success      200  {array}  entity.InventoryTransaction
// @Router       /api/inventory/orders/{id}/transactions [get]
func (h *AvailabilityHandler) OrderTransactions(c *fiber.Ctx) error {
	txs, err := h.history.OrderHistory(c.Context(), c.Params("id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(txs)
}

// TransactionByID godoc
// @Summary      Detalle de un movimiento del libro
// @Tags         audit
// @Produce      json
// @Param        id  path  string  true  "ID del movimiento"
// @Success      200  {object}  entity.InventoryTransaction
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions/{id} [get]
func (h *AvailabilityHandler) TransactionByID(c *fiber.Ctx) error {
	tx, err := h.history.GetTransaction(c.Context(), c.Params("id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(tx)
}

// ReferenceTransactions godoc
// @Summary      Movimientos por documento de referencia
// @Tags         audit
// @Produce      json
// @Param        reference_type  query  string  true  "tipo de documento"
// @Param        reference_id    query  string  true  "id del documento"
// @Success      200  {array}  entity.InventoryTransaction
// @Router       /api/inventory/transactions [get]
func (h *AvailabilityHandler) ReferenceTransactions(c *fiber.Ctx) error {
	txs, err := h.history.ReferenceHistory(c.Context(), c.Query("reference_type"), c.Query("reference_id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(txs)
}

// Reconciliation godoc
// @Summary      Reconciliar libro vs contador on-hand de (item, ubicación)
// @Tags         audit
// @Produce      json
// @Param        id           path   string  true  "ID del item"
// @Param        location_id  query  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.ReconciliationDTO
// @Router       /api/inventory/items/{id}/reconciliation [get]
func (h *AvailabilityHandler) Reconciliation(c *fiber.Ctx) error {
	result, err := h.history.ReconcileLocation(c.Context(), c.Params("id"), c.Query("location_id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item y location_id son obligatorios"})
		}
		return handleMovementError(c, err)
	}
	return c.JSON(result)
}
