package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/application/inventory"
)

// ReplenishmentHandler expone la lista de revisión de reposición, la hoja
// imprimible y la ejecución de movimientos bulk → forward pick.
type ReplenishmentHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewReplenishmentHandler construye el handler.
func NewReplenishmentHandler(replenishment *inventory.ReplenishmentUseCase) *ReplenishmentHandler {
	return &ReplenishmentHandler{replenishment: replenishment}
}

// Review godoc
// @Summary      Ubicaciones por debajo de su mínimo configurado
// @Tags         replenishment
// @Produce      json
// @Param        warehouse_id  query  string  false  "limitar a una bodega"
// @Success      200  {array}  dto.ReplenishmentReviewItemDTO
// @Router       /api/replenishment/review [get]
func (h *ReplenishmentHandler) Review(c *fiber.Ctx) error {
	items, err := h.replenishment.ReviewList(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(items)
}

// Move godoc
// @Summary      Ejecutar una reposición hacia la ubicación destino
// @Tags         replenishment
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReplenishRequest  true  "item, ubicación destino, cantidad solicitada"
// @Success      200   {object}  dto.ReplenishResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/replenishment/moves [post]
func (h *ReplenishmentHandler) Move(c *fiber.Ctx) error {
	var in dto.ReplenishRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	moved, err := h.replenishment.ReplenishLocation(c.Context(), in.InventoryItemID, in.TargetLocationID, in.RequestedUnits, in.UserID)
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(dto.ReplenishResponse{MovedUnits: moved})
}

// Worksheet godoc
// @Summary      Hoja de reposición imprimible (PDF)
// @Tags         replenishment
// @Produce      application/pdf
// @Param        warehouse_id  query  string  false  "limitar a una bodega"
// @Success      200  {file}  binary
// @Router       /api/replenishment/worksheet [get]
func (h *ReplenishmentHandler) Worksheet(c *fiber.Ctx) error {
	pdfBytes, err := h.replenishment.Worksheet(c.Context(), c.Query("warehouse_id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="hoja-reposicion.pdf"`)
	return c.Send(pdfBytes)
}
