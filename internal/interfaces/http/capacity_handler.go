package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/application/inventory"
)

// CapacityHandler expone ocupación cúbica y la selección de bin overflow.
type CapacityHandler struct {
	capacity *inventory.CapacityUseCase
}

// NewCapacityHandler construye el handler.
func NewCapacityHandler(capacity *inventory.CapacityUseCase) *CapacityHandler {
	return &CapacityHandler{capacity: capacity}
}

// LocationOccupancy godoc
// @Summary      Ocupación cúbica de una ubicación
// @Tags         capacity
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.LocationOccupancyDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/capacity/locations/{id} [get]
func (h *CapacityHandler) LocationOccupancy(c *fiber.Ctx) error {
	report, err := h.capacity.LocationOccupancy(c.Context(), c.Params("id"))
	if err != nil {
		return handleMovementError(c, err)
	}
	return c.JSON(report)
}

// OverflowBin godoc
// @Summary      Bin overflow con mayor capacidad restante
// @Tags         capacity
// @Produce      json
// @Param        warehouse_id  query  string  true   "bodega donde buscar"
// @Param        variant_id    query  string  false  "presentación a colocar (habilita max_units)"
// @Param        min_units     query  int     false  "mínimo de unidades que deben caber"
// @Success      200  {object}  dto.OverflowBinDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/capacity/overflow-bin [get]
func (h *CapacityHandler) OverflowBin(c *fiber.Ctx) error {
	bin, err := h.capacity.FindOverflowBin(
		c.Context(),
		c.Query("warehouse_id"),
		c.Query("variant_id"),
		int64(c.QueryInt("min_units", 0)),
	)
	if err != nil {
		return handleMovementError(c, err)
	}
	if bin == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NO_BIN", Message: "sin bins overflow candidatos en la bodega"})
	}
	return c.JSON(bin)
}
