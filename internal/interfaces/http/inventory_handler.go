package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/application/inventory"
	"github.com/jhoicas/bodega-wms/internal/domain"
)

// InventoryHandler expone las operaciones del motor de reservas y
// transiciones de estado. La autenticación/RBAC vive en el gateway, aguas
// arriba de este servicio.
type InventoryHandler struct {
	movements *inventory.StockMovementUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(movements *inventory.StockMovementUseCase) *InventoryHandler {
	return &InventoryHandler{movements: movements}
}

// movementResponse traduce el booleano señalizado a la respuesta HTTP:
// aplicado → 201; fila de nivel inexistente → 200 con applied=false para que
// el caller decida backorder o bin alterno.
func movementResponse(c *fiber.Ctx, applied bool, notAppliedMsg string) error {
	if !applied {
		return c.Status(fiber.StatusOK).JSON(dto.MovementResponse{Applied: false, Message: notAppliedMsg})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{Applied: true})
}

func handleMovementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrMissingReason):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_REASON", Message: "el ajuste requiere un motivo"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// Reserve godoc
// @Summary      Reservar stock para una orden
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "item, ubicación, base_qty (unidades base)"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [post]
func (h *InventoryHandler) Reserve(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	applied, err := h.movements.ReserveForOrder(c.Context(), in)
	if err != nil {
		return handleMovementError(c, err)
	}
	return movementResponse(c, applied, "sin fila de nivel en esa ubicación")
}

// Release godoc
// @Summary      Liberar una reserva
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "item, ubicación, base_qty"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/reservations [delete]
func (h *InventoryHandler) Release(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.movements.ReleaseReservation(c.Context(), in); err != nil {
		return handleMovementError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.MovementResponse{Applied: true})
}

// Pick godoc
// @Summary      Registrar pick (bajar stock al carro)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "item, ubicación, base_qty"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/picks [post]
func (h *InventoryHandler) Pick(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	applied, err := h.movements.PickItem(c.Context(), in)
	if err != nil {
		return handleMovementError(c, err)
	}
	return movementResponse(c, applied, "sin fila de nivel en esa ubicación")
}

// Ship godoc
// @Summary      Registrar despacho
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "item, ubicación, base_qty"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/shipments [post]
func (h *InventoryHandler) Ship(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	applied, err := h.movements.RecordShipment(c.Context(), in)
	if err != nil {
		return handleMovementError(c, err)
	}
	return movementResponse(c, applied, "sin fila de nivel en esa ubicación")
}

// Receive godoc
// @Summary      Recibir inventario
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveRequest  true  "item, ubicación, base_qty; variant_id + variant_qty opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.movements.ReceiveInventory(c.Context(), in); err != nil {
		return handleMovementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{Applied: true})
}

// Adjust godoc
// @Summary      Ajustar inventario (conteo cíclico, merma)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustRequest  true  "item, ubicación, delta con signo, motivo obligatorio"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.movements.AdjustInventory(c.Context(), in); err != nil {
		return handleMovementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{Applied: true})
}

// RecordBackorder godoc
// @Summary      Registrar backorder
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "item, ubicación, base_qty"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/backorders [post]
func (h *InventoryHandler) RecordBackorder(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.movements.RecordBackorder(c.Context(), in); err != nil {
		return handleMovementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{Applied: true})
}

// ClearBackorder godoc
// @Summary      Limpiar backorder (manual)
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.MovementRequest  true  "item, ubicación, base_qty"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/backorders [delete]
func (h *InventoryHandler) ClearBackorder(c *fiber.Ctx) error {
	var in dto.MovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.movements.ClearBackorder(c.Context(), in); err != nil {
		return handleMovementError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(dto.MovementResponse{Applied: true})
}
