package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/domain"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

// StockMovementUseCase es el motor de reservas y transiciones de estado:
// reserve, release, pick, ship, receive, adjust y backorder. Cada operación
// ejecuta exactamente una mutación compuesta de contadores y agrega exactamente
// una fila al libro, ambas dentro de la misma transacción (TxRunner).
//
// Las cantidades van siempre en unidades base; el caller convierte desde
// presentación (ConvertToBaseUnits) antes de llamar. Stock insuficiente NO es
// error: las reservas y picks pueden llevar el ATP a negativo y el faltante
// aflora después vía CheckBackorderStatus (política "aceptar siempre la
// demanda, conciliar en físico").
type StockMovementUseCase struct {
	txRunner TxRunner
}

// NewStockMovementUseCase construye el motor de movimientos.
func NewStockMovementUseCase(txRunner TxRunner) *StockMovementUseCase {
	return &StockMovementUseCase{txRunner: txRunner}
}

func levelKey(in dto.MovementRequest) repository.LevelKey {
	return repository.LevelKey{
		InventoryItemID:     in.InventoryItemID,
		WarehouseLocationID: in.LocationID,
		VariantID:           in.VariantID,
	}
}

func validateMovement(in dto.MovementRequest) error {
	if in.InventoryItemID == "" || in.LocationID == "" || in.BaseQty <= 0 {
		return domain.ErrInvalidInput
	}
	return nil
}

func newTransaction(in dto.MovementRequest, txType string, qty, delta int64, source, target string) *entity.InventoryTransaction {
	loc := in.LocationID
	return &entity.InventoryTransaction{
		ID:              uuid.New().String(),
		InventoryItemID: in.InventoryItemID,
		TransactionType: txType,
		BaseQty:         qty,
		BaseQtyDelta:    delta,
		SourceState:     source,
		TargetState:     target,
		ToLocationID:    &loc,
		OrderID:         in.OrderID,
		OrderItemID:     in.OrderItemID,
		ReferenceType:   in.ReferenceType,
		ReferenceID:     in.ReferenceID,
		Provenance:      entity.ProvenanceExplicit,
		Notes:           in.Notes,
		CreatedBy:       in.UserID,
		CreatedAt:       time.Now(),
	}
}

// ReserveForOrder compromete stock para una orden: reserved += N.
// Devuelve false si no existe fila de nivel en esa ubicación (el caller decide
// backorder o bin alterno). Deliberadamente NO verifica N ≤ disponible.
func (uc *StockMovementUseCase) ReserveForOrder(ctx context.Context, in dto.MovementRequest) (bool, error) {
	if err := validateMovement(in); err != nil {
		return false, err
	}
	applied := false
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		ok, err := levelRepo.AddReserved(ctx, levelKey(in), in.BaseQty)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		applied = true
		tx := newTransaction(in, entity.TransactionTypeReserve, in.BaseQty, 0,
			entity.StockStateOnHand, entity.StockStateCommitted)
		return ledgerRepo.Append(ctx, tx)
	})
	return applied, err
}

// ReleaseReservation libera una reserva: reserved −= N. No-op silencioso (sin
// fila del libro) si la fila de nivel no existe.
func (uc *StockMovementUseCase) ReleaseReservation(ctx context.Context, in dto.MovementRequest) error {
	if err := validateMovement(in); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		ok, err := levelRepo.ReleaseReserved(ctx, levelKey(in), in.BaseQty)
		if err != nil || !ok {
			return err
		}
		tx := newTransaction(in, entity.TransactionTypeUnreserve, in.BaseQty, 0,
			entity.StockStateCommitted, entity.StockStateOnHand)
		return ledgerRepo.Append(ctx, tx)
	})
}

// PickItem baja stock al carro del picker: on_hand −= N, picked += N y
// reserved −= min(reserved, N), todo en una sola sentencia del repositorio.
// Soporta pick sin reserva previa; cuando la reserva no cubrió N completo la
// transición queda con procedencia implicit. Devuelve false si no hay fila.
func (uc *StockMovementUseCase) PickItem(ctx context.Context, in dto.MovementRequest) (bool, error) {
	if err := validateMovement(in); err != nil {
		return false, err
	}
	applied := false
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		released, ok, err := levelRepo.ApplyPick(ctx, levelKey(in), in.BaseQty)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		applied = true
		tx := newTransaction(in, entity.TransactionTypePick, in.BaseQty, -in.BaseQty,
			entity.StockStateCommitted, entity.StockStatePicked)
		if released < in.BaseQty {
			// Pick no cubierto (total o parcialmente) por reserva previa.
			tx.SourceState = entity.StockStateOnHand
			tx.Provenance = entity.ProvenanceImplicit
		}
		return ledgerRepo.Append(ctx, tx)
	})
	return applied, err
}

// RecordShipment registra el despacho: picked −= N; las unidades salen del
// inventario rastreado. Sin guarda contra negativos: un descuadre aflora en
// reconciliación. Devuelve false si no hay fila de nivel.
func (uc *StockMovementUseCase) RecordShipment(ctx context.Context, in dto.MovementRequest) (bool, error) {
	if err := validateMovement(in); err != nil {
		return false, err
	}
	applied := false
	err := uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		ok, err := levelRepo.ApplyShipment(ctx, levelKey(in), in.BaseQty)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		applied = true
		tx := newTransaction(in, entity.TransactionTypeShip, in.BaseQty, 0,
			entity.StockStatePicked, entity.StockStateShipped)
		return ledgerRepo.Append(ctx, tx)
	})
	return applied, err
}

// ReceiveInventory ingresa stock desde fuera del modelo: on_hand += N (crea la
// fila de nivel si no existe) y, con variante indicada, variant_qty += conteo
// de la presentación.
func (uc *StockMovementUseCase) ReceiveInventory(ctx context.Context, in dto.ReceiveRequest) error {
	if err := validateMovement(in.MovementRequest); err != nil {
		return err
	}
	if in.VariantQty < 0 || (in.VariantQty > 0 && in.VariantID == nil) {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		if err := levelRepo.UpsertAddOnHand(ctx, levelKey(in.MovementRequest), in.BaseQty, in.VariantQty); err != nil {
			return err
		}
		tx := newTransaction(in.MovementRequest, entity.TransactionTypeReceipt, in.BaseQty, in.BaseQty,
			entity.StockStateExternal, entity.StockStateOnHand)
		return ledgerRepo.Append(ctx, tx)
	})
}

// AdjustInventory aplica una corrección con signo sobre on_hand, siempre con
// motivo legible (aprobación de conteo cíclico, merma, daño).
func (uc *StockMovementUseCase) AdjustInventory(ctx context.Context, in dto.AdjustRequest) error {
	if in.InventoryItemID == "" || in.LocationID == "" || in.Delta == 0 {
		return domain.ErrInvalidInput
	}
	if in.Reason == "" {
		return domain.ErrMissingReason
	}
	key := repository.LevelKey{
		InventoryItemID:     in.InventoryItemID,
		WarehouseLocationID: in.LocationID,
		VariantID:           in.VariantID,
	}
	qty := in.Delta
	if qty < 0 {
		qty = -qty
	}
	return uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		if err := levelRepo.UpsertAddOnHand(ctx, key, in.Delta, 0); err != nil {
			return err
		}
		loc := in.LocationID
		tx := &entity.InventoryTransaction{
			ID:              uuid.New().String(),
			InventoryItemID: in.InventoryItemID,
			TransactionType: entity.TransactionTypeAdjustment,
			BaseQty:         qty,
			BaseQtyDelta:    in.Delta,
			SourceState:     entity.StockStateOnHand,
			TargetState:     entity.StockStateOnHand,
			ToLocationID:    &loc,
			ReferenceType:   in.ReferenceType,
			ReferenceID:     in.ReferenceID,
			Provenance:      entity.ProvenanceExplicit,
			Notes:           in.Reason,
			CreatedBy:       in.UserID,
			CreatedAt:       time.Now(),
		}
		return ledgerRepo.Append(ctx, tx)
	})
}

// RecordBackorder registra demanda no cubierta: backorder += N. Contador
// independiente; no se reconcilia automáticamente con el ATP.
func (uc *StockMovementUseCase) RecordBackorder(ctx context.Context, in dto.MovementRequest) error {
	return uc.applyBackorder(ctx, in, in.BaseQty,
		entity.TransactionTypeBackorder, entity.StockStateOnHand, entity.StockStateBackorder)
}

// ClearBackorder limpia backorder manualmente: backorder −= N.
func (uc *StockMovementUseCase) ClearBackorder(ctx context.Context, in dto.MovementRequest) error {
	return uc.applyBackorder(ctx, in, -in.BaseQty,
		entity.TransactionTypeBackorderClear, entity.StockStateBackorder, entity.StockStateOnHand)
}

func (uc *StockMovementUseCase) applyBackorder(ctx context.Context, in dto.MovementRequest, delta int64, txType, source, target string) error {
	if err := validateMovement(in); err != nil {
		return err
	}
	return uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		if err := levelRepo.UpsertAddBackorder(ctx, levelKey(in), delta); err != nil {
			return err
		}
		tx := newTransaction(in, txType, in.BaseQty, 0, source, target)
		return ledgerRepo.Append(ctx, tx)
	})
}
