package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/domain"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

// HistoryUseCase consulta el libro de movimientos (auditoría) y lo
// reconcilia contra los contadores. El libro es la fuente de verdad: la suma
// de deltas on-hand de un (item, ubicación) debe reproducir su contador.
type HistoryUseCase struct {
	ledgerRepo repository.InventoryTransactionRepository
	levelRepo  repository.InventoryLevelRepository
}

// NewHistoryUseCase construye el caso de uso de auditoría.
func NewHistoryUseCase(
	ledgerRepo repository.InventoryTransactionRepository,
	levelRepo repository.InventoryLevelRepository,
) *HistoryUseCase {
	return &HistoryUseCase{ledgerRepo: ledgerRepo, levelRepo: levelRepo}
}

// GetTransaction busca una fila del libro por id.
func (uc *HistoryUseCase) GetTransaction(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	tx, err := uc.ledgerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	return tx, nil
}

// ItemHistory lista los movimientos de un item, más recientes primero, con
// filtro opcional por rango de fechas.
func (uc *HistoryUseCase) ItemHistory(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	if itemID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return uc.ledgerRepo.ListByItem(ctx, itemID, from, to, limit, offset)
}

// OrderHistory lista los movimientos asociados a una orden (reservas, picks,
// despachos y backorders de esa orden).
func (uc *HistoryUseCase) OrderHistory(ctx context.Context, orderID string) ([]*entity.InventoryTransaction, error) {
	if orderID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ledgerRepo.ListByOrder(ctx, orderID)
}

// ReferenceHistory lista los movimientos por documento de referencia
// (recepción, conteo cíclico, orden de reposición).
func (uc *HistoryUseCase) ReferenceHistory(ctx context.Context, refType, refID string) ([]*entity.InventoryTransaction, error) {
	if refType == "" || refID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ledgerRepo.ListByReference(ctx, refType, refID)
}

// ReconcileLocation compara la suma de deltas on-hand del libro contra el
// contador actual de (item, ubicación). Una discrepancia indica escritura de
// contador fuera del flujo transaccional y se corrige con un ajuste.
func (uc *HistoryUseCase) ReconcileLocation(ctx context.Context, itemID, locationID string) (*dto.ReconciliationDTO, error) {
	if itemID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	ledgerSum, err := uc.ledgerRepo.SumOnHandDeltas(ctx, itemID, locationID)
	if err != nil {
		return nil, err
	}
	levels, err := uc.levelRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	var counter int64
	for _, lvl := range levels {
		if lvl.WarehouseLocationID == locationID {
			counter += lvl.OnHandBase
		}
	}
	return &dto.ReconciliationDTO{
		InventoryItemID:     itemID,
		WarehouseLocationID: locationID,
		LedgerOnHandSum:     ledgerSum,
		CounterOnHand:       counter,
		Consistent:          ledgerSum == counter,
	}, nil
}
