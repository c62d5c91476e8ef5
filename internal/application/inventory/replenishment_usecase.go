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

// ReplenishmentUseCase baja stock desde una ubicación padre (bulk) hacia una
// ubicación pickeable, y genera la lista de revisión de reposición. La lista
// es pull: el caller (scheduler o hook de agotamiento de pick) decide cuándo
// invocarla; aquí no hay triggers por evento.
type ReplenishmentUseCase struct {
	txRunner      TxRunner
	warehouseRepo repository.WarehouseRepository
	locationRepo  repository.WarehouseLocationRepository
	levelRepo     repository.InventoryLevelRepository
	renderer      WorksheetRenderer
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	txRunner TxRunner,
	warehouseRepo repository.WarehouseRepository,
	locationRepo repository.WarehouseLocationRepository,
	levelRepo repository.InventoryLevelRepository,
	renderer WorksheetRenderer,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		txRunner:      txRunner,
		warehouseRepo: warehouseRepo,
		locationRepo:  locationRepo,
		levelRepo:     levelRepo,
		renderer:      renderer,
	}
}

// ReplenishLocation mueve min(requested, on-hand del padre) unidades base
// desde el padre de la ubicación destino. Devuelve cuántas unidades se
// movieron: 0 (sin error) si la ubicación no tiene padre o el padre no tiene
// stock. El decremento del padre, el incremento del destino (creando su fila
// si no existe) y la única fila replenish del libro viajan en una sola
// transacción: una caída a mitad de camino no pierde ni duplica unidades.
func (uc *ReplenishmentUseCase) ReplenishLocation(ctx context.Context, itemID, targetLocationID string, requested int64, userID string) (int64, error) {
	if itemID == "" || targetLocationID == "" || requested <= 0 {
		return 0, domain.ErrInvalidInput
	}
	target, err := uc.locationRepo.GetByID(ctx, targetLocationID)
	if err != nil {
		return 0, err
	}
	if target == nil {
		return 0, domain.ErrNotFound
	}
	if target.ParentLocationID == nil {
		return 0, nil
	}
	parentID := *target.ParentLocationID

	var moved int64
	err = uc.txRunner.Run(ctx, func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error {
		parentKey := repository.LevelKey{InventoryItemID: itemID, WarehouseLocationID: parentID}
		targetKey := repository.LevelKey{InventoryItemID: itemID, WarehouseLocationID: targetLocationID}

		moved, err = levelRepo.DrainOnHand(ctx, parentKey, requested)
		if err != nil {
			return err
		}
		if moved == 0 {
			return nil
		}
		if err := levelRepo.UpsertAddOnHand(ctx, targetKey, moved, 0); err != nil {
			return err
		}
		tx := &entity.InventoryTransaction{
			ID:              uuid.New().String(),
			InventoryItemID: itemID,
			TransactionType: entity.TransactionTypeReplenish,
			BaseQty:         moved,
			BaseQtyDelta:    moved,
			SourceState:     entity.StockStateOnHand,
			TargetState:     entity.StockStateOnHand,
			FromLocationID:  &parentID,
			ToLocationID:    &targetLocationID,
			Provenance:      entity.ProvenanceImplicit,
			CreatedBy:       userID,
			CreatedAt:       time.Now(),
		}
		return ledgerRepo.Append(ctx, tx)
	})
	if err != nil {
		return 0, err
	}
	return moved, nil
}

// ReviewList devuelve las ubicaciones con mínimo configurado cuyo on-hand
// actual está por debajo, emparejadas con su padre. La cantidad sugerida
// completa hasta el mínimo.
func (uc *ReplenishmentUseCase) ReviewList(ctx context.Context, warehouseID string) ([]dto.ReplenishmentReviewItemDTO, error) {
	candidates, err := uc.levelRepo.ListBelowMin(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ReplenishmentReviewItemDTO, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, dto.ReplenishmentReviewItemDTO{
			InventoryItemID:  c.InventoryItemID,
			BaseSku:          c.BaseSku,
			ItemName:         c.ItemName,
			LocationID:       c.LocationID,
			LocationCode:     c.LocationCode,
			ParentLocationID: c.ParentLocationID,
			ParentCode:       c.ParentCode,
			OnHandBase:       c.OnHandBase,
			MinQty:           c.MinQty,
			SuggestedQty:     c.MinQty - c.OnHandBase,
			FillPct:          c.FillPct,
		})
	}
	return items, nil
}

// Worksheet genera la hoja de reposición imprimible (PDF) con la lista de
// revisión actual de la bodega.
func (uc *ReplenishmentUseCase) Worksheet(ctx context.Context, warehouseID string) ([]byte, error) {
	items, err := uc.ReviewList(ctx, warehouseID)
	if err != nil {
		return nil, err
	}
	title := "Hoja de reposición"
	if warehouseID != "" {
		wh, err := uc.warehouseRepo.GetByID(ctx, warehouseID)
		if err != nil {
			return nil, err
		}
		if wh != nil {
			title += " - " + wh.Name
		} else {
			title += " - bodega " + warehouseID
		}
	}
	return uc.renderer.RenderReplenishmentWorksheet(title, items)
}
