package inventory

import (
	"context"

	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/domain"
	domaininv "github.com/jhoicas/bodega-wms/internal/domain/inventory"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

// AvailabilityUseCase calcula el available-to-promise (ATP) y la
// disponibilidad por presentación. Es una vista derivada de solo lectura
// sobre los contadores: función pura del estado actual, independiente del
// orden en que se aplicaron las operaciones.
//
// El término on-hand del ATP suma TODAS las ubicaciones del item, no solo las
// pickeables: el stock en bulk sigue siendo prometible porque la reposición
// puede bajarlo a forward pick.
type AvailabilityUseCase struct {
	levelRepo   repository.InventoryLevelRepository
	catalogRepo repository.CatalogRepository
}

// NewAvailabilityUseCase construye la vista de disponibilidad.
func NewAvailabilityUseCase(
	levelRepo repository.InventoryLevelRepository,
	catalogRepo repository.CatalogRepository,
) *AvailabilityUseCase {
	return &AvailabilityUseCase{levelRepo: levelRepo, catalogRepo: catalogRepo}
}

// CalculateATP = Σ on_hand − Σ reserved sobre las ubicaciones del item.
// Puede ser negativo: señala backorder, no es un error.
func (uc *AvailabilityUseCase) CalculateATP(ctx context.Context, itemID string) (int64, error) {
	totals, err := uc.levelRepo.SumByItem(ctx, itemID, false)
	if err != nil {
		return 0, err
	}
	return totals.ATP(), nil
}

// VariantAvailability calcula, por cada presentación del item,
// floor(ATP / unitsPerVariant). Trunca siempre: nunca se promete una
// presentación incompleta.
func (uc *AvailabilityUseCase) VariantAvailability(ctx context.Context, itemID string) ([]dto.VariantAvailabilityDTO, error) {
	atp, err := uc.CalculateATP(ctx, itemID)
	if err != nil {
		return nil, err
	}
	return uc.variantAvailabilityForATP(ctx, itemID, atp)
}

func (uc *AvailabilityUseCase) variantAvailabilityForATP(ctx context.Context, itemID string, atp int64) ([]dto.VariantAvailabilityDTO, error) {
	variants, err := uc.catalogRepo.ListVariantsByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantAvailabilityDTO, 0, len(variants))
	for _, v := range variants {
		out = append(out, dto.VariantAvailabilityDTO{
			VariantID:       v.ID,
			SKU:             v.SKU,
			UnitsPerVariant: v.UnitsPerVariant,
			HierarchyLevel:  v.HierarchyLevel,
			Available:       domaininv.AvailableInVariant(v, atp),
		})
	}
	return out, nil
}

// GetItemSummary arma el modelo de lectura agregado del item para dashboards
// y para la capa de reservas por canal (tope de stock publicado).
func (uc *AvailabilityUseCase) GetItemSummary(ctx context.Context, itemID string) (*dto.ItemSummaryDTO, error) {
	item, err := uc.catalogRepo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	totals, err := uc.levelRepo.SumByItem(ctx, itemID, false)
	if err != nil {
		return nil, err
	}
	atp := totals.ATP()
	variants, err := uc.variantAvailabilityForATP(ctx, itemID, atp)
	if err != nil {
		return nil, err
	}
	return &dto.ItemSummaryDTO{
		InventoryItemID: item.ID,
		BaseSku:         item.BaseSku,
		Name:            item.Name,
		OnHandBase:      totals.OnHandBase,
		ReservedBase:    totals.ReservedBase,
		PickedBase:      totals.PickedBase,
		BackorderBase:   totals.BackorderBase,
		ATPBase:         atp,
		Variants:        variants,
	}, nil
}

// GetItemSummaryBySku como GetItemSummary pero resolviendo por SKU base.
func (uc *AvailabilityUseCase) GetItemSummaryBySku(ctx context.Context, baseSku string) (*dto.ItemSummaryDTO, error) {
	item, err := uc.catalogRepo.GetItemBySku(ctx, baseSku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return uc.GetItemSummary(ctx, item.ID)
}

// LookupByBarcode resuelve el item desde un código de barras escaneado y
// devuelve su resumen de disponibilidad.
func (uc *AvailabilityUseCase) LookupByBarcode(ctx context.Context, barcode string) (*dto.ItemSummaryDTO, error) {
	variant, err := uc.catalogRepo.GetVariantByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	return uc.GetItemSummary(ctx, variant.InventoryItemID)
}

// SiblingAvailability lista las demás presentaciones del item de una variante
// con su disponibilidad actual. Variante inexistente → lista vacía.
func (uc *AvailabilityUseCase) SiblingAvailability(ctx context.Context, variantID string) ([]dto.VariantAvailabilityDTO, error) {
	variant, err := uc.catalogRepo.GetVariant(ctx, variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return []dto.VariantAvailabilityDTO{}, nil
	}
	atp, err := uc.CalculateATP(ctx, variant.InventoryItemID)
	if err != nil {
		return nil, err
	}
	siblings, err := uc.catalogRepo.GetSiblingVariants(ctx, variantID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VariantAvailabilityDTO, 0, len(siblings))
	for _, v := range siblings {
		out = append(out, dto.VariantAvailabilityDTO{
			VariantID:       v.ID,
			SKU:             v.SKU,
			UnitsPerVariant: v.UnitsPerVariant,
			HierarchyLevel:  v.HierarchyLevel,
			Available:       domaininv.AvailableInVariant(v, atp),
		})
	}
	return out, nil
}

// CheckBackorderStatus deriva el estado de backorder del ATP actual: con
// ATP < 0 el item está en backorder por el faltante. Reporta además el
// contador registrado manualmente (no se reconcilian entre sí).
func (uc *AvailabilityUseCase) CheckBackorderStatus(ctx context.Context, itemID string) (*dto.BackorderStatusDTO, error) {
	totals, err := uc.levelRepo.SumByItem(ctx, itemID, false)
	if err != nil {
		return nil, err
	}
	atp := totals.ATP()
	status := &dto.BackorderStatusDTO{
		InventoryItemID: itemID,
		ATPBase:         atp,
		RecordedBaseQty: totals.BackorderBase,
	}
	if atp < 0 {
		status.IsBackordered = true
		status.BackorderQty = -atp
	}
	return status, nil
}
