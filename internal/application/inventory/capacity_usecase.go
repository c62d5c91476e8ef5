package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/domain"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	domaininv "github.com/jhoicas/bodega-wms/internal/domain/inventory"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

// CapacityUseCase calcula ocupación cúbica de ubicaciones y elige el bin de
// sobrestock para colocar excedentes. La ocupación se recalcula en cada
// llamada desde los niveles actuales; no hay caché.
type CapacityUseCase struct {
	levelRepo    repository.InventoryLevelRepository
	locationRepo repository.WarehouseLocationRepository
	catalogRepo  repository.CatalogRepository
}

// NewCapacityUseCase construye el caso de uso de cubicaje.
func NewCapacityUseCase(
	levelRepo repository.InventoryLevelRepository,
	locationRepo repository.WarehouseLocationRepository,
	catalogRepo repository.CatalogRepository,
) *CapacityUseCase {
	return &CapacityUseCase{
		levelRepo:    levelRepo,
		locationRepo: locationRepo,
		catalogRepo:  catalogRepo,
	}
}

// LocationOccupancy devuelve capacidad, ocupado y restante de una ubicación.
// Capacidad desconocida → restante nil (sin restricción) y sin porcentaje.
func (uc *CapacityUseCase) LocationOccupancy(ctx context.Context, locationID string) (*dto.LocationOccupancyDTO, error) {
	loc, err := uc.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	occupied, err := uc.levelRepo.SumOccupiedCubicMm(ctx, locationID)
	if err != nil {
		return nil, err
	}
	capacity := domaininv.LocationCapacityCubicMm(loc)
	out := &dto.LocationOccupancyDTO{
		LocationID:       loc.ID,
		LocationCode:     loc.Code,
		CapacityCubicMm:  capacity,
		OccupiedCubicMm:  occupied,
		RemainingCubicMm: domaininv.RemainingCapacityCubicMm(capacity, occupied),
		CalculatedAt:     time.Now(),
	}
	if capacity != nil && *capacity > 0 {
		pct := decimal.NewFromInt(occupied).
			Div(decimal.NewFromInt(*capacity)).
			Mul(decimal.NewFromInt(100)).
			Round(2)
		out.OccupancyPct = &pct
	}
	return out, nil
}

// FindOverflowBin elige, entre los bins overflow de la bodega, el de mayor
// capacidad cúbica restante (best-fit por mayor residuo, no first-fit).
// Reglas:
//   - Un bin sin datos de capacidad nunca se excluye: cuenta como sin
//     restricción y gana sobre cualquier bin acotado.
//   - minUnits solo filtra cuando capacidad y cubo de la variante se conocen.
//   - Desempate determinista por menor código de ubicación.
//
// Devuelve nil si la bodega no tiene bins overflow candidatos.
func (uc *CapacityUseCase) FindOverflowBin(ctx context.Context, warehouseID, variantID string, minUnits int64) (*dto.OverflowBinDTO, error) {
	if warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	var variantCube *int64
	if variantID != "" {
		variant, err := uc.catalogRepo.GetVariant(ctx, variantID)
		if err != nil {
			return nil, err
		}
		if variant == nil {
			return nil, domain.ErrNotFound
		}
		variantCube = domaininv.VariantCubicMm(variant)
	}

	bins, err := uc.locationRepo.ListOverflow(ctx, warehouseID)
	if err != nil {
		return nil, err
	}

	var best *dto.OverflowBinDTO
	var bestRemaining *int64
	for _, bin := range bins {
		remaining, maxUnits, err := uc.binCapacity(ctx, bin, variantCube)
		if err != nil {
			return nil, err
		}
		if minUnits > 0 && maxUnits != nil && *maxUnits < minUnits {
			continue
		}
		// La lista viene ordenada por código: el primero que gana en empate
		// es siempre el de menor código.
		if best == nil || betterRemaining(remaining, bestRemaining) {
			best = &dto.OverflowBinDTO{
				LocationID:       bin.ID,
				LocationCode:     bin.Code,
				RemainingCubicMm: remaining,
				MaxUnits:         maxUnits,
			}
			bestRemaining = remaining
		}
	}
	return best, nil
}

func (uc *CapacityUseCase) binCapacity(ctx context.Context, bin *entity.WarehouseLocation, variantCube *int64) (remaining, maxUnits *int64, err error) {
	capacity := domaininv.LocationCapacityCubicMm(bin)
	if capacity == nil {
		// Sin datos físicos: capacidad sin restricción, no se calcula ocupado.
		return nil, nil, nil
	}
	occupied, err := uc.levelRepo.SumOccupiedCubicMm(ctx, bin.ID)
	if err != nil {
		return nil, nil, err
	}
	remaining = domaininv.RemainingCapacityCubicMm(capacity, occupied)
	maxUnits = domaininv.MaxUnitsForVariant(remaining, variantCube)
	return remaining, maxUnits, nil
}

// betterRemaining: nil (sin restricción) gana sobre acotado; entre acotados
// gana el estrictamente mayor (empates conservan al de menor código).
func betterRemaining(candidate, current *int64) bool {
	if current == nil {
		return false
	}
	if candidate == nil {
		return true
	}
	return *candidate > *current
}
