package inventory

import "github.com/jhoicas/bodega-wms/internal/domain/entity"

// Utilidades de cubicaje (servicio de dominio puro). Un resultado nil significa
// "sin restricción": falta algún dato físico y la capacidad no se aplica.

// VariantCubicMm devuelve el volumen de una presentación en mm³, o nil si
// falta alguna dimensión.
func VariantCubicMm(v *entity.UomVariant) *int64 {
	if v == nil || v.WidthMm == nil || v.HeightMm == nil || v.LengthMm == nil {
		return nil
	}
	cube := *v.WidthMm * *v.HeightMm * *v.LengthMm
	return &cube
}

// LocationCapacityCubicMm devuelve la capacidad de una ubicación: el override
// explícito tiene prioridad; si no, ancho×alto×fondo. nil = sin restricción.
func LocationCapacityCubicMm(loc *entity.WarehouseLocation) *int64 {
	if loc == nil {
		return nil
	}
	if loc.CapacityCubicMm != nil {
		return loc.CapacityCubicMm
	}
	if loc.WidthMm == nil || loc.HeightMm == nil || loc.DepthMm == nil {
		return nil
	}
	derived := *loc.WidthMm * *loc.HeightMm * *loc.DepthMm
	return &derived
}

// RemainingCapacityCubicMm = capacidad − ocupado. nil si la capacidad es
// desconocida. Puede ser negativo si la ubicación ya está sobrecupo.
func RemainingCapacityCubicMm(capacity *int64, occupiedCubicMm int64) *int64 {
	if capacity == nil {
		return nil
	}
	rem := *capacity - occupiedCubicMm
	return &rem
}

// MaxUnitsForVariant = floor(restante / cubo de la variante). nil si la
// capacidad restante o el cubo de la variante son desconocidos (sin límite).
func MaxUnitsForVariant(remaining *int64, variantCube *int64) *int64 {
	if remaining == nil || variantCube == nil || *variantCube <= 0 {
		return nil
	}
	units := *remaining / *variantCube
	if units < 0 {
		units = 0
	}
	return &units
}
