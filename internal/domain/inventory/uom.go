package inventory

import "github.com/jhoicas/bodega-wms/internal/domain/entity"

// ConvertToBaseUnits convierte una cantidad de una presentación a unidades
// base: qty × UnitsPerVariant (servicio de dominio puro, sin efectos).
// Variante nil → 0.
func ConvertToBaseUnits(variant *entity.UomVariant, qty int64) int64 {
	if variant == nil {
		return 0
	}
	return qty * variant.UnitsPerVariant
}

// AvailableInVariant calcula cuántas unidades completas de una presentación
// cubre un ATP en unidades base: floor(atp / UnitsPerVariant), truncando.
// Nunca redondea hacia arriba: una unidad vendible exige el múltiplo completo.
// ATP negativo o variante inválida → 0 (el faltante se reporta como backorder,
// no como disponibilidad negativa).
func AvailableInVariant(variant *entity.UomVariant, atpBase int64) int64 {
	if variant == nil || variant.UnitsPerVariant <= 0 || atpBase <= 0 {
		return 0
	}
	return atpBase / variant.UnitsPerVariant
}
