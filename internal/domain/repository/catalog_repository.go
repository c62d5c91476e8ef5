package repository

import (
	"context"

	"github.com/jhoicas/bodega-wms/internal/domain/entity"
)

// CatalogRepository puerto de solo lectura sobre el catálogo de items y
// presentaciones (factores de conversión, jerarquía, dimensiones físicas).
type CatalogRepository interface {
	GetItem(ctx context.Context, itemID string) (*entity.InventoryItem, error)
	GetItemBySku(ctx context.Context, baseSku string) (*entity.InventoryItem, error)
	GetVariant(ctx context.Context, variantID string) (*entity.UomVariant, error)
	GetVariantByBarcode(ctx context.Context, barcode string) (*entity.UomVariant, error)

	// ListVariantsByItem devuelve todas las presentaciones del item ordenadas
	// por hierarchy_level ascendente (each primero).
	ListVariantsByItem(ctx context.Context, itemID string) ([]*entity.UomVariant, error)

	// GetSiblingVariants devuelve las demás presentaciones que comparten
	// InventoryItemID con la variante dada (lista vacía si no existe).
	GetSiblingVariants(ctx context.Context, variantID string) ([]*entity.UomVariant, error)
}
