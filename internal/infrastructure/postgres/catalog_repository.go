package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo lectura del catálogo (items y presentaciones) sobre PostgreSQL.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

func (r *CatalogRepo) GetItem(ctx context.Context, itemID string) (*entity.InventoryItem, error) {
	query := `SELECT id, base_sku, name, base_unit, created_at FROM inventory_items WHERE id = $1`
	return r.scanItem(r.q.QueryRow(ctx, query, itemID))
}

func (r *CatalogRepo) GetItemBySku(ctx context.Context, baseSku string) (*entity.InventoryItem, error) {
	query := `SELECT id, base_sku, name, base_unit, created_at FROM inventory_items WHERE base_sku = $1`
	return r.scanItem(r.q.QueryRow(ctx, query, baseSku))
}

func (r *CatalogRepo) scanItem(row pgx.Row) (*entity.InventoryItem, error) {
	var i entity.InventoryItem
	err := row.Scan(&i.ID, &i.BaseSku, &i.Name, &i.BaseUnit, &i.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory item: %w", err)
	}
	return &i, nil
}

const variantColumns = `id, inventory_item_id, sku, units_per_variant, hierarchy_level,
	barcode, width_mm, height_mm, length_mm`

func scanVariant(row pgx.Row) (*entity.UomVariant, error) {
	var v entity.UomVariant
	err := row.Scan(
		&v.ID, &v.InventoryItemID, &v.SKU, &v.UnitsPerVariant, &v.HierarchyLevel,
		&v.Barcode, &v.WidthMm, &v.HeightMm, &v.LengthMm,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *CatalogRepo) GetVariant(ctx context.Context, variantID string) (*entity.UomVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM uom_variants WHERE id = $1`
	v, err := scanVariant(r.q.QueryRow(ctx, query, variantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get uom variant: %w", err)
	}
	return v, nil
}

func (r *CatalogRepo) GetVariantByBarcode(ctx context.Context, barcode string) (*entity.UomVariant, error) {
	query := `SELECT ` + variantColumns + ` FROM uom_variants WHERE barcode = $1`
	v, err := scanVariant(r.q.QueryRow(ctx, query, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get uom variant by barcode: %w", err)
	}
	return v, nil
}

func (r *CatalogRepo) ListVariantsByItem(ctx context.Context, itemID string) ([]*entity.UomVariant, error) {
	query := `
		SELECT ` + variantColumns + `
		FROM uom_variants
		WHERE inventory_item_id = $1
		ORDER BY hierarchy_level ASC`
	return r.listVariants(ctx, query, itemID)
}

// GetSiblingVariants devuelve las demás presentaciones del mismo item
// (excluye la variante dada; vacío si la variante no existe).
func (r *CatalogRepo) GetSiblingVariants(ctx context.Context, variantID string) ([]*entity.UomVariant, error) {
	query := `
		SELECT ` + variantColumns + `
		FROM uom_variants
		WHERE inventory_item_id = (SELECT inventory_item_id FROM uom_variants WHERE id = $1)
		  AND id <> $1
		ORDER BY hierarchy_level ASC`
	return r.listVariants(ctx, query, variantID)
}

func (r *CatalogRepo) listVariants(ctx context.Context, query string, args ...any) ([]*entity.UomVariant, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list uom variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.UomVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan uom variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}
