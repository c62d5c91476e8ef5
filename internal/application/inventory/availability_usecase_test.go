package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/application/inventory"
	"github.com/jhoicas/bodega-wms/internal/domain"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

func newAvailabilityFixture() (*inventory.AvailabilityUseCase, *fakeLevelRepo, *fakeCatalogRepo) {
	levels := newFakeLevelRepo()
	catalog := newFakeCatalogRepo()
	return inventory.NewAvailabilityUseCase(levels, catalog), levels, catalog
}

func seedCatalog(catalog *fakeCatalogRepo) {
	catalog.items[testItemID] = &entity.InventoryItem{
		ID: testItemID, BaseSku: "GAS-350", Name: "Gaseosa 350ml", BaseUnit: "unidad",
	}
	catalog.variants["var-each"] = &entity.UomVariant{
		ID: "var-each", InventoryItemID: testItemID, SKU: "GAS-350-U",
		UnitsPerVariant: 1, HierarchyLevel: 1,
	}
	catalog.variants["var-caja"] = &entity.UomVariant{
		ID: "var-caja", InventoryItemID: testItemID, SKU: "GAS-350-C24",
		UnitsPerVariant: 24, HierarchyLevel: 2,
	}
}

func TestCalculateATP_SumaTodasLasUbicaciones(t *testing.T) {
	uc, levels, _ := newAvailabilityFixture()
	// Stock en forward pick y en bulk no pickeable: ambos cuentan para el ATP.
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: "loc-pick"}, 40, 10, 0, 0)
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: "loc-bulk"}, 200, 0, 0, 0)
	levels.notPickable["loc-bulk"] = true

	atp, err := uc.CalculateATP(context.Background(), testItemID)
	require.NoError(t, err)
	assert.Equal(t, int64(230), atp, "el bulk no pickeable sigue siendo prometible")
}

func TestCalculateATP_IndependienteDelOrden(t *testing.T) {
	// El ATP es función del estado actual: aplicar los mismos movimientos en
	// distinto orden produce el mismo resultado.
	armar := func(ops []func(uc *inventory.StockMovementUseCase)) int64 {
		levels := newFakeLevelRepo()
		ledger := newFakeLedgerRepo()
		movUC := inventory.NewStockMovementUseCase(&fakeTxRunner{levels: levels, ledger: ledger})
		availUC := inventory.NewAvailabilityUseCase(levels, newFakeCatalogRepo())
		for _, op := range ops {
			op(movUC)
		}
		atp, err := availUC.CalculateATP(context.Background(), testItemID)
		require.NoError(t, err)
		return atp
	}

	recibir := func(uc *inventory.StockMovementUseCase) {
		_ = uc.ReceiveInventory(context.Background(), dto.ReceiveRequest{MovementRequest: movReq(100)})
	}
	reservar := func(uc *inventory.StockMovementUseCase) {
		_, _ = uc.ReserveForOrder(context.Background(), movReq(30))
	}
	ajustar := func(uc *inventory.StockMovementUseCase) {
		_ = uc.AdjustInventory(context.Background(), dto.AdjustRequest{
			InventoryItemID: testItemID, LocationID: testLocationID,
			Delta: -10, Reason: "conteo cíclico",
		})
	}

	// El recibo va primero en ambos órdenes para que exista la fila de nivel.
	atp1 := armar([]func(uc *inventory.StockMovementUseCase){recibir, reservar, ajustar})
	atp2 := armar([]func(uc *inventory.StockMovementUseCase){recibir, ajustar, reservar})
	assert.Equal(t, atp1, atp2, "mismo conjunto de movimientos, mismo ATP")
	assert.Equal(t, int64(60), atp1)
}

func TestVariantAvailability_TruncaPorPresentacion(t *testing.T) {
	uc, levels, catalog := newAvailabilityFixture()
	seedCatalog(catalog)
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}, 50, 0, 0, 0)

	variants, err := uc.VariantAvailability(context.Background(), testItemID)
	require.NoError(t, err)
	require.Len(t, variants, 2)

	// Ordenadas por jerarquía: each primero.
	assert.Equal(t, "var-each", variants[0].VariantID)
	assert.Equal(t, int64(50), variants[0].Available)
	assert.Equal(t, "var-caja", variants[1].VariantID)
	assert.Equal(t, int64(2), variants[1].Available, "50 unidades nunca son 3 cajas de 24")
}

func TestVariantAvailability_ATPNegativoClampeaACero(t *testing.T) {
	uc, levels, catalog := newAvailabilityFixture()
	seedCatalog(catalog)
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}, 10, 30, 0, 0)

	variants, err := uc.VariantAvailability(context.Background(), testItemID)
	require.NoError(t, err)
	for _, v := range variants {
		assert.Equal(t, int64(0), v.Available,
			"con ATP negativo ninguna presentación publica disponibilidad")
	}
}

func TestGetItemSummary(t *testing.T) {
	uc, levels, catalog := newAvailabilityFixture()
	seedCatalog(catalog)
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}, 100, 25, 5, 3)

	summary, err := uc.GetItemSummary(context.Background(), testItemID)
	require.NoError(t, err)
	assert.Equal(t, "GAS-350", summary.BaseSku)
	assert.Equal(t, int64(100), summary.OnHandBase)
	assert.Equal(t, int64(25), summary.ReservedBase)
	assert.Equal(t, int64(5), summary.PickedBase)
	assert.Equal(t, int64(3), summary.BackorderBase)
	assert.Equal(t, int64(75), summary.ATPBase)
	assert.Len(t, summary.Variants, 2)
}

func TestGetItemSummary_ItemInexistente(t *testing.T) {
	uc, _, _ := newAvailabilityFixture()

	_, err := uc.GetItemSummary(context.Background(), "item-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCheckBackorderStatus(t *testing.T) {
	uc, levels, _ := newAvailabilityFixture()
	// on-hand 10, reservado 15: ATP −5.
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}, 10, 15, 0, 8)

	status, err := uc.CheckBackorderStatus(context.Background(), testItemID)
	require.NoError(t, err)
	assert.True(t, status.IsBackordered)
	assert.Equal(t, int64(5), status.BackorderQty, "el faltante es el ATP negado")
	assert.Equal(t, int64(-5), status.ATPBase)
	assert.Equal(t, int64(8), status.RecordedBaseQty,
		"el contador manual se reporta aparte, sin reconciliar")
}

func TestCheckBackorderStatus_SinFaltante(t *testing.T) {
	uc, levels, _ := newAvailabilityFixture()
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}, 50, 20, 0, 0)

	status, err := uc.CheckBackorderStatus(context.Background(), testItemID)
	require.NoError(t, err)
	assert.False(t, status.IsBackordered)
	assert.Equal(t, int64(0), status.BackorderQty)
	assert.Equal(t, int64(30), status.ATPBase)
}

func TestSiblingAvailability(t *testing.T) {
	uc, levels, catalog := newAvailabilityFixture()
	seedCatalog(catalog)
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}, 50, 0, 0, 0)

	siblings, err := uc.SiblingAvailability(context.Background(), "var-caja")
	require.NoError(t, err)
	require.Len(t, siblings, 1, "las hermanas excluyen a la variante consultada")
	assert.Equal(t, "var-each", siblings[0].VariantID)
	assert.Equal(t, int64(50), siblings[0].Available)

	vacias, err := uc.SiblingAvailability(context.Background(), "var-fantasma")
	require.NoError(t, err)
	assert.Empty(t, vacias, "variante inexistente devuelve lista vacía, no error")
}

func TestLookupByBarcode(t *testing.T) {
	uc, levels, catalog := newAvailabilityFixture()
	seedCatalog(catalog)
	catalog.variants["var-caja"].Barcode = "7701234567890"
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}, 48, 0, 0, 0)

	summary, err := uc.LookupByBarcode(context.Background(), "7701234567890")
	require.NoError(t, err)
	assert.Equal(t, testItemID, summary.InventoryItemID, "el barcode resuelve al item de la variante")
	assert.Equal(t, int64(48), summary.ATPBase)

	_, err = uc.LookupByBarcode(context.Background(), "codigo-desconocido")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetItemSummaryBySku(t *testing.T) {
	uc, levels, catalog := newAvailabilityFixture()
	seedCatalog(catalog)
	levels.seed(repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}, 30, 10, 0, 0)

	summary, err := uc.GetItemSummaryBySku(context.Background(), "GAS-350")
	require.NoError(t, err)
	assert.Equal(t, testItemID, summary.InventoryItemID)
	assert.Equal(t, int64(20), summary.ATPBase)

	_, err = uc.GetItemSummaryBySku(context.Background(), "SKU-FANTASMA")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
