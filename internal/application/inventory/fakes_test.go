package inventory_test

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de repositorio. Reproducen la semántica de
// los adaptadores Postgres (deltas relativos, LEAST, upsert) sobre mapas.
// ──────────────────────────────────────────────────────────────────────────────

func levelMapKey(key repository.LevelKey) string {
	vkey := ""
	if key.VariantID != nil {
		vkey = *key.VariantID
	}
	return key.InventoryItemID + "|" + key.WarehouseLocationID + "|" + vkey
}

type fakeLevelRepo struct {
	levels map[string]*entity.InventoryLevel
	// pickable por ubicación; ausente = pickeable.
	notPickable map[string]bool
	// ocupado cúbico precargado por ubicación (para tests de cubicaje).
	occupied map[string]int64
	// candidatos precargados para ListBelowMin.
	belowMin []repository.ReplenishmentCandidate
}

func newFakeLevelRepo() *fakeLevelRepo {
	return &fakeLevelRepo{
		levels:      make(map[string]*entity.InventoryLevel),
		notPickable: make(map[string]bool),
		occupied:    make(map[string]int64),
	}
}

// seed crea la fila de nivel con los contadores dados.
func (f *fakeLevelRepo) seed(key repository.LevelKey, onHand, reserved, picked, backorder int64) {
	f.levels[levelMapKey(key)] = &entity.InventoryLevel{
		InventoryItemID:     key.InventoryItemID,
		WarehouseLocationID: key.WarehouseLocationID,
		VariantID:           key.VariantID,
		OnHandBase:          onHand,
		ReservedBase:        reserved,
		PickedBase:          picked,
		BackorderBase:       backorder,
		UpdatedAt:           time.Now(),
	}
}

func (f *fakeLevelRepo) Get(_ context.Context, key repository.LevelKey) (*entity.InventoryLevel, error) {
	lvl, ok := f.levels[levelMapKey(key)]
	if !ok {
		return nil, nil
	}
	return lvl, nil
}

func (f *fakeLevelRepo) ListByItem(_ context.Context, itemID string) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for _, lvl := range f.levels {
		if lvl.InventoryItemID == itemID {
			out = append(out, lvl)
		}
	}
	return out, nil
}

func (f *fakeLevelRepo) ListByLocation(_ context.Context, locationID string) ([]*entity.InventoryLevel, error) {
	var out []*entity.InventoryLevel
	for _, lvl := range f.levels {
		if lvl.WarehouseLocationID == locationID {
			out = append(out, lvl)
		}
	}
	return out, nil
}

func (f *fakeLevelRepo) SumByItem(_ context.Context, itemID string, pickableOnly bool) (entity.LevelTotals, error) {
	var totals entity.LevelTotals
	for _, lvl := range f.levels {
		if lvl.InventoryItemID != itemID {
			continue
		}
		if pickableOnly && f.notPickable[lvl.WarehouseLocationID] {
			continue
		}
		totals.OnHandBase += lvl.OnHandBase
		totals.ReservedBase += lvl.ReservedBase
		totals.PickedBase += lvl.PickedBase
		totals.BackorderBase += lvl.BackorderBase
	}
	return totals, nil
}

func (f *fakeLevelRepo) AddReserved(_ context.Context, key repository.LevelKey, qty int64) (bool, error) {
	lvl, ok := f.levels[levelMapKey(key)]
	if !ok {
		return false, nil
	}
	lvl.ReservedBase += qty
	return true, nil
}

func (f *fakeLevelRepo) ReleaseReserved(_ context.Context, key repository.LevelKey, qty int64) (bool, error) {
	lvl, ok := f.levels[levelMapKey(key)]
	if !ok {
		return false, nil
	}
	lvl.ReservedBase -= qty
	return true, nil
}

func (f *fakeLevelRepo) ApplyPick(_ context.Context, key repository.LevelKey, qty int64) (int64, bool, error) {
	lvl, ok := f.levels[levelMapKey(key)]
	if !ok {
		return 0, false, nil
	}
	released := lvl.ReservedBase
	if qty < released {
		released = qty
	}
	lvl.OnHandBase -= qty
	lvl.PickedBase += qty
	lvl.ReservedBase -= released
	return released, true, nil
}

func (f *fakeLevelRepo) ApplyShipment(_ context.Context, key repository.LevelKey, qty int64) (bool, error) {
	lvl, ok := f.levels[levelMapKey(key)]
	if !ok {
		return false, nil
	}
	lvl.PickedBase -= qty
	return true, nil
}

func (f *fakeLevelRepo) UpsertAddOnHand(_ context.Context, key repository.LevelKey, delta, variantQtyDelta int64) error {
	mk := levelMapKey(key)
	lvl, ok := f.levels[mk]
	if !ok {
		f.seed(key, 0, 0, 0, 0)
		lvl = f.levels[mk]
	}
	lvl.OnHandBase += delta
	lvl.VariantQty += variantQtyDelta
	return nil
}

func (f *fakeLevelRepo) UpsertAddBackorder(_ context.Context, key repository.LevelKey, delta int64) error {
	mk := levelMapKey(key)
	lvl, ok := f.levels[mk]
	if !ok {
		f.seed(key, 0, 0, 0, 0)
		lvl = f.levels[mk]
	}
	lvl.BackorderBase += delta
	return nil
}

func (f *fakeLevelRepo) DrainOnHand(_ context.Context, key repository.LevelKey, requested int64) (int64, error) {
	lvl, ok := f.levels[levelMapKey(key)]
	if !ok {
		return 0, nil
	}
	avail := lvl.OnHandBase
	if avail < 0 {
		avail = 0
	}
	moved := requested
	if avail < moved {
		moved = avail
	}
	lvl.OnHandBase -= moved
	return moved, nil
}

func (f *fakeLevelRepo) SumOccupiedCubicMm(_ context.Context, locationID string) (int64, error) {
	return f.occupied[locationID], nil
}

func (f *fakeLevelRepo) ListBelowMin(_ context.Context, warehouseID string) ([]repository.ReplenishmentCandidate, error) {
	return f.belowMin, nil
}

var _ repository.InventoryLevelRepository = (*fakeLevelRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────

type fakeLedgerRepo struct {
	rows []*entity.InventoryTransaction
}

func newFakeLedgerRepo() *fakeLedgerRepo { return &fakeLedgerRepo{} }

func (f *fakeLedgerRepo) Append(_ context.Context, tx *entity.InventoryTransaction) error {
	for _, r := range f.rows {
		if r.ID == tx.ID {
			return nil // idempotente, como el adaptador real ante 23505
		}
	}
	f.rows = append(f.rows, tx)
	return nil
}

func (f *fakeLedgerRepo) GetByID(_ context.Context, id string) (*entity.InventoryTransaction, error) {
	for _, r := range f.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeLedgerRepo) ListByItem(_ context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, r := range f.rows {
		if r.InventoryItemID != itemID {
			continue
		}
		if from != nil && r.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && r.CreatedAt.After(*to) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListByOrder(_ context.Context, orderID string) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, r := range f.rows {
		if r.OrderID != nil && *r.OrderID == orderID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListByReference(_ context.Context, refType, refID string) ([]*entity.InventoryTransaction, error) {
	var out []*entity.InventoryTransaction
	for _, r := range f.rows {
		if r.ReferenceType == refType && r.ReferenceID == refID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) SumOnHandDeltas(_ context.Context, itemID, locationID string) (int64, error) {
	var sum int64
	for _, r := range f.rows {
		if r.InventoryItemID != itemID {
			continue
		}
		if r.ToLocationID != nil && *r.ToLocationID == locationID {
			sum += r.BaseQtyDelta
		} else if r.FromLocationID != nil && *r.FromLocationID == locationID {
			sum -= r.BaseQtyDelta
		}
	}
	return sum, nil
}

// byType filtra las filas del libro por tipo de transacción.
func (f *fakeLedgerRepo) byType(txType string) []*entity.InventoryTransaction {
	var out []*entity.InventoryTransaction
	for _, r := range f.rows {
		if r.TransactionType == txType {
			out = append(out, r)
		}
	}
	return out
}

// deltaSum suma BaseQtyDelta de todas las filas.
func (f *fakeLedgerRepo) deltaSum() int64 {
	var sum int64
	for _, r := range f.rows {
		sum += r.BaseQtyDelta
	}
	return sum
}

var _ repository.InventoryTransactionRepository = (*fakeLedgerRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────

// fakeTxRunner pasa los fakes directamente; no hay transaccionalidad real que
// simular en memoria.
type fakeTxRunner struct {
	levels *fakeLevelRepo
	ledger *fakeLedgerRepo
}

func (f *fakeTxRunner) Run(_ context.Context, fn func(
	levelRepo repository.InventoryLevelRepository,
	ledgerRepo repository.InventoryTransactionRepository,
) error) error {
	return fn(f.levels, f.ledger)
}

// ──────────────────────────────────────────────────────────────────────────────

type fakeWarehouseRepo struct {
	warehouses map[string]*entity.Warehouse
}

func newFakeWarehouseRepo() *fakeWarehouseRepo {
	return &fakeWarehouseRepo{warehouses: make(map[string]*entity.Warehouse)}
}

func (f *fakeWarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	return f.warehouses[id], nil
}

func (f *fakeWarehouseRepo) List(_ context.Context) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range f.warehouses {
		out = append(out, w)
	}
	return out, nil
}

var _ repository.WarehouseRepository = (*fakeWarehouseRepo)(nil)

type fakeLocationRepo struct {
	locations map[string]*entity.WarehouseLocation
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{locations: make(map[string]*entity.WarehouseLocation)}
}

func (f *fakeLocationRepo) add(loc *entity.WarehouseLocation) {
	f.locations[loc.ID] = loc
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (*entity.WarehouseLocation, error) {
	return f.locations[id], nil
}

func (f *fakeLocationRepo) GetByCode(_ context.Context, warehouseID, code string) (*entity.WarehouseLocation, error) {
	for _, loc := range f.locations {
		if loc.WarehouseID == warehouseID && loc.Code == code {
			return loc, nil
		}
	}
	return nil, nil
}

func (f *fakeLocationRepo) ListOverflow(_ context.Context, warehouseID string) ([]*entity.WarehouseLocation, error) {
	var out []*entity.WarehouseLocation
	for _, loc := range f.locations {
		if loc.WarehouseID == warehouseID && loc.LocationType == entity.LocationTypeOverflow {
			out = append(out, loc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

var _ repository.WarehouseLocationRepository = (*fakeLocationRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────

type fakeCatalogRepo struct {
	items    map[string]*entity.InventoryItem
	variants map[string]*entity.UomVariant
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		items:    make(map[string]*entity.InventoryItem),
		variants: make(map[string]*entity.UomVariant),
	}
}

func (f *fakeCatalogRepo) GetItem(_ context.Context, itemID string) (*entity.InventoryItem, error) {
	return f.items[itemID], nil
}

func (f *fakeCatalogRepo) GetItemBySku(_ context.Context, baseSku string) (*entity.InventoryItem, error) {
	for _, it := range f.items {
		if it.BaseSku == baseSku {
			return it, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) GetVariant(_ context.Context, variantID string) (*entity.UomVariant, error) {
	return f.variants[variantID], nil
}

func (f *fakeCatalogRepo) GetVariantByBarcode(_ context.Context, barcode string) (*entity.UomVariant, error) {
	for _, v := range f.variants {
		if v.Barcode == barcode {
			return v, nil
		}
	}
	return nil, nil
}

func (f *fakeCatalogRepo) ListVariantsByItem(_ context.Context, itemID string) ([]*entity.UomVariant, error) {
	var out []*entity.UomVariant
	for _, v := range f.variants {
		if v.InventoryItemID == itemID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HierarchyLevel < out[j].HierarchyLevel })
	return out, nil
}

func (f *fakeCatalogRepo) GetSiblingVariants(_ context.Context, variantID string) ([]*entity.UomVariant, error) {
	v, ok := f.variants[variantID]
	if !ok {
		return nil, nil
	}
	var out []*entity.UomVariant
	for _, other := range f.variants {
		if other.InventoryItemID == v.InventoryItemID && other.ID != variantID {
			out = append(out, other)
		}
	}
	return out, nil
}

var _ repository.CatalogRepository = (*fakeCatalogRepo)(nil)

// ──────────────────────────────────────────────────────────────────────────────

type fakeWorksheetRenderer struct {
	lastTitle string
	lastItems int
}

func (f *fakeWorksheetRenderer) RenderReplenishmentWorksheet(title string, items []dto.ReplenishmentReviewItemDTO) ([]byte, error) {
	f.lastTitle = title
	f.lastItems = len(items)
	return []byte("%PDF-fake"), nil
}

// decimalPct helper para construir porcentajes esperados en los tests.
func decimalPct(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}
