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

const (
	testItemID     = "item-001"
	testLocationID = "loc-A-01"
	testUserID     = "picker-7"
)

func testKey() repository.LevelKey {
	return repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID}
}

func movReq(qty int64) dto.MovementRequest {
	return dto.MovementRequest{
		InventoryItemID: testItemID,
		LocationID:      testLocationID,
		BaseQty:         qty,
		UserID:          testUserID,
	}
}

// newMovementFixture arma el motor de movimientos sobre fakes compartidos.
func newMovementFixture() (*inventory.StockMovementUseCase, *fakeLevelRepo, *fakeLedgerRepo) {
	levels := newFakeLevelRepo()
	ledger := newFakeLedgerRepo()
	uc := inventory.NewStockMovementUseCase(&fakeTxRunner{levels: levels, ledger: ledger})
	return uc, levels, ledger
}

// ──────────────────────────────────────────────────────────────────────────────
// Reserva y liberación
// ──────────────────────────────────────────────────────────────────────────────

func TestReserveForOrder_ComprometeYRegistra(t *testing.T) {
	uc, levels, ledger := newMovementFixture()
	levels.seed(testKey(), 100, 0, 0, 0)

	orderID := "orden-55"
	req := movReq(30)
	req.OrderID = &orderID

	applied, err := uc.ReserveForOrder(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, applied)

	lvl, _ := levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(100), lvl.OnHandBase, "reservar no toca on-hand")
	assert.Equal(t, int64(30), lvl.ReservedBase)

	rows := ledger.byType(entity.TransactionTypeReserve)
	require.Len(t, rows, 1, "exactamente una fila del libro por operación")
	assert.Equal(t, entity.StockStateOnHand, rows[0].SourceState)
	assert.Equal(t, entity.StockStateCommitted, rows[0].TargetState)
	assert.Equal(t, int64(0), rows[0].BaseQtyDelta, "reservar no cambia on-hand")
	assert.Equal(t, entity.ProvenanceExplicit, rows[0].Provenance)
	assert.Equal(t, &orderID, rows[0].OrderID)
}

func TestReserveForOrder_SinFilaDeNivel(t *testing.T) {
	uc, _, ledger := newMovementFixture()

	applied, err := uc.ReserveForOrder(context.Background(), movReq(10))
	require.NoError(t, err, "fila inexistente es fallo señalizado, no error")
	assert.False(t, applied)
	assert.Empty(t, ledger.rows, "una operación no aplicada no toca el libro")
}

func TestReserveForOrder_PermiteSobreReserva(t *testing.T) {
	uc, levels, _ := newMovementFixture()
	levels.seed(testKey(), 10, 0, 0, 0)

	// Deliberadamente sin guarda N ≤ disponible: el ATP queda negativo.
	applied, err := uc.ReserveForOrder(context.Background(), movReq(25))
	require.NoError(t, err)
	assert.True(t, applied)

	lvl, _ := levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(25), lvl.ReservedBase)
	assert.Equal(t, int64(-15), lvl.OnHandBase-lvl.ReservedBase, "el ATP negativo señala backorder")
}

func TestReleaseReservation_RestauraYCancelaDeltas(t *testing.T) {
	uc, levels, ledger := newMovementFixture()
	levels.seed(testKey(), 100, 0, 0, 0)

	_, err := uc.ReserveForOrder(context.Background(), movReq(40))
	require.NoError(t, err)
	require.NoError(t, uc.ReleaseReservation(context.Background(), movReq(40)))

	lvl, _ := levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(0), lvl.ReservedBase, "reserva + liberación restauran el contador")
	assert.Equal(t, int64(100), lvl.OnHandBase)
	assert.Equal(t, int64(0), ledger.deltaSum(), "los deltas del par reserve/unreserve se cancelan")
	assert.Len(t, ledger.rows, 2)
}

func TestReleaseReservation_SinFilaEsNoOp(t *testing.T) {
	uc, _, ledger := newMovementFixture()

	err := uc.ReleaseReservation(context.Background(), movReq(10))
	require.NoError(t, err)
	assert.Empty(t, ledger.rows, "liberar sin fila de nivel no escribe en el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Pick y despacho
// ──────────────────────────────────────────────────────────────────────────────

func TestPickItem_ConReservaPrevia(t *testing.T) {
	uc, levels, ledger := newMovementFixture()
	// on-hand 100, reservado 20; pick de 30.
	levels.seed(testKey(), 100, 20, 0, 0)

	applied, err := uc.PickItem(context.Background(), movReq(30))
	require.NoError(t, err)
	assert.True(t, applied)

	lvl, _ := levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(70), lvl.OnHandBase)
	assert.Equal(t, int64(0), lvl.ReservedBase, "la reserva se libera solo hasta lo reservado")
	assert.Equal(t, int64(30), lvl.PickedBase)
	assert.Equal(t, int64(70), lvl.OnHandBase-lvl.ReservedBase, "ATP resultante")

	rows := ledger.byType(entity.TransactionTypePick)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-30), rows[0].BaseQtyDelta)
	// La reserva (20) no cubrió el pick completo (30): procedencia implícita.
	assert.Equal(t, entity.ProvenanceImplicit, rows[0].Provenance)
	assert.Equal(t, entity.StockStateOnHand, rows[0].SourceState)
}

func TestPickItem_ReservaCubreTodo(t *testing.T) {
	uc, levels, ledger := newMovementFixture()
	levels.seed(testKey(), 100, 50, 0, 0)

	applied, err := uc.PickItem(context.Background(), movReq(30))
	require.NoError(t, err)
	assert.True(t, applied)

	lvl, _ := levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(20), lvl.ReservedBase)

	rows := ledger.byType(entity.TransactionTypePick)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.ProvenanceExplicit, rows[0].Provenance)
	assert.Equal(t, entity.StockStateCommitted, rows[0].SourceState)
	assert.Equal(t, entity.StockStatePicked, rows[0].TargetState)
}

func TestPickItem_SinFilaDeNivel(t *testing.T) {
	uc, _, ledger := newMovementFixture()

	applied, err := uc.PickItem(context.Background(), movReq(5))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Empty(t, ledger.rows)
}

func TestRecibirPickearDespachar_ContadoresVuelvenACero(t *testing.T) {
	uc, levels, ledger := newMovementFixture()

	// Ciclo completo: receipt crea la fila, pick y ship la vacían.
	require.NoError(t, uc.ReceiveInventory(context.Background(),
		dto.ReceiveRequest{MovementRequest: movReq(50)}))

	applied, err := uc.PickItem(context.Background(), movReq(50))
	require.NoError(t, err)
	require.True(t, applied)

	applied, err = uc.RecordShipment(context.Background(), movReq(50))
	require.NoError(t, err)
	require.True(t, applied)

	lvl, _ := levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(0), lvl.OnHandBase)
	assert.Equal(t, int64(0), lvl.ReservedBase)
	assert.Equal(t, int64(0), lvl.PickedBase)

	// receipt +50, pick −50, ship 0: el libro reproduce el contador final.
	assert.Equal(t, int64(0), ledger.deltaSum())
	assert.Len(t, ledger.rows, 3)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recibo y ajuste
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveInventory_CreaFilaYCuentaVariante(t *testing.T) {
	uc, levels, ledger := newMovementFixture()

	variantID := "var-caja"
	key := repository.LevelKey{InventoryItemID: testItemID, WarehouseLocationID: testLocationID, VariantID: &variantID}
	req := dto.ReceiveRequest{MovementRequest: movReq(48), VariantQty: 2}
	req.VariantID = &variantID

	require.NoError(t, uc.ReceiveInventory(context.Background(), req))

	lvl, _ := levels.Get(context.Background(), key)
	require.NotNil(t, lvl, "el recibo crea la fila de nivel si no existe")
	assert.Equal(t, int64(48), lvl.OnHandBase)
	assert.Equal(t, int64(2), lvl.VariantQty, "conteo físico de la presentación")

	rows := ledger.byType(entity.TransactionTypeReceipt)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(48), rows[0].BaseQtyDelta)
	assert.Equal(t, entity.StockStateExternal, rows[0].SourceState)
}

func TestReceiveInventory_VarianteObligatoriaConConteo(t *testing.T) {
	uc, _, _ := newMovementFixture()

	req := dto.ReceiveRequest{MovementRequest: movReq(48), VariantQty: 2}
	err := uc.ReceiveInventory(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput,
		"variant_qty sin variant_id debe rechazarse")
}

func TestAdjustInventory_RequiereMotivo(t *testing.T) {
	uc, levels, ledger := newMovementFixture()
	levels.seed(testKey(), 100, 0, 0, 0)

	err := uc.AdjustInventory(context.Background(), dto.AdjustRequest{
		InventoryItemID: testItemID,
		LocationID:      testLocationID,
		Delta:           -5,
	})
	assert.ErrorIs(t, err, domain.ErrMissingReason)
	assert.Empty(t, ledger.rows)

	lvl, _ := levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(100), lvl.OnHandBase, "un ajuste rechazado no toca contadores")
}

func TestAdjustInventory_AplicaDeltaConSigno(t *testing.T) {
	uc, levels, ledger := newMovementFixture()
	levels.seed(testKey(), 100, 0, 0, 0)

	require.NoError(t, uc.AdjustInventory(context.Background(), dto.AdjustRequest{
		InventoryItemID: testItemID,
		LocationID:      testLocationID,
		Delta:           -7,
		Reason:          "merma por daño en manipulación",
		UserID:          testUserID,
	}))

	lvl, _ := levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(93), lvl.OnHandBase)

	rows := ledger.byType(entity.TransactionTypeAdjustment)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(-7), rows[0].BaseQtyDelta)
	assert.Equal(t, int64(7), rows[0].BaseQty, "la magnitud va sin signo")
	assert.Equal(t, "merma por daño en manipulación", rows[0].Notes)
}

func TestAdjustInventory_DeltaCeroInvalido(t *testing.T) {
	uc, _, _ := newMovementFixture()

	err := uc.AdjustInventory(context.Background(), dto.AdjustRequest{
		InventoryItemID: testItemID,
		LocationID:      testLocationID,
		Delta:           0,
		Reason:          "conteo sin diferencia",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Backorder
// ──────────────────────────────────────────────────────────────────────────────

func TestBackorder_RegistraYLimpia(t *testing.T) {
	uc, levels, ledger := newMovementFixture()

	require.NoError(t, uc.RecordBackorder(context.Background(), movReq(15)))
	lvl, _ := levels.Get(context.Background(), testKey())
	require.NotNil(t, lvl)
	assert.Equal(t, int64(15), lvl.BackorderBase)
	assert.Equal(t, int64(0), lvl.OnHandBase, "backorder no toca on-hand")

	require.NoError(t, uc.ClearBackorder(context.Background(), movReq(15)))
	lvl, _ = levels.Get(context.Background(), testKey())
	assert.Equal(t, int64(0), lvl.BackorderBase)

	assert.Len(t, ledger.byType(entity.TransactionTypeBackorder), 1)
	assert.Len(t, ledger.byType(entity.TransactionTypeBackorderClear), 1)
	assert.Equal(t, int64(0), ledger.deltaSum())
}

func TestValidacionComun_CantidadInvalida(t *testing.T) {
	uc, _, _ := newMovementFixture()

	_, err := uc.ReserveForOrder(context.Background(), movReq(0))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.PickItem(context.Background(), movReq(-3))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	req := movReq(10)
	req.InventoryItemID = ""
	_, err = uc.RecordShipment(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
