package repository

import (
	"context"
	"time"

	"github.com/jhoicas/bodega-wms/internal/domain/entity"
)

// InventoryTransactionRepository define el puerto del libro de movimientos.
// El libro es append-only: no expone update ni delete.
type InventoryTransactionRepository interface {
	Append(ctx context.Context, tx *entity.InventoryTransaction) error
	GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error)
	ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error)
	ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryTransaction, error)
	ListByReference(ctx context.Context, refType, refID string) ([]*entity.InventoryTransaction, error)

	// SumOnHandDeltas suma los deltas del libro para (item, ubicación),
	// negando las filas donde la ubicación actuó como origen (replenish).
	// Invariante de reconciliación: debe igualar el on_hand_base actual.
	SumOnHandDeltas(ctx context.Context, itemID, locationID string) (int64, error)
}
