package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/bodega-wms/internal/domain/entity"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

// InventoryTransactionRepo implementación del libro de movimientos sobre
// PostgreSQL (usable con pool o tx). La tabla es append-only.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

const transactionColumns = `id, inventory_item_id, transaction_type, base_qty, base_qty_delta,
	source_state, target_state, from_location_id, to_location_id,
	order_id, order_item_id, reference_type, reference_id,
	provenance, notes, created_by, created_at`

// Append persiste una fila del libro. Si el ID ya existe (reintento del
// caller con el mismo ID) la inserción es idempotente: no duplica ni falla.
func (r *InventoryTransactionRepo) Append(ctx context.Context, t *entity.InventoryTransaction) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO inventory_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.InventoryItemID, t.TransactionType, t.BaseQty, t.BaseQtyDelta,
		t.SourceState, t.TargetState, t.FromLocationID, t.ToLocationID,
		t.OrderID, t.OrderItemID, t.ReferenceType, t.ReferenceID,
		string(t.Provenance), t.Notes, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil
		}
		return fmt.Errorf("append inventory transaction: %w", err)
	}
	return nil
}

// GetByID obtiene una fila del libro por ID, o nil si no existe.
func (r *InventoryTransactionRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions WHERE id = $1`
	t, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	return t, nil
}

// ListByItem lista movimientos de un item en un rango de fechas.
func (r *InventoryTransactionRepo) ListByItem(ctx context.Context, itemID string, from, to *time.Time, limit, offset int) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions WHERE inventory_item_id = $1`
	args := []any{itemID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)
	return r.list(ctx, query, args...)
}

// ListByOrder lista los movimientos asociados a una orden.
func (r *InventoryTransactionRepo) ListByOrder(ctx context.Context, orderID string) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM inventory_transactions WHERE order_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, orderID)
}

// ListByReference lista los movimientos de una referencia externa
// (ej. lote de recibo, conteo cíclico).
func (r *InventoryTransactionRepo) ListByReference(ctx context.Context, refType, refID string) ([]*entity.InventoryTransaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM inventory_transactions
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY created_at ASC`
	return r.list(ctx, query, refType, refID)
}

// SumOnHandDeltas suma los deltas del libro para (item, ubicación), negando
// las filas donde la ubicación fue origen de una reposición. Invariante de
// reconciliación: el resultado debe igualar el on_hand_base actual.
func (r *InventoryTransactionRepo) SumOnHandDeltas(ctx context.Context, itemID, locationID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE
				WHEN t.to_location_id = $2 THEN t.base_qty_delta
				WHEN t.from_location_id = $2 THEN -t.base_qty_delta
				ELSE 0
			END), 0)
		FROM inventory_transactions t
		WHERE t.inventory_item_id = $1
		  AND (t.to_location_id = $2 OR t.from_location_id = $2)`
	var sum int64
	if err := r.q.QueryRow(ctx, query, itemID, locationID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum on-hand deltas: %w", err)
	}
	return sum, nil
}

func (r *InventoryTransactionRepo) list(ctx context.Context, query string, args ...any) ([]*entity.InventoryTransaction, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	var provenance string
	err := row.Scan(
		&t.ID, &t.InventoryItemID, &t.TransactionType, &t.BaseQty, &t.BaseQtyDelta,
		&t.SourceState, &t.TargetState, &t.FromLocationID, &t.ToLocationID,
		&t.OrderID, &t.OrderItemID, &t.ReferenceType, &t.ReferenceID,
		&provenance, &t.Notes, &t.CreatedBy, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Provenance = entity.Provenance(provenance)
	return &t, nil
}
