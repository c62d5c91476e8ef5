package inventory

import (
	"context"

	"github.com/jhoicas/bodega-wms/internal/application/dto"
	"github.com/jhoicas/bodega-wms/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que la mutación de contadores y la
// fila del libro se confirmen juntas (y que una reposición toque sus dos
// filas de nivel en la misma transacción).
type TxRunner interface {
	Run(ctx context.Context, fn func(
		levelRepo repository.InventoryLevelRepository,
		ledgerRepo repository.InventoryTransactionRepository,
	) error) error
}

// WorksheetRenderer puerto para generar la hoja de reposición imprimible.
type WorksheetRenderer interface {
	RenderReplenishmentWorksheet(title string, items []dto.ReplenishmentReviewItemDTO) ([]byte, error)
}
