// Package pdf genera la hoja de reposición imprimible que acompaña al
// montacarguista en el recorrido bulk → forward pick.
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/bodega-wms/internal/application/dto"
	appinventory "github.com/jhoicas/bodega-wms/internal/application/inventory"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ appinventory.WorksheetRenderer = (*MarotoWorksheetGenerator)(nil)

// MarotoWorksheetGenerator implementa inventory.WorksheetRenderer usando Maroto v2.
type MarotoWorksheetGenerator struct{}

// NewMarotoWorksheetGenerator construye el generador.
func NewMarotoWorksheetGenerator() *MarotoWorksheetGenerator { return &MarotoWorksheetGenerator{} }

// RenderReplenishmentWorksheet genera el PDF de la lista de reposición y
// devuelve sus bytes.
func (g *MarotoWorksheetGenerator) RenderReplenishmentWorksheet(title string, items []dto.ReplenishmentReviewItemDTO) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(title, len(items)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, item := range items {
		m.AddRows(detailRow(item))
	}
	if len(items) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin ubicaciones por debajo del mínimo.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		)))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de reposición: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: título (izq) y fecha + total de líneas (der).
func headerRow(title string, total int) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	return row.New(14).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(4).Add(
			text.New("Generada: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Líneas: %d", total), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Descripción", 3, align.Left),
		h("Destino", 2, align.Left),
		h("Origen", 2, align.Left),
		h("Actual/Mín", 2, align.Right),
		h("Mover", 1, align.Right),
	)
}

// detailRow: una fila por ubicación a reponer.
func detailRow(item dto.ReplenishmentReviewItemDTO) core.Row {
	parent := "sin padre"
	if item.ParentCode != nil {
		parent = *item.ParentCode
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(item.BaseSku, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(3).Add(text.New(item.ItemName, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(item.LocationCode, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(parent, props.Text{
			Size: 8, Align: align.Left, Top: 1, Left: 1,
		})),
		col.New(2).Add(text.New(
			fmt.Sprintf("%d / %d", item.OnHandBase, item.MinQty),
			props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
		col.New(1).Add(text.New(
			fmt.Sprintf("%d", item.SuggestedQty),
			props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1},
		)),
	)
}
