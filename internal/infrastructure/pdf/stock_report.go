// Package pdf genera el reporte de stock del salón en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación                       │
//	│  RESUMEN: productos / valor / bajos / agotados              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Categoría | Stock | Umbral | Estado      │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/salon-inventario-api/internal/application/dto"
	"github.com/jhoicas/salon-inventario-api/internal/application/inventory"
	"github.com/jhoicas/salon-inventario-api/internal/domain/entity"
	domaininv "github.com/jhoicas/salon-inventario-api/internal/domain/inventory"
)

var _ inventory.StockReportGenerator = (*StockReportGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 120, Green: 40, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 30}
)

var levelLabels = map[string]string{
	domaininv.LevelOK:         "OK",
	domaininv.LevelLow:        "Bajo",
	domaininv.LevelCritical:   "Crítico",
	domaininv.LevelOutOfStock: "Agotado",
}

// StockReportGenerator implementa inventory.StockReportGenerator con Maroto v2.
type StockReportGenerator struct{}

// NewStockReportGenerator construye el generador.
func NewStockReportGenerator() *StockReportGenerator { return &StockReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *StockReportGenerator) GenerateStockReport(
	stats *dto.InventoryStatsResponse,
	products []*entity.Product,
	generatedAt time.Time,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de inventario", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(generatedAt))
	m.AddRows(summaryRow(stats))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(products)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(text.New("REPORTE DE INVENTARIO", props.Text{
			Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New("Generado: "+at.Format("02/01/2006 15:04"), props.Text{
			Size: 8, Align: align.Right, Top: 4, Color: colorGray,
		})),
	)
}

func summaryRow(stats *dto.InventoryStatsResponse) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Top: 5}),
		)
	}
	return row.New(14).Add(
		cell("Productos activos", fmt.Sprintf("%d", stats.TotalProducts)),
		cell("Valor del stock", stats.TotalStockValue.StringFixed(2)),
		cell("Stock bajo", fmt.Sprintf("%d", stats.LowStockCount)),
		cell("Agotados", fmt.Sprintf("%d", stats.OutOfStockCount)),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Categoría", 3, align.Left),
		h("Stock", 2, align.Right),
		h("Umbral", 1, align.Right),
		h("Estado", 2, align.Center),
	)
}

func productRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		level := domaininv.StockLevel(p)
		status := props.Text{Size: 8, Align: align.Center, Top: 1}
		if level != domaininv.LevelOK {
			status.Color = colorAlert
			status.Style = fontstyle.Bold
		}
		rows = append(rows, row.New(7).Add(
			col.New(4).Add(text.New(p.Name, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(p.Category, props.Text{Size: 8, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New(p.CurrentStock.String()+" "+p.Unit, props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(1).Add(text.New(p.LowStockThreshold.String(), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(levelLabels[level], status)),
		))
	}
	return rows
}
