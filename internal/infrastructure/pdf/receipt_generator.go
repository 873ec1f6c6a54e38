// Package pdf genera el comprobante de compra de la tienda.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: PicoSur  │  N° de orden + Fecha + Cliente          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Medida | P.Unit | Subtotal        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Envío / TOTAL                          │
//	│  FOOTER: QR con el id de la orden                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	appcart "github.com/jhoicas/Tienda-api/internal/application/cart"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/moneyfmt"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 180, Green: 120, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReceiptGenerator implementa cart.ReceiptGenerator usando Maroto v2.
type MarotoReceiptGenerator struct {
	storeName string
}

// NewMarotoReceiptGenerator construye el generador.
func NewMarotoReceiptGenerator(storeName string) *MarotoReceiptGenerator {
	return &MarotoReceiptGenerator{storeName: storeName}
}

// GenerateReceipt genera el PDF del comprobante y devuelve sus bytes.
func (g *MarotoReceiptGenerator) GenerateReceipt(res appcart.CheckoutResult, date time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de compra", true).
		WithAuthor(g.storeName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(res, date))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, item := range res.Items {
		m.AddRows(tableItemRow(item))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRows(res.Summary)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(res.OrderID))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la tienda (izq) y orden + fecha + cliente (der).
func (g *MarotoReceiptGenerator) headerRow(res appcart.CheckoutResult, date time.Time) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.storeName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New("Cervezas artesanales", props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Orden: "+res.OrderID, props.Text{
				Size: 8, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+date.Format("02/01/2006 15:04"), props.Text{
				Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Cliente: "+res.User, props.Text{
				Size: 9, Align: align.Right, Top: 13,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary}
	return row.New(7).Add(
		col.New(1).Add(text.New("Cant", header)),
		col.New(4).Add(text.New("Producto", header)),
		col.New(3).Add(text.New("Medida", header)),
		col.New(2).Add(text.New("P. Unit", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Align: align.Right})),
		col.New(2).Add(text.New("Subtotal", props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Align: align.Right})),
	)
}

func tableItemRow(item entity.CartLine) core.Row {
	cell := props.Text{Size: 9}
	money := props.Text{Size: 9, Align: align.Right}
	return row.New(6).Add(
		col.New(1).Add(text.New(fmt.Sprintf("%d", item.Quantity), cell)),
		col.New(4).Add(text.New(item.Name, cell)),
		col.New(3).Add(text.New(item.UnitMeasure, props.Text{Size: 8, Color: colorGray})),
		col.New(2).Add(text.New(moneyfmt.Pesos(item.Price), money)),
		col.New(2).Add(text.New(moneyfmt.Pesos(item.Subtotal()), money)),
	)
}

func totalsRows(s appcart.Summary) []core.Row {
	label := props.Text{Size: 9, Align: align.Right}
	value := props.Text{Size: 9, Align: align.Right}

	shipping := moneyfmt.Pesos(s.Shipping)
	if s.FreeShipping {
		shipping = "Gratis"
	}

	return []core.Row{
		row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New("Subtotal:", label)),
			col.New(2).Add(text.New(moneyfmt.Pesos(s.Subtotal), value)),
		),
		row.New(6).Add(
			col.New(8),
			col.New(2).Add(text.New("Envío:", label)),
			col.New(2).Add(text.New(shipping, value)),
		),
		row.New(8).Add(
			col.New(8),
			col.New(2).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary})),
			col.New(2).Add(text.New(moneyfmt.Pesos(s.GrandTotal), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary})),
		),
	}
}

// footerRow: QR con el id de la orden para reimprimir o verificar el recibo.
func footerRow(orderID string) core.Row {
	return row.New(24).Add(
		col.New(3).Add(code.NewQr(orderID, props.Rect{Percent: 90})),
		col.New(9).Add(
			text.New("Gracias por tu compra.", props.Text{Size: 9, Top: 6}),
			text.New("Conservá este comprobante: es la única constancia de la orden.", props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}
