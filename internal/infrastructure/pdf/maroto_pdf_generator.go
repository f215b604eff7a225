// Package pdf renderiza la factura de una venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  N° Factura + Fecha + Estado │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto + dirección                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Producto | Cant | P.Unit | Total               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Impuestos / TOTAL                       │
//	│  FOOTER: QR con la referencia + condiciones de pago          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/money"
)

var (
	colorPrimary = &props.Color{Red: 18, Green: 64, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ ports.SaleInvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.SaleInvoicePDFGenerator con Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateSaleInvoicePDF genera el PDF y devuelve sus bytes. customer nil = venta de mostrador.
func (g *MarotoPDFGenerator) GenerateSaleInvoicePDF(
	ctx context.Context,
	sale *entity.Sale,
	company *entity.Company,
	customer *entity.Customer,
	lines []ports.SaleLineForPDF,
) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+sale.InvoiceNumber, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(sale, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(sale))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(sale, company))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(sale *entity.Sale, company *entity.Company) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2}),
		),
		col.New(5).Add(
			text.New("FACTURA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(sale.InvoiceNumber, props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6}),
			text.New("Fecha: "+sale.SaleDate.Format("2006-01-02"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
			text.New("Estado: "+strings.ToUpper(sale.Status), props.Text{
				Size: 8, Align: align.Right, Top: 17, Color: colorGray,
			}),
		),
	)
}

func customerRow(customer *entity.Customer) core.Row {
	if customer == nil {
		return row.New(10).Add(col.New(12).Add(
			text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New("Venta de mostrador", props.Text{Size: 9, Top: 5}),
		))
	}
	return row.New(16).Add(col.New(12).Add(
		text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(customer.Name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		text.New(fmt.Sprintf("Email: %s   |   Tel: %s", nonEmpty(customer.Email, "-"), nonEmpty(customer.Phone, "-")),
			props.Text{Size: 8, Top: 10, Color: colorGray}),
		text.New("Dirección: "+nonEmpty(customer.Address, "-"), props.Text{Size: 8, Top: 13, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Cant.", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func tableRows(lines []ports.SaleLineForPDF) []core.Row {
	out := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(nonEmpty(l.SKU, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.ProductName, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.Quantity.String(), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(amount(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(amount(l.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

// totalsRow: el total ya incluye impuestos, el subtotal se deriva.
func totalsRow(sale *entity.Sale) core.Row {
	label := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2})
	}
	subtotal := sale.TotalAmount.Sub(sale.TaxAmount)
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 9),
			text.New("Impuestos:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 11, Color: colorPrimary}),
		),
		col.New(3).Add(
			text.New(amount(subtotal), props.Text{Size: 9, Align: align.Right, Right: 1}),
			text.New(amount(sale.TaxAmount), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(amount(sale.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 11, Color: colorPrimary,
			}),
		),
	)
}

func footerRow(sale *entity.Sale, company *entity.Company) core.Row {
	terms := "Condiciones de pago: " + nonEmpty(sale.PaymentTerms, "contado")
	if sale.DueDate != nil {
		terms += "   |   Vence: " + sale.DueDate.Format("2006-01-02")
	}
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(QRPayload(sale, company), props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New(terms, props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(nonEmpty(sale.Notes, ""), props.Text{Size: 8, Top: 10, Left: 3, Color: colorGray}),
			text.New("Gracias por su compra.", props.Text{Style: fontstyle.Bold, Size: 9, Top: 22, Left: 3, Color: colorPrimary}),
		),
	)
}

// QRPayload texto codificado en el QR: empresa, factura, fecha y total.
func QRPayload(sale *entity.Sale, company *entity.Company) string {
	return fmt.Sprintf("company=%s;invoice=%s;date=%s;total=%s",
		company.ID, sale.InvoiceNumber, sale.SaleDate.Format("2006-01-02"), sale.TotalAmount.StringFixed(2))
}

func amount(d decimal.Decimal) string { return "$" + money.Format(d) }

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
