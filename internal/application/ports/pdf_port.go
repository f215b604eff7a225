package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// SaleLineForPDF línea de venta enriquecida con los datos del producto.
type SaleLineForPDF struct {
	SKU         string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

// SaleInvoicePDFGenerator puerto de salida para renderizar la factura de una venta.
// customer puede ser nil (venta de mostrador).
type SaleInvoicePDFGenerator interface {
	GenerateSaleInvoicePDF(
		ctx context.Context,
		sale *entity.Sale,
		company *entity.Company,
		customer *entity.Customer,
		lines []SaleLineForPDF,
	) ([]byte, error)
}
