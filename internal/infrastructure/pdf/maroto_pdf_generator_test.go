package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

func sampleSale() (*entity.Sale, *entity.Company) {
	sale := &entity.Sale{
		ID:            "s-1",
		CompanyID:     "c-1",
		SaleDate:      time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC),
		Status:        entity.SaleStatusConfirmed,
		TotalAmount:   decimal.RequireFromString("1250.5"),
		TaxAmount:     decimal.RequireFromString("50.5"),
		InvoiceNumber: "INV-2026-000007",
	}
	return sale, &entity.Company{ID: "c-1", Name: "Acme"}
}

func TestGenerateSaleInvoicePDF(t *testing.T) {
	sale, company := sampleSale()
	lines := []ports.SaleLineForPDF{{
		SKU: "CJ-1", ProductName: "Caja", Quantity: decimal.NewFromInt(2),
		UnitPrice: decimal.RequireFromString("600"), TotalPrice: decimal.RequireFromString("1200"),
	}}

	t.Run("con cliente", func(t *testing.T) {
		customer := &entity.Customer{ID: "cu-1", Name: "Cliente", Email: "c@x.com"}
		out, err := NewMarotoPDFGenerator().GenerateSaleInvoicePDF(context.Background(), sale, company, customer, lines)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	})

	t.Run("venta de mostrador sin líneas", func(t *testing.T) {
		out, err := NewMarotoPDFGenerator().GenerateSaleInvoicePDF(context.Background(), sale, company, nil, nil)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	})

	t.Run("contexto cancelado", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewMarotoPDFGenerator().GenerateSaleInvoicePDF(ctx, sale, company, nil, lines)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestQRPayload(t *testing.T) {
	sale, company := sampleSale()
	assert.Equal(t, "company=c-1;invoice=INV-2026-000007;date=2026-03-04;total=1250.50", QRPayload(sale, company))
	assert.Equal(t, "$1,250.50", amount(sale.TotalAmount))
}
