package sales

import (
	"context"
	"fmt"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

// PDFUseCase genera la factura en PDF de una venta.
type PDFUseCase struct {
	repos     repository.Repositories
	generator ports.SaleInvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(repos repository.Repositories, generator ports.SaleInvoicePDFGenerator) *PDFUseCase {
	return &PDFUseCase{repos: repos, generator: generator}
}

// DownloadInvoicePDF carga venta, empresa, cliente y líneas y delega el render al generador.
// Una venta cancelada no tiene factura descargable (ErrConflict).
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, saleID string) (pdfBytes []byte, filename string, err error) {
	sale, err := uc.repos.Sales.GetByID(ctx, companyID, saleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	if sale == nil {
		return nil, "", domain.ErrNotFound
	}
	if sale.Status == entity.SaleStatusCancelled {
		return nil, "", fmt.Errorf("%w: la venta %s está cancelada", domain.ErrConflict, sale.InvoiceNumber)
	}

	company, err := uc.repos.Companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.repos.Customers.GetByID(ctx, companyID, sale.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
		}
	}

	items, err := uc.repos.Sales.ListItems(ctx, sale.ID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener líneas: %w", err)
	}
	lines := make([]ports.SaleLineForPDF, 0, len(items))
	for _, it := range items {
		line := ports.SaleLineForPDF{
			ProductName: "Producto " + it.ProductID,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
		}
		p, err := uc.repos.Products.GetByID(ctx, companyID, it.ProductID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener producto %s: %w", it.ProductID, err)
		}
		if p != nil {
			line.ProductName = p.Name
			line.SKU = p.SKU
		}
		lines = append(lines, line)
	}

	pdfBytes, err = uc.generator.GenerateSaleInvoicePDF(ctx, sale, company, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("factura_%s.pdf", sale.InvoiceNumber), nil
}
