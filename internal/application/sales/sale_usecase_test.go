package sales

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/inventory"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/memory"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
)

const (
	companyA = "a0000000-0000-4000-8000-000000000001"
	companyB = "b0000000-0000-4000-8000-000000000002"
	actor    = "u0000000-0000-4000-8000-000000000001"
	prodP    = "11111111-1111-4111-8111-111111111111"
	customer = "66666666-6666-4666-8666-666666666666"
)

var now = time.Date(2026, 7, 1, 15, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	repos  repository.Repositories
	ledger *inventory.StockLedger
	uc     *SaleUseCase
}

// newFixture deja el producto P con 10 unidades a costo 4.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: companyA, Name: "Acme", CreatedAt: now}))
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: companyB, Name: "Globex", CreatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: prodP, CompanyID: companyA, Name: "Caja", SKU: "CJ-1", CreatedAt: now}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: customer, CompanyID: companyA, Name: "Cliente", CreatedAt: now}))

	idp := ids.NewFixed(now)
	ledger := inventory.NewStockLedger(store, repos, idp, inventory.Policy{})
	cost := dec("4")
	_, err := ledger.RecordMovement(ctx, inventory.MovementInput{
		CompanyID: companyA, ProductID: prodP, Type: entity.MovementTypeInbound, Quantity: dec("10"), UnitCost: &cost,
	})
	require.NoError(t, err)
	return &fixture{repos: repos, ledger: ledger, uc: NewSaleUseCase(store, repos, ledger, idp)}
}

func (f *fixture) quantity(t *testing.T) decimal.Decimal {
	t.Helper()
	q, err := f.ledger.CurrentQuantity(context.Background(), companyA, prodP)
	require.NoError(t, err)
	return q
}

func saleOf(qty string) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{
		CustomerID: customer,
		Items:      []dto.DocumentItemRequest{{ProductID: prodP, Quantity: dec(qty), UnitPrice: dec("9")}},
	}
}

func TestCreateSale_DescuentaStockYNumeraFactura(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.CreateSale(ctx, companyA, actor, saleOf("3"))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.True(t, dec("27").Equal(res.Total))
	assert.Equal(t, "INV-2026-000001", res.InvoiceNumber)
	assert.True(t, dec("7").Equal(f.quantity(t)))

	movs, err := f.repos.Movements.ListByCompany(ctx, companyA, repository.MovementFilter{ReferenceType: entity.ReferenceSale})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeOutbound, movs[0].Type)
	assert.Equal(t, res.SaleID, movs[0].ReferenceID)

	p, err := f.repos.Products.GetByID(ctx, companyA, prodP)
	require.NoError(t, err)
	assert.True(t, dec("28").Equal(p.TotalCapitalValue))

	res2, err := f.uc.CreateSale(ctx, companyA, actor, saleOf("1"))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-000002", res2.InvoiceNumber)

	got, err := f.uc.GetSale(ctx, companyA, res.SaleID)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusConfirmed, got.Status)
	require.NotNil(t, got.CustomerID)
	assert.Equal(t, customer, *got.CustomerID)
	require.Len(t, got.Items, 1)
}

func TestCreateSale_StockInsuficienteNoConsumeConsecutivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateSale(ctx, companyA, actor, saleOf("11"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, dec("10").Equal(f.quantity(t)))

	list, err := f.uc.ListSales(ctx, companyA, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)

	res, err := f.uc.CreateSale(ctx, companyA, actor, saleOf("10"))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-000001", res.InvoiceNumber)
	assert.True(t, f.quantity(t).IsZero())
}

func TestCreateSale_NumeracionPorEmpresaYAnio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := saleOf("1")
	in.SaleDate = "2025-12-31"
	res, err := f.uc.CreateSale(ctx, companyA, actor, in)
	require.NoError(t, err)
	assert.Equal(t, "INV-2025-000001", res.InvoiceNumber)

	res, err = f.uc.CreateSale(ctx, companyA, actor, saleOf("1"))
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-000001", res.InvoiceNumber)
}

func TestCreateSale_ClienteDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateSale(context.Background(), companyB, actor, dto.CreateSaleRequest{
		CustomerID: customer,
		Items:      []dto.DocumentItemRequest{{ProductID: prodP, Quantity: dec("1"), UnitPrice: dec("1")}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, dec("10").Equal(f.quantity(t)))
}

func TestCreateSale_Concurrentes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make(chan error, 15)
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.CreateSale(ctx, companyA, actor, saleOf("1"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok, insufficient := 0, 0
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficient++
		default:
			t.Errorf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 10, ok)
	assert.Equal(t, 5, insufficient)
	assert.True(t, f.quantity(t).IsZero())

	list, err := f.uc.ListSales(ctx, companyA, dto.PageRequest{Limit: 100})
	require.NoError(t, err)
	seen := map[string]bool{}
	for _, s := range list {
		assert.False(t, seen[s.InvoiceNumber], "factura repetida %s", s.InvoiceNumber)
		seen[s.InvoiceNumber] = true
	}
	assert.Len(t, seen, 10)
}

func TestUpdateStatus_Venta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.uc.CreateSale(ctx, companyA, actor, saleOf("4"))
	require.NoError(t, err)
	out, err := f.uc.UpdateStatus(ctx, companyA, actor, res.SaleID, entity.SaleStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, entity.SaleStatusCancelled, out.Status)
	assert.True(t, dec("10").Equal(f.quantity(t)))

	check, err := f.ledger.Reconcile(ctx, companyA, prodP)
	require.NoError(t, err)
	assert.True(t, check.Consistent)

	_, err = f.uc.UpdateStatus(ctx, companyA, actor, res.SaleID, entity.SaleStatusDelivered)
	assert.ErrorIs(t, err, domain.ErrConflict)

	res, err = f.uc.CreateSale(ctx, companyA, actor, saleOf("2"))
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, companyA, actor, res.SaleID, entity.SaleStatusDelivered)
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, companyA, actor, res.SaleID, entity.SaleStatusCancelled)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

type fakePDF struct {
	lines    []ports.SaleLineForPDF
	customer *entity.Customer
}

func (g *fakePDF) GenerateSaleInvoicePDF(_ context.Context, sale *entity.Sale, _ *entity.Company, c *entity.Customer, lines []ports.SaleLineForPDF) ([]byte, error) {
	g.lines = lines
	g.customer = c
	return []byte(fmt.Sprintf("%%PDF %s", sale.InvoiceNumber)), nil
}

func TestDownloadInvoicePDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	gen := &fakePDF{}
	uc := NewPDFUseCase(f.repos, gen)

	res, err := f.uc.CreateSale(ctx, companyA, actor, saleOf("2"))
	require.NoError(t, err)

	pdf, name, err := uc.DownloadInvoicePDF(ctx, companyA, res.SaleID)
	require.NoError(t, err)
	assert.Equal(t, "factura_INV-2026-000001.pdf", name)
	assert.Equal(t, "%PDF INV-2026-000001", string(pdf))
	require.Len(t, gen.lines, 1)
	assert.Equal(t, "Caja", gen.lines[0].ProductName)
	assert.Equal(t, "CJ-1", gen.lines[0].SKU)
	require.NotNil(t, gen.customer)

	_, _, err = uc.DownloadInvoicePDF(ctx, companyB, res.SaleID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.UpdateStatus(ctx, companyA, actor, res.SaleID, entity.SaleStatusCancelled)
	require.NoError(t, err)
	_, _, err = uc.DownloadInvoicePDF(ctx, companyA, res.SaleID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// brokenProducts simula una falla de almacenamiento al leer productos.
type brokenProducts struct {
	repository.ProductRepository
}

func (brokenProducts) GetByID(context.Context, string, string) (*entity.Product, error) {
	return nil, errors.New("conexión perdida")
}

func TestDownloadInvoicePDF_FallaAlLeerProducto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	res, err := f.uc.CreateSale(ctx, companyA, actor, saleOf("1"))
	require.NoError(t, err)

	repos := f.repos
	repos.Products = brokenProducts{ProductRepository: f.repos.Products}
	gen := &fakePDF{}

	_, _, err = NewPDFUseCase(repos, gen).DownloadInvoicePDF(ctx, companyA, res.SaleID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conexión perdida")
	assert.Nil(t, gen.lines, "no se genera un PDF con nombres de producto faltantes")
}

func TestFormatInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-2026-000042", FormatInvoiceNumber(2026, 42))
	assert.Equal(t, "INV-2026-1234567", FormatInvoiceNumber(2026, 1234567))
}
