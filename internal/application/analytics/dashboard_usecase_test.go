package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/memory"
)

const (
	companyA = "c-acme"
	companyB = "c-globex"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func intp(v int) *int { return &v }

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }

func seedDashboard(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: companyA, Name: "Acme"}))
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: companyB, Name: "Globex"}))

	sales := []entity.Sale{
		{ID: "s1", CompanyID: companyA, InvoiceNumber: "INV-2026-000001", Status: entity.SaleStatusDelivered, SaleDate: day(2026, 3, 2), TotalAmount: dec("200")},
		{ID: "s2", CompanyID: companyA, InvoiceNumber: "INV-2026-000002", Status: entity.SaleStatusDelivered, SaleDate: day(2026, 4, 9), TotalAmount: dec("100")},
		{ID: "s3", CompanyID: companyA, InvoiceNumber: "INV-2026-000003", Status: entity.SaleStatusConfirmed, SaleDate: day(2026, 4, 9), TotalAmount: dec("999")},
		{ID: "s4", CompanyID: companyA, InvoiceNumber: "INV-2025-000001", Status: entity.SaleStatusDelivered, SaleDate: day(2025, 11, 1), TotalAmount: dec("50")},
		{ID: "s5", CompanyID: companyB, InvoiceNumber: "INV-2026-000001", Status: entity.SaleStatusDelivered, SaleDate: day(2026, 3, 2), TotalAmount: dec("7000")},
	}
	for i := range sales {
		require.NoError(t, repos.Sales.Create(ctx, &sales[i]))
	}
	purchases := []entity.Purchase{
		{ID: "p1", CompanyID: companyA, Status: entity.PurchaseStatusCompleted, PurchaseDate: day(2026, 3, 1), TotalAmount: dec("150")},
		{ID: "p2", CompanyID: companyA, Status: entity.PurchaseStatusPending, PurchaseDate: day(2026, 4, 1), TotalAmount: dec("80")},
		{ID: "p3", CompanyID: companyA, Status: entity.PurchaseStatusCancelled, PurchaseDate: day(2026, 4, 1), TotalAmount: dec("500")},
		{ID: "p4", CompanyID: companyA, Status: entity.PurchaseStatusCompleted, PurchaseDate: day(2025, 11, 1), TotalAmount: dec("40")},
	}
	for i := range purchases {
		require.NoError(t, repos.Purchases.Create(ctx, &purchases[i]))
	}
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "x1", CompanyID: companyA, SKU: "A", TotalCapitalValue: dec("120.50")}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "x2", CompanyID: companyA, SKU: "B", TotalCapitalValue: dec("79.50")}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "x3", CompanyID: companyB, SKU: "A", TotalCapitalValue: dec("1000")}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "k1", CompanyID: companyA, Name: "K", OutstandingBalance: dec("35")}))
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "k2", CompanyID: companyB, Name: "K", OutstandingBalance: dec("900")}))
	return store
}

func TestFinancialSummary_AnioActual(t *testing.T) {
	uc := NewDashboardUseCase(seedDashboard(t).Analytics())

	got, err := uc.FinancialSummary(context.Background(), companyA, intp(2026), nil)
	require.NoError(t, err)
	assert.True(t, dec("300").Equal(got.TotalRevenue), got.TotalRevenue.String())
	assert.True(t, dec("150").Equal(got.TotalPurchases))
	assert.True(t, dec("150").Equal(got.GrossProfit))
	assert.Equal(t, "50", got.ProfitMargin.String())
	assert.True(t, dec("200").Equal(got.InventoryValue))
	assert.True(t, dec("35").Equal(got.OutstandingReceivables))
	assert.True(t, dec("80").Equal(got.SupplierPayables))
	assert.True(t, got.GrossProfit.Equal(got.CashFlow))
	assert.Equal(t, 2026, *got.Year)
	assert.Nil(t, got.Month)
}

func TestFinancialSummary_Periodos(t *testing.T) {
	uc := NewDashboardUseCase(seedDashboard(t).Analytics())
	ctx := context.Background()

	all, err := uc.FinancialSummary(ctx, companyA, nil, nil)
	require.NoError(t, err)
	assert.True(t, dec("350").Equal(all.TotalRevenue))
	assert.True(t, dec("190").Equal(all.TotalPurchases))

	april, err := uc.FinancialSummary(ctx, companyA, intp(2026), intp(4))
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(april.TotalRevenue))
	assert.True(t, april.TotalPurchases.IsZero())
	assert.Equal(t, "100", april.ProfitMargin.String())
	// payables no dependen del período
	assert.True(t, dec("80").Equal(april.SupplierPayables))
}

func TestFinancialSummary_SinIngresosMargenCero(t *testing.T) {
	uc := NewDashboardUseCase(seedDashboard(t).Analytics())
	got, err := uc.FinancialSummary(context.Background(), companyA, intp(2024), nil)
	require.NoError(t, err)
	assert.True(t, got.TotalRevenue.IsZero())
	assert.True(t, got.ProfitMargin.IsZero())
}

func TestFinancialSummary_ParametrosInvalidos(t *testing.T) {
	uc := NewDashboardUseCase(seedDashboard(t).Analytics())
	ctx := context.Background()
	cases := []struct {
		name        string
		year, month *int
	}{
		{"mes sin año", nil, intp(3)},
		{"mes 13", intp(2026), intp(13)},
		{"mes 0", intp(2026), intp(0)},
		{"año fuera de rango", intp(1900), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.FinancialSummary(ctx, companyA, tc.year, tc.month)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSummarize_MargenRedondeado(t *testing.T) {
	s := Summarize(dec("3"), dec("2"))
	assert.Equal(t, "33.33", s.ProfitMargin.String())
	s = Summarize(dec("100"), dec("150"))
	assert.Equal(t, "-50", s.ProfitMargin.String())
	assert.True(t, dec("-50").Equal(s.GrossProfit))
}

type brokenAnalytics struct{ repository.AnalyticsRepository }

func (brokenAnalytics) SumInventoryValue(context.Context, string) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("conexión perdida")
}

func TestFinancialSummary_PropagaErrorDeConsulta(t *testing.T) {
	uc := NewDashboardUseCase(brokenAnalytics{seedDashboard(t).Analytics()})
	_, err := uc.FinancialSummary(context.Background(), companyA, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valor de inventario")
}
