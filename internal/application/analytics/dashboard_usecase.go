// Package analytics contiene el dashboard financiero y el análisis de inventario.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera el resumen financiero de una empresa.
// Sólo lee: cada agregado es una consulta independiente del AnalyticsRepository.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// PeriodFor valida year/month y devuelve el rango [inicio, fin).
// Sin año = sin filtro; mes sin año es inválido.
func PeriodFor(year, month *int) (repository.Period, error) {
	if year == nil {
		if month != nil {
			return repository.Period{}, domain.NewValidationError("month requiere year")
		}
		return repository.Period{}, nil
	}
	if *year < 1970 || *year > 9999 {
		return repository.Period{}, domain.NewValidationError(fmt.Sprintf("year fuera de rango: %d", *year))
	}
	from := time.Date(*year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	if month != nil {
		if *month < 1 || *month > 12 {
			return repository.Period{}, domain.NewValidationError(fmt.Sprintf("month fuera de rango: %d", *month))
		}
		from = time.Date(*year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	}
	return repository.Period{From: &from, To: &to}, nil
}

// FinancialSummary lanza los cinco agregados en paralelo y los combina:
//
//	totalRevenue           ventas delivered (en el período)
//	totalPurchases         compras completed (en el período)
//	supplierPayables       compras pending
//	inventoryValue         Σ total_capital_value de productos
//	outstandingReceivables Σ outstanding_balance de clientes
//
// grossProfit = revenue - purchases; profitMargin = grossProfit / revenue × 100 (0 si no hay ingresos).
// cashFlow se reporta igual a grossProfit: el modelo no registra cobros ni pagos.
func (uc *DashboardUseCase) FinancialSummary(ctx context.Context, companyID string, year, month *int) (*dto.FinancialSummaryDTO, error) {
	period, err := PeriodFor(year, month)
	if err != nil {
		return nil, err
	}

	type sumResult struct {
		value decimal.Decimal
		err   error
	}
	run := func(fn func() (decimal.Decimal, error)) <-chan sumResult {
		ch := make(chan sumResult, 1)
		go func() {
			v, err := fn()
			ch <- sumResult{v, err}
		}()
		return ch
	}

	revenueCh := run(func() (decimal.Decimal, error) {
		return uc.analyticsRepo.SumSales(ctx, companyID, entity.SaleStatusDelivered, period)
	})
	purchasesCh := run(func() (decimal.Decimal, error) {
		return uc.analyticsRepo.SumPurchases(ctx, companyID, entity.PurchaseStatusCompleted, period)
	})
	payablesCh := run(func() (decimal.Decimal, error) {
		return uc.analyticsRepo.SumPurchases(ctx, companyID, entity.PurchaseStatusPending, repository.Period{})
	})
	inventoryCh := run(func() (decimal.Decimal, error) {
		return uc.analyticsRepo.SumInventoryValue(ctx, companyID)
	})
	receivablesCh := run(func() (decimal.Decimal, error) {
		return uc.analyticsRepo.SumOutstandingReceivables(ctx, companyID)
	})

	revenue := <-revenueCh
	purchases := <-purchasesCh
	payables := <-payablesCh
	inventoryValue := <-inventoryCh
	receivables := <-receivablesCh

	for _, r := range []struct {
		name string
		res  sumResult
	}{
		{"ingresos", revenue},
		{"compras", purchases},
		{"cuentas por pagar", payables},
		{"valor de inventario", inventoryValue},
		{"cuentas por cobrar", receivables},
	} {
		if r.res.err != nil {
			return nil, fmt.Errorf("dashboard: %s: %w", r.name, r.res.err)
		}
	}

	summary := Summarize(revenue.value, purchases.value)
	summary.InventoryValue = inventoryValue.value.Round(2)
	summary.OutstandingReceivables = receivables.value.Round(2)
	summary.SupplierPayables = payables.value.Round(2)
	summary.Year = year
	summary.Month = month
	return summary, nil
}

// Summarize calcula los campos derivados de ingresos y compras.
func Summarize(revenue, purchases decimal.Decimal) *dto.FinancialSummaryDTO {
	gross := revenue.Sub(purchases)
	margin := decimal.Zero
	if !revenue.IsZero() {
		margin = gross.Div(revenue).Mul(hundred).Round(2)
	}
	return &dto.FinancialSummaryDTO{
		TotalRevenue:   revenue.Round(2),
		TotalPurchases: purchases.Round(2),
		GrossProfit:    gross.Round(2),
		ProfitMargin:   margin,
		CashFlow:       gross.Round(2),
	}
}
