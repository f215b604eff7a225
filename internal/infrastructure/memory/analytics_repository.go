package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*analyticsRepo)(nil)

type analyticsRepo struct{ db access }

func inPeriod(t time.Time, p repository.Period) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && !t.Before(*p.To) {
		return false
	}
	return true
}

func (r *analyticsRepo) SumSales(ctx context.Context, companyID, status string, period repository.Period) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.db.read(ctx, func(st *state) error {
		for _, s := range st.sales {
			if s.CompanyID == companyID && s.Status == status && inPeriod(s.SaleDate, period) {
				sum = sum.Add(s.TotalAmount)
			}
		}
		return nil
	})
	return sum, err
}

func (r *analyticsRepo) SumPurchases(ctx context.Context, companyID, status string, period repository.Period) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.db.read(ctx, func(st *state) error {
		for _, p := range st.purchases {
			if p.CompanyID == companyID && p.Status == status && inPeriod(p.PurchaseDate, period) {
				sum = sum.Add(p.TotalAmount)
			}
		}
		return nil
	})
	return sum, err
}

func (r *analyticsRepo) SumInventoryValue(ctx context.Context, companyID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.db.read(ctx, func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == companyID {
				sum = sum.Add(p.TotalCapitalValue)
			}
		}
		return nil
	})
	return sum, err
}

func (r *analyticsRepo) SumOutstandingReceivables(ctx context.Context, companyID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.db.read(ctx, func(st *state) error {
		for _, c := range st.customers {
			if c.CompanyID == companyID {
				sum = sum.Add(c.OutstandingBalance)
			}
		}
		return nil
	})
	return sum, err
}
