package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard financiero.
// Cada método es una consulta independiente; el caso de uso las lanza en paralelo sobre el pool.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// SumSales Σ total_amount de ventas en el estado dado, filtrando sale_date por [From, To).
func (r *AnalyticsRepo) SumSales(ctx context.Context, companyID, status string, period repository.Period) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0)
	FROM sales
	WHERE company_id = $1
	  AND status = $2
	  AND ($3::timestamptz IS NULL OR sale_date >= $3)
	  AND ($4::timestamptz IS NULL OR sale_date <  $4)`
	return r.sum(ctx, "analytics.SumSales", query, companyID, status, period.From, period.To)
}

// SumPurchases Σ total_amount de compras en el estado dado, filtrando purchase_date por [From, To).
func (r *AnalyticsRepo) SumPurchases(ctx context.Context, companyID, status string, period repository.Period) (decimal.Decimal, error) {
	const query = `
	SELECT COALESCE(SUM(total_amount), 0)
	FROM purchases
	WHERE company_id = $1
	  AND status = $2
	  AND ($3::timestamptz IS NULL OR purchase_date >= $3)
	  AND ($4::timestamptz IS NULL OR purchase_date <  $4)`
	return r.sum(ctx, "analytics.SumPurchases", query, companyID, status, period.From, period.To)
}

// SumInventoryValue Σ total_capital_value de los productos (foto actual).
func (r *AnalyticsRepo) SumInventoryValue(ctx context.Context, companyID string) (decimal.Decimal, error) {
	return r.sum(ctx, "analytics.SumInventoryValue",
		`SELECT COALESCE(SUM(total_capital_value), 0) FROM products WHERE company_id = $1`, companyID)
}

// SumOutstandingReceivables Σ outstanding_balance de los clientes (foto actual).
func (r *AnalyticsRepo) SumOutstandingReceivables(ctx context.Context, companyID string) (decimal.Decimal, error) {
	return r.sum(ctx, "analytics.SumOutstandingReceivables",
		`SELECT COALESCE(SUM(outstanding_balance), 0) FROM customers WHERE company_id = $1`, companyID)
}

func (r *AnalyticsRepo) sum(ctx context.Context, op, query string, args ...any) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return decimal.Zero, wrap(op, err)
	}
	return total, nil
}
