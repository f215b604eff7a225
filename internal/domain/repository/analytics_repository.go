package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Period rango [From, To) opcional; nil en ambos extremos = sin filtro.
type Period struct {
	From *time.Time
	To   *time.Time
}

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard.
// Cada método es una consulta independiente filtrada por empresa.
type AnalyticsRepository interface {
	SumSales(ctx context.Context, companyID, status string, period Period) (decimal.Decimal, error)
	SumPurchases(ctx context.Context, companyID, status string, period Period) (decimal.Decimal, error)
	SumInventoryValue(ctx context.Context, companyID string) (decimal.Decimal, error)
	SumOutstandingReceivables(ctx context.Context, companyID string) (decimal.Decimal, error)
}
