package dto

import "github.com/shopspring/decimal"

// FinancialSummaryDTO respuesta de GET /api/dashboard/financial.
type FinancialSummaryDTO struct {
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	TotalPurchases         decimal.Decimal `json:"totalPurchases"`
	GrossProfit            decimal.Decimal `json:"grossProfit"`
	ProfitMargin           decimal.Decimal `json:"profitMargin"` // porcentaje, 2 decimales
	InventoryValue         decimal.Decimal `json:"inventoryValue"`
	OutstandingReceivables decimal.Decimal `json:"outstandingReceivables"`
	SupplierPayables       decimal.Decimal `json:"supplierPayables"`
	CashFlow               decimal.Decimal `json:"cashFlow"`
	Year                   *int            `json:"year,omitempty"`
	Month                  *int            `json:"month,omitempty"`
}

// InsightProductDTO producto señalado por el análisis de inventario.
type InsightProductDTO struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	SKU                   string          `json:"sku"`
	CurrentQuantity       decimal.Decimal `json:"currentQuantity"`
	DaysInStock           int             `json:"daysInStock"`
	MinimumStockThreshold decimal.Decimal `json:"minimumStockThreshold"`
	TotalCapitalValue     decimal.Decimal `json:"totalCapitalValue"`
}

// InsightsDTO respuesta de POST /api/ai/insights.
type InsightsDTO struct {
	SlowMovingProducts  int                 `json:"slowMovingProducts"`
	DeadStock           int                 `json:"deadStock"`
	LowStockAlerts      int                 `json:"lowStockAlerts"`
	TotalInventoryValue decimal.Decimal     `json:"totalInventoryValue"`
	DeadStockValue      decimal.Decimal     `json:"deadStockValue"`
	Recommendations     []string            `json:"recommendations"`
	SlowMovingItems     []InsightProductDTO `json:"slowMovingItems"`
	DeadStockItems      []InsightProductDTO `json:"deadStockItems"`
	LowStockItems       []InsightProductDTO `json:"lowStockItems"`
}
