package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. La cantidad inicial siempre es 0: el stock entra por movimientos.
type CreateProductRequest struct {
	Name                  string          `json:"name" validate:"required,max=200"`
	Category              string          `json:"category" validate:"max=100"`
	SKU                   string          `json:"sku" validate:"max=100"`
	PurchaseCost          decimal.Decimal `json:"purchase_cost"`
	SellingPrice          decimal.Decimal `json:"selling_price"`
	UnitType              string          `json:"unit_type" validate:"max=50"`
	Dimensions            json.RawMessage `json:"dimensions" swaggertype:"object"`
	SupplierID            string          `json:"supplier_id" validate:"omitempty,uuid"`
	MinimumStockThreshold decimal.Decimal `json:"minimum_stock_threshold"`
}

// ProductResponse fila de producto.
type ProductResponse struct {
	ID                    string          `json:"id"`
	CompanyID             string          `json:"company_id"`
	Name                  string          `json:"name"`
	Category              string          `json:"category"`
	SKU                   string          `json:"sku"`
	PurchaseCost          decimal.Decimal `json:"purchase_cost"`
	SellingPrice          decimal.Decimal `json:"selling_price"`
	UnitType              string          `json:"unit_type"`
	Dimensions            json.RawMessage `json:"dimensions" swaggertype:"object"`
	SupplierID            *string         `json:"supplier_id"`
	CurrentQuantity       decimal.Decimal `json:"current_quantity"`
	DaysInStock           int             `json:"days_in_stock"`
	MinimumStockThreshold decimal.Decimal `json:"minimum_stock_threshold"`
	TotalCapitalValue     decimal.Decimal `json:"total_capital_value"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

// LedgerCheckResponse compara la proyección con la suma del ledger.
type LedgerCheckResponse struct {
	ProductID       string          `json:"productId"`
	CurrentQuantity decimal.Decimal `json:"currentQuantity"`
	LedgerQuantity  decimal.Decimal `json:"ledgerQuantity"`
	Consistent      bool            `json:"consistent"`
}
