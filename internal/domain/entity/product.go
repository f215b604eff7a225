package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un SKU del catálogo de una empresa.
// CurrentQuantity y TotalCapitalValue son proyecciones del ledger: sólo el StockLedger las escribe.
type Product struct {
	ID                    string
	CompanyID             string
	Name                  string
	Category              string
	SKU                   string // único por empresa cuando no está vacío
	PurchaseCost          decimal.Decimal // costo promedio ponderado
	SellingPrice          decimal.Decimal
	UnitType              string
	Dimensions            json.RawMessage
	SupplierID            string // vacío = sin proveedor
	CurrentQuantity       decimal.Decimal
	DaysInStock           int
	MinimumStockThreshold decimal.Decimal
	TotalCapitalValue     decimal.Decimal
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// IsBelowMinimum indica si la cantidad actual está por debajo del umbral mínimo.
func (p *Product) IsBelowMinimum() bool {
	return p.CurrentQuantity.LessThan(p.MinimumStockThreshold)
}
