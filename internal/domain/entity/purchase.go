package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	PurchaseStatusPending   = "pending"
	PurchaseStatusCompleted = "completed"
	PurchaseStatusCancelled = "cancelled"
)

// Purchase cabecera de un documento de compra. TotalAmount = Σ items.TotalPrice + TaxAmount.
type Purchase struct {
	ID                   string
	CompanyID            string
	SupplierID           string
	PurchaseDate         time.Time
	ExpectedDeliveryDate *time.Time
	Status               string
	TotalAmount          decimal.Decimal
	TaxAmount            decimal.Decimal
	InvoiceNumber        string
	Notes                string
	CreatedBy            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// PurchaseItem línea de una compra; cada una genera un movimiento INBOUND.
type PurchaseItem struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// CanTransitionPurchase valida la máquina de estados de compras.
func CanTransitionPurchase(from, to string) bool {
	return from == PurchaseStatusPending && (to == PurchaseStatusCompleted || to == PurchaseStatusCancelled)
}
