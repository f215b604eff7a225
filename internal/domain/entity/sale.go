package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta.
const (
	SaleStatusConfirmed = "confirmed"
	SaleStatusDelivered = "delivered"
	SaleStatusCancelled = "cancelled"
)

// Sale cabecera de un documento de venta. InvoiceNumber es único por empresa.
type Sale struct {
	ID            string
	CompanyID     string
	CustomerID    string
	SaleDate      time.Time
	DueDate       *time.Time
	Status        string
	TotalAmount   decimal.Decimal
	TaxAmount     decimal.Decimal
	InvoiceNumber string
	PaymentTerms  string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SaleItem línea de una venta; cada una genera un movimiento OUTBOUND.
type SaleItem struct {
	ID         string
	SaleID     string
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// CanTransitionSale valida la máquina de estados de ventas.
func CanTransitionSale(from, to string) bool {
	return from == SaleStatusConfirmed && (to == SaleStatusDelivered || to == SaleStatusCancelled)
}
