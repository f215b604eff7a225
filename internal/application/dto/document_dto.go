package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentItemRequest línea de compra o venta. TotalPrice es opcional: por defecto quantity × unitPrice.
type DocumentItemRequest struct {
	ProductID  string           `json:"productId" validate:"required,uuid"`
	Quantity   decimal.Decimal  `json:"quantity"`
	UnitPrice  decimal.Decimal  `json:"unitPrice"`
	TotalPrice *decimal.Decimal `json:"totalPrice"`
}

// CreatePurchaseRequest documento de compra. Fechas en YYYY-MM-DD o RFC3339.
type CreatePurchaseRequest struct {
	SupplierID           string                `json:"supplierId" validate:"omitempty,uuid"`
	PurchaseDate         string                `json:"purchaseDate"`
	ExpectedDeliveryDate string                `json:"expectedDeliveryDate"`
	Items                []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxAmount            decimal.Decimal       `json:"taxAmount"`
	InvoiceNumber        string                `json:"invoiceNumber" validate:"max=100"`
	Notes                string                `json:"notes"`
}

// CreatePurchaseResponse resultado de la compra.
type CreatePurchaseResponse struct {
	PurchaseID string          `json:"purchaseId"`
	Success    bool            `json:"success"`
	Total      decimal.Decimal `json:"total"`
}

// CreateSaleRequest documento de venta. El número de factura lo asigna el servidor.
type CreateSaleRequest struct {
	CustomerID   string                `json:"customerId" validate:"omitempty,uuid"`
	SaleDate     string                `json:"saleDate"`
	DueDate      string                `json:"dueDate"`
	Items        []DocumentItemRequest `json:"items" validate:"required,min=1,dive"`
	TaxAmount    decimal.Decimal       `json:"taxAmount"`
	PaymentTerms string                `json:"paymentTerms" validate:"max=100"`
	Notes        string                `json:"notes"`
}

// CreateSaleResponse resultado de la venta.
type CreateSaleResponse struct {
	SaleID        string          `json:"saleId"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Success       bool            `json:"success"`
	Total         decimal.Decimal `json:"total"`
}

// DocumentItemResponse línea persistida.
type DocumentItemResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// PurchaseResponse fila de compra (Items sólo en el detalle).
type PurchaseResponse struct {
	ID                   string                 `json:"id"`
	CompanyID            string                 `json:"company_id"`
	SupplierID           *string                `json:"supplier_id"`
	PurchaseDate         time.Time              `json:"purchase_date"`
	ExpectedDeliveryDate *time.Time             `json:"expected_delivery_date"`
	Status               string                 `json:"status"`
	TotalAmount          decimal.Decimal        `json:"total_amount"`
	TaxAmount            decimal.Decimal        `json:"tax_amount"`
	InvoiceNumber        string                 `json:"invoice_number"`
	Notes                string                 `json:"notes"`
	CreatedBy            string                 `json:"created_by"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
	Items                []DocumentItemResponse `json:"items,omitempty"`
}

// SaleResponse fila de venta (Items sólo en el detalle).
type SaleResponse struct {
	ID            string                 `json:"id"`
	CompanyID     string                 `json:"company_id"`
	CustomerID    *string                `json:"customer_id"`
	SaleDate      time.Time              `json:"sale_date"`
	DueDate       *time.Time             `json:"due_date"`
	Status        string                 `json:"status"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	TaxAmount     decimal.Decimal        `json:"tax_amount"`
	InvoiceNumber string                 `json:"invoice_number"`
	PaymentTerms  string                 `json:"payment_terms"`
	Notes         string                 `json:"notes"`
	CreatedBy     string                 `json:"created_by"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
	Items         []DocumentItemResponse `json:"items,omitempty"`
}
