package entity

import "time"

// Supplier proveedor de la empresa; referenciado por productos y compras.
type Supplier struct {
	ID          string
	CompanyID   string
	Name        string
	ContactName string
	Email       string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
