package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente de la empresa. OutstandingBalance alimenta las cuentas por cobrar del dashboard.
type Customer struct {
	ID                 string
	CompanyID          string
	Name               string
	Email              string
	Phone              string
	Address            string
	CreditLimit        decimal.Decimal
	OutstandingBalance decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
