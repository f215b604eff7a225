package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger.
const (
	MovementTypeInbound       = "INBOUND"
	MovementTypeOutbound      = "OUTBOUND"
	MovementTypeAdjustmentIn  = "ADJUSTMENT_IN"
	MovementTypeAdjustmentOut = "ADJUSTMENT_OUT"
)

// Tipos de referencia: documento que originó el movimiento.
const (
	ReferencePurchase             = "PURCHASE"
	ReferenceSale                 = "SALE"
	ReferenceManual               = "MANUAL"
	ReferencePurchaseCancellation = "PURCHASE_CANCELLATION"
	ReferenceSaleCancellation     = "SALE_CANCELLATION"
)

// Decimales admitidos por las columnas NUMERIC: cantidades (14,3), precios y costos
// unitarios (14,4), importes (16,2).
const (
	QuantityScale  int32 = 3
	UnitPriceScale int32 = 4
	AmountScale    int32 = 2
)

// FitsScale indica si d no tiene más de places decimales significativos.
func FitsScale(d decimal.Decimal, places int32) bool {
	return d.Equal(d.Truncate(places))
}

// IsValidMovementType indica si el tipo pertenece al enum.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypeInbound, MovementTypeOutbound, MovementTypeAdjustmentIn, MovementTypeAdjustmentOut:
		return true
	}
	return false
}

// IsValidReferenceType indica si el tipo de referencia pertenece al enum.
func IsValidReferenceType(t string) bool {
	switch t {
	case ReferencePurchase, ReferenceSale, ReferenceManual, ReferencePurchaseCancellation, ReferenceSaleCancellation:
		return true
	}
	return false
}

// MovementSign devuelve +1 para tipos que suman stock y -1 para los que restan; 0 si el tipo es desconocido.
func MovementSign(t string) int {
	switch t {
	case MovementTypeInbound, MovementTypeAdjustmentIn:
		return 1
	case MovementTypeOutbound, MovementTypeAdjustmentOut:
		return -1
	}
	return 0
}

// StockMovement es una entrada inmutable del ledger. Quantity siempre es positiva; el signo lo da Type.
type StockMovement struct {
	ID            string
	CompanyID     string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal
	ReferenceType string
	ReferenceID   string
	WarehouseZone string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}

// SignedQuantity devuelve la cantidad con el signo del tipo.
func (m *StockMovement) SignedQuantity() decimal.Decimal {
	return m.Quantity.Mul(decimal.NewFromInt(int64(MovementSign(m.Type))))
}
