package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest movimiento manual de stock.
type CreateMovementRequest struct {
	ProductID     string           `json:"productId" validate:"required,uuid"`
	MovementType  string           `json:"movementType" validate:"required,oneof=INBOUND OUTBOUND ADJUSTMENT_IN ADJUSTMENT_OUT"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unitCost"`
	ReferenceType string           `json:"referenceType"`
	ReferenceID   string           `json:"referenceId"`
	WarehouseZone string           `json:"warehouseZone" validate:"max=100"`
	Notes         string           `json:"notes"`
}

// CreateMovementResponse resultado del registro.
type CreateMovementResponse struct {
	MovementID string `json:"movementId"`
	Success    bool   `json:"success"`
}

// MovementListRequest filtros de GET /api/stock-movements.
type MovementListRequest struct {
	ProductID     string `query:"productId"`
	MovementType  string `query:"movementType"`
	ReferenceType string `query:"referenceType"`
	ReferenceID   string `query:"referenceId"`
	PageRequest
}

// MovementResponse fila del ledger.
type MovementResponse struct {
	ID            string           `json:"id"`
	CompanyID     string           `json:"company_id"`
	ProductID     string           `json:"product_id"`
	MovementType  string           `json:"movement_type"`
	Quantity      decimal.Decimal  `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
	ReferenceType string           `json:"reference_type"`
	ReferenceID   string           `json:"reference_id"`
	WarehouseZone string           `json:"warehouse_zone"`
	Notes         string           `json:"notes"`
	CreatedBy     string           `json:"created_by"`
	CreatedAt     time.Time        `json:"created_at"`
}
