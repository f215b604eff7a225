package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID     string
	Type          string
	ReferenceType string
	ReferenceID   string
	Limit         int
	Offset        int
}

// StockMovementRepository puerto del ledger: sólo inserción y lectura.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListByCompany(ctx context.Context, companyID string, filter MovementFilter) ([]*entity.StockMovement, error)
	// SignedSum devuelve Σ signo × cantidad de los movimientos del producto.
	SignedSum(ctx context.Context, companyID, productID string) (decimal.Decimal, error)
}
