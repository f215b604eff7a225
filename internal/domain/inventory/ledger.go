package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// Project pliega los movimientos de un producto en su cantidad: Σ signo(tipo) × cantidad.
func Project(movements []*entity.StockMovement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		total = total.Add(m.SignedQuantity())
	}
	return total
}

// ApplyMovement calcula la cantidad resultante de aplicar un movimiento.
// Si allowNegative es false y el resultado queda bajo cero devuelve ErrInsufficientStock.
func ApplyMovement(current decimal.Decimal, movementType string, quantity decimal.Decimal, allowNegative bool) (decimal.Decimal, error) {
	sign := entity.MovementSign(movementType)
	if sign == 0 {
		return current, domain.NewValidationError(fmt.Sprintf("tipo de movimiento inválido: %q", movementType))
	}
	if !quantity.IsPositive() {
		return current, domain.NewValidationError("la cantidad debe ser mayor que cero")
	}
	next := current.Add(quantity.Mul(decimal.NewFromInt(int64(sign))))
	if next.IsNegative() && !allowNegative {
		return current, fmt.Errorf("%w: disponible %s, solicitado %s", domain.ErrInsufficientStock, current.String(), quantity.String())
	}
	return next, nil
}
