package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo ledger append-only de movimientos. No existe UPDATE ni DELETE.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador (pool o tx).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, company_id, product_id, movement_type, quantity, unit_cost, reference_type,
	reference_id, warehouse_zone, notes, created_by, created_at`

// Create agrega un movimiento al ledger.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (`+movementColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		m.ID, m.CompanyID, m.ProductID, m.Type, m.Quantity, m.UnitCost, m.ReferenceType,
		m.ReferenceID, m.WarehouseZone, m.Notes, nullable(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return wrap("insert stock movement", err)
	}
	return nil
}

// ListByCompany lista movimientos de la empresa con filtros opcionales, más recientes primero.
func (r *StockMovementRepo) ListByCompany(ctx context.Context, companyID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := `SELECT ` + movementColumns + ` FROM stock_movements WHERE company_id = $1`
	args := []any{companyID}
	pos := 2
	for _, c := range []struct {
		column string
		value  string
	}{
		{"product_id::text", f.ProductID},
		{"movement_type", f.Type},
		{"reference_type", f.ReferenceType},
		{"reference_id", f.ReferenceID},
	} {
		if c.value == "" {
			continue
		}
		query += fmt.Sprintf(" AND %s = $%d", c.column, pos)
		args = append(args, c.value)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limitArg(f.Limit), f.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, wrap("list stock movements", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var createdBy *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.Quantity, &m.UnitCost,
			&m.ReferenceType, &m.ReferenceID, &m.WarehouseZone, &m.Notes, &createdBy, &m.CreatedAt); err != nil {
			return nil, wrap("scan stock movement", err)
		}
		m.CreatedBy = deref(createdBy)
		list = append(list, &m)
	}
	return list, rows.Err()
}

// SignedSum Σ signo × cantidad de los movimientos del producto.
func (r *StockMovementRepo) SignedSum(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(CASE WHEN movement_type IN ('INBOUND', 'ADJUSTMENT_IN') THEN quantity ELSE -quantity END), 0)
		FROM stock_movements
		WHERE company_id = $1 AND product_id = $2`, companyID, productID).Scan(&sum)
	if err != nil {
		if isMissing(err) {
			return decimal.Zero, nil
		}
		return decimal.Zero, wrap("signed sum", err)
	}
	return sum, nil
}
