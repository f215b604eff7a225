package postgres

import (
	"context"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, company_id, name, category, sku, purchase_cost, selling_price, unit_type, dimensions,
	supplier_id, current_quantity, days_in_stock, minimum_stock_threshold, total_capital_value, created_at, updated_at`

func scanProduct(s scanner) (*entity.Product, error) {
	var p entity.Product
	var supplierID *string
	if err := s.Scan(&p.ID, &p.CompanyID, &p.Name, &p.Category, &p.SKU, &p.PurchaseCost, &p.SellingPrice,
		&p.UnitType, &p.Dimensions, &supplierID, &p.CurrentQuantity, &p.DaysInStock,
		&p.MinimumStockThreshold, &p.TotalCapitalValue, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.SupplierID = deref(supplierID)
	return &p, nil
}

// Create persiste un nuevo producto. SKU repetido en la empresa → ErrDuplicate.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	var dims any
	if len(p.Dimensions) > 0 {
		dims = p.Dimensions
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
		p.ID, p.CompanyID, p.Name, p.Category, p.SKU, p.PurchaseCost, p.SellingPrice, p.UnitType, dims,
		nullable(p.SupplierID), p.CurrentQuantity, p.DaysInStock, p.MinimumStockThreshold, p.TotalCapitalValue,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert product", err)
	}
	return nil
}

// GetByID obtiene un producto de la empresa; (nil, nil) si no existe o es de otra empresa.
func (r *ProductRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 AND company_id = $2`, companyID, id)
}

// GetForUpdate igual que GetByID pero bloquea la fila hasta el fin de la transacción.
// Dos documentos que tocan el mismo producto se serializan aquí.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.get(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 AND company_id = $2 FOR UPDATE`, companyID, id)
}

func (r *ProductRepo) get(ctx context.Context, query, companyID, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, wrap("get product", err)
	}
	return p, nil
}

// UpdateStock persiste las proyecciones del ledger (cantidad, costo promedio y capital).
func (r *ProductRepo) UpdateStock(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products
		SET current_quantity = $3, purchase_cost = $4, total_capital_value = $5, updated_at = $6
		WHERE id = $1 AND company_id = $2`,
		p.ID, p.CompanyID, p.CurrentQuantity, p.PurchaseCost, p.TotalCapitalValue, p.UpdatedAt,
	)
	if err != nil {
		return wrap("update product stock", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCompany lista productos por empresa, más recientes primero (limit <= 0 = todos).
func (r *ProductRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+productColumns+` FROM products WHERE company_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		companyID, limitArg(limit), offset)
	if err != nil {
		return nil, wrap("list products", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, wrap("scan product", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// RefreshDaysInStock recalcula days_in_stock en todas las empresas: días completos desde la
// última entrada (o el alta) mientras haya existencias, 0 en otro caso.
func (r *ProductRepo) RefreshDaysInStock(ctx context.Context, now time.Time) (int64, error) {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products p
		SET days_in_stock = calc.days
		FROM (
			SELECT pr.id,
			       CASE WHEN pr.current_quantity > 0 THEN
			            GREATEST(0, floor(extract(epoch FROM ($1::timestamptz - COALESCE(
			                (SELECT max(m.created_at) FROM stock_movements m
			                 WHERE m.product_id = pr.id AND m.movement_type IN ('INBOUND', 'ADJUSTMENT_IN')),
			                pr.created_at))) / 86400))::int
			       ELSE 0 END AS days
			FROM products pr
		) calc
		WHERE p.id = calc.id AND p.days_in_stock <> calc.days`, now)
	if err != nil {
		return 0, wrap("refresh days in stock", err)
	}
	return cmd.RowsAffected(), nil
}
