package postgres

import (
	"context"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo persistencia de compras (cabecera + ítems). Usable con pool o tx.
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

const purchaseColumns = `id, company_id, supplier_id, purchase_date, expected_delivery_date, status,
	total_amount, tax_amount, invoice_number, notes, created_by, created_at, updated_at`

func scanPurchase(s scanner) (*entity.Purchase, error) {
	var p entity.Purchase
	var supplierID, createdBy *string
	if err := s.Scan(&p.ID, &p.CompanyID, &supplierID, &p.PurchaseDate, &p.ExpectedDeliveryDate, &p.Status,
		&p.TotalAmount, &p.TaxAmount, &p.InvoiceNumber, &p.Notes, &createdBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.SupplierID = deref(supplierID)
	p.CreatedBy = deref(createdBy)
	return &p, nil
}

// Create inserta la cabecera. Número de factura repetido en la empresa → ErrConflict.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO purchases (`+purchaseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		p.ID, p.CompanyID, nullable(p.SupplierID), p.PurchaseDate, p.ExpectedDeliveryDate, p.Status,
		p.TotalAmount, p.TaxAmount, p.InvoiceNumber, p.Notes, nullable(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return wrap("insert purchase", err)
	}
	return nil
}

// CreateItem inserta una línea. El producto debe pertenecer a la misma empresa que la compra.
func (r *PurchaseRepo) CreateItem(ctx context.Context, it *entity.PurchaseItem) error {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO purchase_items (id, purchase_id, product_id, quantity, unit_price, total_price)
		SELECT $1, h.id, p.id, $4, $5, $6
		FROM purchases h
		JOIN products p ON p.company_id = h.company_id AND p.id::text = $3
		WHERE h.id = $2`,
		it.ID, it.PurchaseID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	if err != nil {
		return wrap("insert purchase item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 AND company_id = $2`, companyID, id)
}

// GetForUpdate bloquea la cabecera para serializar cambios de estado concurrentes.
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.get(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 AND company_id = $2 FOR UPDATE`, companyID, id)
}

func (r *PurchaseRepo) get(ctx context.Context, query, companyID, id string) (*entity.Purchase, error) {
	p, err := scanPurchase(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, wrap("get purchase", err)
	}
	return p, nil
}

func (r *PurchaseRepo) ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, purchase_id, product_id, quantity, unit_price, total_price
		FROM purchase_items WHERE purchase_id = $1 ORDER BY id`, purchaseID)
	if err != nil {
		return nil, wrap("list purchase items", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseItem
	for rows.Next() {
		var it entity.PurchaseItem
		if err := rows.Scan(&it.ID, &it.PurchaseID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, wrap("scan purchase item", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *PurchaseRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+purchaseColumns+` FROM purchases WHERE company_id = $1
		 ORDER BY purchase_date DESC, created_at DESC, id LIMIT $2 OFFSET $3`,
		companyID, limitArg(limit), offset)
	if err != nil {
		return nil, wrap("list purchases", err)
	}
	defer rows.Close()
	var list []*entity.Purchase
	for rows.Next() {
		p, err := scanPurchase(rows)
		if err != nil {
			return nil, wrap("scan purchase", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *PurchaseRepo) UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE purchases SET status = $3, updated_at = $4 WHERE id = $1 AND company_id = $2`,
		id, companyID, status, at)
	if err != nil {
		return wrap("update purchase status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
