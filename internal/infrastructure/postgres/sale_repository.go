package postgres

import (
	"context"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo persistencia de ventas (cabecera + ítems + consecutivo de factura). Usable con pool o tx.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, customer_id, sale_date, due_date, status, total_amount, tax_amount,
	invoice_number, payment_terms, notes, created_by, created_at, updated_at`

func scanSale(s scanner) (*entity.Sale, error) {
	var x entity.Sale
	var customerID, createdBy *string
	if err := s.Scan(&x.ID, &x.CompanyID, &customerID, &x.SaleDate, &x.DueDate, &x.Status, &x.TotalAmount,
		&x.TaxAmount, &x.InvoiceNumber, &x.PaymentTerms, &x.Notes, &createdBy, &x.CreatedAt, &x.UpdatedAt); err != nil {
		return nil, err
	}
	x.CustomerID = deref(customerID)
	x.CreatedBy = deref(createdBy)
	return &x, nil
}

// Create inserta la cabecera. UNIQUE (company_id, invoice_number) → ErrConflict.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		s.ID, s.CompanyID, nullable(s.CustomerID), s.SaleDate, s.DueDate, s.Status, s.TotalAmount, s.TaxAmount,
		s.InvoiceNumber, s.PaymentTerms, s.Notes, nullable(s.CreatedBy), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return wrap("insert sale", err)
	}
	return nil
}

// CreateItem inserta una línea; el producto debe ser de la misma empresa que la venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	cmd, err := r.q.Exec(ctx, `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price)
		SELECT $1, h.id, p.id, $4, $5, $6
		FROM sales h
		JOIN products p ON p.company_id = h.company_id AND p.id::text = $3
		WHERE h.id = $2`,
		it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	if err != nil {
		return wrap("insert sale item", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SaleRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 AND company_id = $2`, companyID, id)
}

func (r *SaleRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 AND company_id = $2 FOR UPDATE`, companyID, id)
}

func (r *SaleRepo) get(ctx context.Context, query, companyID, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if isMissing(err) {
			return nil, nil
		}
		return nil, wrap("get sale", err)
	}
	return s, nil
}

func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, quantity, unit_price, total_price
		FROM sale_items WHERE sale_id = $1 ORDER BY id`, saleID)
	if err != nil {
		return nil, wrap("list sale items", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, wrap("scan sale item", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE company_id = $1
		 ORDER BY sale_date DESC, created_at DESC, id LIMIT $2 OFFSET $3`,
		companyID, limitArg(limit), offset)
	if err != nil {
		return nil, wrap("list sales", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, wrap("scan sale", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SaleRepo) UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE sales SET status = $3, updated_at = $4 WHERE id = $1 AND company_id = $2`,
		id, companyID, status, at)
	if err != nil {
		return wrap("update sale status", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// NextInvoiceNumber incrementa el contador (company_id, year). El UPSERT toma un lock de fila
// que se mantiene hasta el commit, así dos ventas concurrentes nunca obtienen el mismo número
// y un rollback devuelve el número sin dejar huecos.
func (r *SaleRepo) NextInvoiceNumber(ctx context.Context, companyID string, year int) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx, `
		INSERT INTO invoice_sequences (company_id, year, last_number)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, year)
		DO UPDATE SET last_number = invoice_sequences.last_number + 1
		RETURNING last_number`, companyID, year).Scan(&n)
	if err != nil {
		return 0, wrap("next invoice number", err)
	}
	return n, nil
}
