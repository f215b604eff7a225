package memory

import (
	"context"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

type purchaseRepo struct{ db access }

func (r *purchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	return r.db.write(ctx, func(st *state) error {
		if !hasCompany(st, p.CompanyID) {
			return domain.ErrNotFound
		}
		for _, x := range st.purchases {
			if p.InvoiceNumber != "" && x.CompanyID == p.CompanyID && x.InvoiceNumber == p.InvoiceNumber {
				return domain.ErrConflict
			}
		}
		st.purchases = append(st.purchases, *p)
		return nil
	})
}

func (r *purchaseRepo) CreateItem(ctx context.Context, item *entity.PurchaseItem) error {
	return r.db.write(ctx, func(st *state) error {
		for _, p := range st.purchases {
			if p.ID == item.PurchaseID {
				if productIndex(st, p.CompanyID, item.ProductID) < 0 {
					return domain.ErrNotFound
				}
				st.purchaseItems = append(st.purchaseItems, *item)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *purchaseRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.purchases {
			if st.purchases[i].ID == id && st.purchases[i].CompanyID == companyID {
				p := st.purchases[i]
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *purchaseRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *purchaseRepo) ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error) {
	var list []*entity.PurchaseItem
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.purchaseItems {
			if st.purchaseItems[i].PurchaseID == purchaseID {
				it := st.purchaseItems[i]
				list = append(list, &it)
			}
		}
		return nil
	})
	return list, err
}

func (r *purchaseRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, error) {
	var list []*entity.Purchase
	err := r.db.read(ctx, func(st *state) error {
		var all []*entity.Purchase
		for i := len(st.purchases) - 1; i >= 0; i-- {
			if st.purchases[i].CompanyID == companyID {
				p := st.purchases[i]
				all = append(all, &p)
			}
		}
		from, to := page(len(all), limit, offset)
		list = all[from:to]
		return nil
	})
	return list, err
}

func (r *purchaseRepo) UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error {
	return r.db.write(ctx, func(st *state) error {
		for i := range st.purchases {
			if st.purchases[i].ID == id && st.purchases[i].CompanyID == companyID {
				st.purchases[i].Status = status
				st.purchases[i].UpdatedAt = at
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

type saleRepo struct{ db access }

func (r *saleRepo) Create(ctx context.Context, s *entity.Sale) error {
	return r.db.write(ctx, func(st *state) error {
		if !hasCompany(st, s.CompanyID) {
			return domain.ErrNotFound
		}
		for _, x := range st.sales {
			if x.CompanyID == s.CompanyID && x.InvoiceNumber == s.InvoiceNumber {
				return domain.ErrConflict
			}
		}
		st.sales = append(st.sales, *s)
		return nil
	})
}

func (r *saleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	return r.db.write(ctx, func(st *state) error {
		for _, s := range st.sales {
			if s.ID == item.SaleID {
				if productIndex(st, s.CompanyID, item.ProductID) < 0 {
					return domain.ErrNotFound
				}
				st.saleItems = append(st.saleItems, *item)
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *saleRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.sales {
			if st.sales[i].ID == id && st.sales[i].CompanyID == companyID {
				s := st.sales[i]
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *saleRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *saleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	var list []*entity.SaleItem
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.saleItems {
			if st.saleItems[i].SaleID == saleID {
				it := st.saleItems[i]
				list = append(list, &it)
			}
		}
		return nil
	})
	return list, err
}

func (r *saleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	var list []*entity.Sale
	err := r.db.read(ctx, func(st *state) error {
		var all []*entity.Sale
		for i := len(st.sales) - 1; i >= 0; i-- {
			if st.sales[i].CompanyID == companyID {
				s := st.sales[i]
				all = append(all, &s)
			}
		}
		from, to := page(len(all), limit, offset)
		list = all[from:to]
		return nil
	})
	return list, err
}

func (r *saleRepo) UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error {
	return r.db.write(ctx, func(st *state) error {
		for i := range st.sales {
			if st.sales[i].ID == id && st.sales[i].CompanyID == companyID {
				st.sales[i].Status = status
				st.sales[i].UpdatedAt = at
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

func (r *saleRepo) NextInvoiceNumber(ctx context.Context, companyID string, year int) (int64, error) {
	var n int64
	err := r.db.write(ctx, func(st *state) error {
		k := invoiceKey{companyID: companyID, year: year}
		st.invoiceSeq[k]++
		n = st.invoiceSeq[k]
		return nil
	})
	return n, err
}
