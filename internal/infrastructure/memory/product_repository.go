package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

type productRepo struct{ db access }

func (r *productRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.db.write(ctx, func(st *state) error {
		if !hasCompany(st, p.CompanyID) {
			return domain.ErrNotFound
		}
		for _, x := range st.products {
			if x.ID == p.ID || (p.SKU != "" && x.CompanyID == p.CompanyID && x.SKU == p.SKU) {
				return domain.ErrDuplicate
			}
		}
		st.products = append(st.products, *p)
		return nil
	})
}

func (r *productRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.read(ctx, func(st *state) error {
		if i := productIndex(st, companyID, id); i >= 0 {
			p := st.products[i]
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: Run ya serializa las unidades atómicas.
func (r *productRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *productRepo) UpdateStock(ctx context.Context, p *entity.Product) error {
	return r.db.write(ctx, func(st *state) error {
		i := productIndex(st, p.CompanyID, p.ID)
		if i < 0 {
			return domain.ErrNotFound
		}
		st.products[i].CurrentQuantity = p.CurrentQuantity
		st.products[i].PurchaseCost = p.PurchaseCost
		st.products[i].TotalCapitalValue = p.TotalCapitalValue
		st.products[i].UpdatedAt = p.UpdatedAt
		return nil
	})
}

func (r *productRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.db.read(ctx, func(st *state) error {
		var all []*entity.Product
		for i := len(st.products) - 1; i >= 0; i-- {
			if st.products[i].CompanyID == companyID {
				p := st.products[i]
				all = append(all, &p)
			}
		}
		from, to := page(len(all), limit, offset)
		list = all[from:to]
		return nil
	})
	return list, err
}

func (r *productRepo) RefreshDaysInStock(ctx context.Context, now time.Time) (int64, error) {
	var n int64
	err := r.db.write(ctx, func(st *state) error {
		for i := range st.products {
			p := &st.products[i]
			days := 0
			if p.CurrentQuantity.IsPositive() {
				since := p.CreatedAt
				for _, m := range st.movements {
					if m.ProductID == p.ID && entity.MovementSign(m.Type) > 0 && m.CreatedAt.After(since) {
						since = m.CreatedAt
					}
				}
				if now.After(since) {
					days = int(now.Sub(since).Hours() / 24)
				}
			}
			if p.DaysInStock != days {
				p.DaysInStock = days
				n++
			}
		}
		return nil
	})
	return n, err
}

func productIndex(st *state, companyID, id string) int {
	for i := range st.products {
		if st.products[i].ID == id && st.products[i].CompanyID == companyID {
			return i
		}
	}
	return -1
}

type movementRepo struct{ db access }

func (r *movementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.db.write(ctx, func(st *state) error {
		if productIndex(st, m.CompanyID, m.ProductID) < 0 {
			return domain.ErrNotFound
		}
		st.movements = append(st.movements, *m)
		return nil
	})
}

func (r *movementRepo) ListByCompany(ctx context.Context, companyID string, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	err := r.db.read(ctx, func(st *state) error {
		var all []*entity.StockMovement
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if m.CompanyID != companyID ||
				(f.ProductID != "" && m.ProductID != f.ProductID) ||
				(f.Type != "" && m.Type != f.Type) ||
				(f.ReferenceType != "" && m.ReferenceType != f.ReferenceType) ||
				(f.ReferenceID != "" && m.ReferenceID != f.ReferenceID) {
				continue
			}
			all = append(all, &m)
		}
		from, to := page(len(all), f.Limit, f.Offset)
		list = all[from:to]
		return nil
	})
	return list, err
}

func (r *movementRepo) SignedSum(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.movements {
			if st.movements[i].CompanyID == companyID && st.movements[i].ProductID == productID {
				sum = sum.Add(st.movements[i].SignedQuantity())
			}
		}
		return nil
	})
	return sum, err
}
