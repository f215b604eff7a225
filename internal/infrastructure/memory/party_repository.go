package memory

import (
	"context"
	"strings"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

type companyRepo struct{ db access }

func (r *companyRepo) Create(ctx context.Context, c *entity.Company) error {
	return r.db.write(ctx, func(st *state) error {
		for _, x := range st.companies {
			if x.ID == c.ID {
				return domain.ErrDuplicate
			}
		}
		st.companies = append(st.companies, *c)
		return nil
	})
}

func (r *companyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	var out *entity.Company
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.companies {
			if st.companies[i].ID == id {
				c := st.companies[i]
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

type userRepo struct{ db access }

func (r *userRepo) Create(ctx context.Context, u *entity.User) error {
	return r.db.write(ctx, func(st *state) error {
		for _, x := range st.users {
			if strings.EqualFold(x.Email, u.Email) {
				return domain.ErrEmailAlreadyExists
			}
		}
		if !hasCompany(st, u.CompanyID) {
			return domain.ErrNotFound
		}
		st.users = append(st.users, *u)
		return nil
	})
}

func (r *userRepo) GetByID(ctx context.Context, companyID, id string) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return u.ID == id && u.CompanyID == companyID })
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.find(ctx, func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *userRepo) find(ctx context.Context, match func(*entity.User) bool) (*entity.User, error) {
	var out *entity.User
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.users {
			if match(&st.users[i]) {
				u := st.users[i]
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *userRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error) {
	var list []*entity.User
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.users {
			if st.users[i].CompanyID == companyID {
				u := st.users[i]
				list = append(list, &u)
			}
		}
		return nil
	})
	return list, err
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.write(ctx, func(st *state) error {
		for i := range st.users {
			if st.users[i].ID == id {
				t := at
				st.users[i].LastLoginAt = &t
				st.users[i].UpdatedAt = at
				return nil
			}
		}
		return domain.ErrNotFound
	})
}

type customerRepo struct{ db access }

func (r *customerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.db.write(ctx, func(st *state) error {
		if !hasCompany(st, c.CompanyID) {
			return domain.ErrNotFound
		}
		st.customers = append(st.customers, *c)
		return nil
	})
}

func (r *customerRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.customers {
			if st.customers[i].ID == id && st.customers[i].CompanyID == companyID {
				c := st.customers[i]
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	var list []*entity.Customer
	err := r.db.read(ctx, func(st *state) error {
		var all []*entity.Customer
		for i := len(st.customers) - 1; i >= 0; i-- {
			if st.customers[i].CompanyID == companyID {
				c := st.customers[i]
				all = append(all, &c)
			}
		}
		from, to := page(len(all), limit, offset)
		list = all[from:to]
		return nil
	})
	return list, err
}

type supplierRepo struct{ db access }

func (r *supplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.db.write(ctx, func(st *state) error {
		if !hasCompany(st, s.CompanyID) {
			return domain.ErrNotFound
		}
		st.suppliers = append(st.suppliers, *s)
		return nil
	})
}

func (r *supplierRepo) GetByID(ctx context.Context, companyID, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.db.read(ctx, func(st *state) error {
		for i := range st.suppliers {
			if st.suppliers[i].ID == id && st.suppliers[i].CompanyID == companyID {
				s := st.suppliers[i]
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *supplierRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	var list []*entity.Supplier
	err := r.db.read(ctx, func(st *state) error {
		var all []*entity.Supplier
		for i := len(st.suppliers) - 1; i >= 0; i-- {
			if st.suppliers[i].CompanyID == companyID {
				s := st.suppliers[i]
				all = append(all, &s)
			}
		}
		from, to := page(len(all), limit, offset)
		list = all[from:to]
		return nil
	})
	return list, err
}

func hasCompany(st *state, id string) bool {
	for i := range st.companies {
		if st.companies[i].ID == id {
			return true
		}
	}
	return false
}
