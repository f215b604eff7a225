// Package memory implementa los puertos de persistencia en memoria de proceso.
// Cada Run trabaja sobre una copia del estado y la publica sólo si fn termina sin error,
// por lo que ofrece la misma atomicidad que una transacción (serializando los Run entre sí).
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	companies     []entity.Company
	users         []entity.User
	products      []entity.Product
	movements     []entity.StockMovement
	purchases     []entity.Purchase
	purchaseItems []entity.PurchaseItem
	sales         []entity.Sale
	saleItems     []entity.SaleItem
	customers     []entity.Customer
	suppliers     []entity.Supplier
	invoiceSeq    map[invoiceKey]int64
}

type invoiceKey struct {
	companyID string
	year      int
}

func newState() *state {
	return &state{invoiceSeq: map[invoiceKey]int64{}}
}

// clone copia superficial de cada colección; las entidades se guardan por valor.
func (s *state) clone() *state {
	c := &state{
		companies:     slices.Clone(s.companies),
		users:         slices.Clone(s.users),
		products:      slices.Clone(s.products),
		movements:     slices.Clone(s.movements),
		purchases:     slices.Clone(s.purchases),
		purchaseItems: slices.Clone(s.purchaseItems),
		sales:         slices.Clone(s.sales),
		saleItems:     slices.Clone(s.saleItems),
		customers:     slices.Clone(s.customers),
		suppliers:     slices.Clone(s.suppliers),
		invoiceSeq:    make(map[invoiceKey]int64, len(s.invoiceSeq)),
	}
	for k, v := range s.invoiceSeq {
		c.invoiceSeq[k] = v
	}
	return c
}

// access abstrae si una operación corre fuera de transacción (con lock propio) o dentro de Run.
type access interface {
	read(ctx context.Context, fn func(st *state) error) error
	write(ctx context.Context, fn func(st *state) error) error
}

// Store almacén en memoria. El valor cero no es utilizable; usar NewStore.
type Store struct {
	mu sync.RWMutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repositories devuelve repositorios en modo autocommit: cada llamada es atómica por sí misma.
func (s *Store) Repositories() repository.Repositories {
	return newRepositories(storeAccess{s: s})
}

// Analytics devuelve el repositorio de consultas agregadas.
func (s *Store) Analytics() repository.AnalyticsRepository {
	return &analyticsRepo{db: storeAccess{s: s}}
}

// Run ejecuta fn sobre una copia del estado y la publica si fn no devuelve error.
// Un pánico dentro de fn descarta la copia y se propaga.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(newRepositories(txAccess{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

func newRepositories(db access) repository.Repositories {
	return repository.Repositories{
		Companies: &companyRepo{db: db},
		Users:     &userRepo{db: db},
		Products:  &productRepo{db: db},
		Movements: &movementRepo{db: db},
		Purchases: &purchaseRepo{db: db},
		Sales:     &saleRepo{db: db},
		Customers: &customerRepo{db: db},
		Suppliers: &supplierRepo{db: db},
	}
}

type storeAccess struct{ s *Store }

func (a storeAccess) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.st)
}

func (a storeAccess) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.st)
}

// txAccess opera sobre la copia de trabajo; el lock lo mantiene Run.
type txAccess struct{ st *state }

func (a txAccess) read(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(a.st)
}

func (a txAccess) write(ctx context.Context, fn func(st *state) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(a.st)
}

// page aplica limit/offset a n elementos; limit <= 0 = sin límite.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
