package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func seed(t *testing.T, s *Store) repository.Repositories {
	t.Helper()
	repos := s.Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Acme", CreatedAt: now}))
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c2", Name: "Globex", CreatedAt: now}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p1", CompanyID: "c1", SKU: "SKU-1", Name: "Pallet", CreatedAt: now}))
	return repos
}

func TestRun_CommitPublicaCambios(t *testing.T) {
	s := NewStore()
	repos := seed(t, s)
	ctx := context.Background()

	err := s.Run(ctx, func(tx repository.Repositories) error {
		p, err := tx.Products.GetForUpdate(ctx, "c1", "p1")
		require.NoError(t, err)
		p.CurrentQuantity = decimal.NewFromInt(4)
		return tx.Products.UpdateStock(ctx, p)
	})
	require.NoError(t, err)

	p, err := repos.Products.GetByID(ctx, "c1", "p1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4).Equal(p.CurrentQuantity))
}

func TestRun_ErrorDescartaTodo(t *testing.T) {
	s := NewStore()
	repos := seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(tx repository.Repositories) error {
		require.NoError(t, tx.Movements.Create(ctx, &entity.StockMovement{
			ID: "m1", CompanyID: "c1", ProductID: "p1", Type: entity.MovementTypeInbound, Quantity: decimal.NewFromInt(3),
		}))
		return boom
	})
	assert.Same(t, boom, err, "el error de fn se devuelve sin envolver")

	movs, err := repos.Movements.ListByCompany(ctx, "c1", repository.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestRun_PanicDescartaYPropaga(t *testing.T) {
	s := NewStore()
	repos := seed(t, s)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = s.Run(ctx, func(tx repository.Repositories) error {
			_ = tx.Customers.Create(ctx, &entity.Customer{ID: "cu1", CompanyID: "c1", Name: "X"})
			panic("fallo")
		})
	})
	list, err := repos.Customers.ListByCompany(ctx, "c1", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, list)

	// el lock quedó liberado
	require.NoError(t, s.Run(ctx, func(repository.Repositories) error { return nil }))
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := s.Run(ctx, func(repository.Repositories) error { called = true; return nil })
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProducts_AislamientoPorEmpresa(t *testing.T) {
	s := NewStore()
	repos := seed(t, s)
	ctx := context.Background()

	p, err := repos.Products.GetByID(ctx, "c2", "p1")
	require.NoError(t, err)
	assert.Nil(t, p, "otra empresa no ve el producto")

	err = repos.Products.Create(ctx, &entity.Product{ID: "p2", CompanyID: "c1", SKU: "SKU-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	// el mismo SKU en otra empresa es válido
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p3", CompanyID: "c2", SKU: "SKU-1"}))
}

func TestProducts_CopiaDefensiva(t *testing.T) {
	s := NewStore()
	repos := seed(t, s)
	ctx := context.Background()

	p, err := repos.Products.GetByID(ctx, "c1", "p1")
	require.NoError(t, err)
	p.Name = "mutado"

	again, err := repos.Products.GetByID(ctx, "c1", "p1")
	require.NoError(t, err)
	assert.Equal(t, "Pallet", again.Name)
}

func TestRefreshDaysInStock(t *testing.T) {
	s := NewStore()
	repos := seed(t, s)
	ctx := context.Background()

	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "p-empty", CompanyID: "c1", CreatedAt: now}))
	require.NoError(t, repos.Movements.Create(ctx, &entity.StockMovement{
		ID: "m1", CompanyID: "c1", ProductID: "p1", Type: entity.MovementTypeInbound,
		Quantity: decimal.NewFromInt(5), CreatedAt: now.Add(24 * time.Hour),
	}))
	require.NoError(t, repos.Products.UpdateStock(ctx, &entity.Product{
		ID: "p1", CompanyID: "c1", CurrentQuantity: decimal.NewFromInt(5),
	}))

	n, err := repos.Products.RefreshDaysInStock(ctx, now.Add(96*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	p, _ := repos.Products.GetByID(ctx, "c1", "p1")
	assert.Equal(t, 3, p.DaysInStock, "días desde la última entrada")
	empty, _ := repos.Products.GetByID(ctx, "c1", "p-empty")
	assert.Equal(t, 0, empty.DaysInStock)
}

func TestNextInvoiceNumber_PorEmpresaYAnio(t *testing.T) {
	s := NewStore()
	repos := seed(t, s)
	ctx := context.Background()

	a, _ := repos.Sales.NextInvoiceNumber(ctx, "c1", 2026)
	b, _ := repos.Sales.NextInvoiceNumber(ctx, "c1", 2026)
	c, _ := repos.Sales.NextInvoiceNumber(ctx, "c2", 2026)
	d, _ := repos.Sales.NextInvoiceNumber(ctx, "c1", 2027)
	assert.Equal(t, []int64{1, 2, 1, 1}, []int64{a, b, c, d})
}

func TestPage(t *testing.T) {
	from, to := page(10, 3, 2)
	assert.Equal(t, []int{2, 5}, []int{from, to})
	from, to = page(10, 0, 0)
	assert.Equal(t, []int{0, 10}, []int{from, to})
	from, to = page(2, 5, 7)
	assert.Equal(t, []int{2, 2}, []int{from, to})
}
