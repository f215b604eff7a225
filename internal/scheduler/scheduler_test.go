package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/memory"
)

func TestRefreshDaysInStock(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()
	created := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)

	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Acme", CreatedAt: created}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "p-stock", CompanyID: "c1", Name: "Con stock", SKU: "A",
		CurrentQuantity: decimal.NewFromInt(3), CreatedAt: created,
	}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: "p-vacio", CompanyID: "c1", Name: "Sin stock", SKU: "B",
		DaysInStock: 7, CreatedAt: created,
	}))

	now := created.Add(10*24*time.Hour + 3*time.Hour)
	s := New(repos.Products, func() time.Time { return now })

	n, err := s.RefreshDaysInStock(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	withStock, err := repos.Products.GetByID(ctx, "c1", "p-stock")
	require.NoError(t, err)
	assert.Equal(t, 10, withStock.DaysInStock)

	empty, err := repos.Products.GetByID(ctx, "c1", "p-vacio")
	require.NoError(t, err)
	assert.Equal(t, 0, empty.DaysInStock)

	// segunda corrida sin cambios
	n, err = s.RefreshDaysInStock(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStart_ExpresionInvalida(t *testing.T) {
	s := New(memory.NewStore().Repositories().Products, nil)
	assert.Error(t, s.Start("no es cron"))
}

func TestStartStop(t *testing.T) {
	s := New(memory.NewStore().Repositories().Products, nil)
	require.NoError(t, s.Start("0 2 * * *"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
