package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/memory"
)

func TestBuildInsights_Clasificacion(t *testing.T) {
	products := []*entity.Product{
		{ID: "fresh", DaysInStock: 10, CurrentQuantity: dec("5"), MinimumStockThreshold: dec("2"), TotalCapitalValue: dec("50")},
		{ID: "slow", DaysInStock: 61, CurrentQuantity: dec("5"), MinimumStockThreshold: dec("2"), TotalCapitalValue: dec("100")},
		{ID: "dead", DaysInStock: 120, CurrentQuantity: dec("8"), MinimumStockThreshold: dec("0"), TotalCapitalValue: dec("1250.5")},
		{ID: "low", DaysInStock: 0, CurrentQuantity: dec("1"), MinimumStockThreshold: dec("3"), TotalCapitalValue: dec("9.5")},
		{ID: "edge", DaysInStock: 60, CurrentQuantity: dec("3"), MinimumStockThreshold: dec("3"), TotalCapitalValue: dec("0")},
	}

	got := BuildInsights(products)

	assert.Equal(t, 2, got.SlowMovingProducts)
	assert.Equal(t, 1, got.DeadStock)
	assert.Equal(t, 1, got.LowStockAlerts)
	assert.ElementsMatch(t, []string{"slow", "dead"}, productIDs(got.SlowMovingItems))
	assert.ElementsMatch(t, []string{"dead"}, productIDs(got.DeadStockItems))
	assert.ElementsMatch(t, []string{"low"}, productIDs(got.LowStockItems))
	assert.True(t, dec("1410").Equal(got.TotalInventoryValue))
	assert.True(t, dec("1250.5").Equal(got.DeadStockValue))

	require.Len(t, got.Recommendations, 4)
	assert.Contains(t, got.Recommendations[0], "You have 1 dead stock items blocking")
	assert.Contains(t, got.Recommendations[0], "1,250.50")
	assert.Equal(t, "2 products are slow-moving. Consider promotional offers", got.Recommendations[1])
	assert.Equal(t, "1 products are below their minimum stock level. Reorder soon", got.Recommendations[2])
	assert.Equal(t, "Focus on improving inventory turnover", got.Recommendations[3])
}

func productIDs(list []dto.InsightProductDTO) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func TestBuildInsights_SinProductos(t *testing.T) {
	got := BuildInsights(nil)
	assert.Zero(t, got.SlowMovingProducts)
	assert.Zero(t, got.DeadStock)
	assert.Zero(t, got.LowStockAlerts)
	assert.NotNil(t, got.SlowMovingItems)
	assert.NotNil(t, got.DeadStockItems)
	assert.NotNil(t, got.LowStockItems)
	assert.True(t, got.TotalInventoryValue.IsZero())
	require.Len(t, got.Recommendations, 4)
	assert.Contains(t, got.Recommendations[0], "You have 0 dead stock items")
}

func TestInsightsUseCase_FiltraPorEmpresa(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: companyA, Name: "Acme"}))
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: companyB, Name: "Globex"}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "a", CompanyID: companyA, SKU: "A", DaysInStock: 100, TotalCapitalValue: dec("10")}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{ID: "b", CompanyID: companyB, SKU: "B", DaysInStock: 100, TotalCapitalValue: dec("99")}))

	got, err := NewInsightsUseCase(repos.Products).Generate(ctx, companyA)
	require.NoError(t, err)
	assert.Equal(t, 1, got.DeadStock)
	require.Len(t, got.DeadStockItems, 1)
	assert.Equal(t, "a", got.DeadStockItems[0].ID)
	assert.True(t, dec("10").Equal(got.TotalInventoryValue))
}
