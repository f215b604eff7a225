package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/money"
)

// Umbrales de antigüedad del stock, en días.
const (
	SlowMovingDays = 60
	DeadStockDays  = 90
)

// BuildInsights clasifica los productos y arma las recomendaciones (función pura).
// Un producto muerto (>90 días) también cuenta como de lenta rotación (>60 días).
func BuildInsights(products []*entity.Product) *dto.InsightsDTO {
	out := &dto.InsightsDTO{
		SlowMovingItems:     []dto.InsightProductDTO{},
		DeadStockItems:      []dto.InsightProductDTO{},
		LowStockItems:       []dto.InsightProductDTO{},
		TotalInventoryValue: decimal.Zero,
		DeadStockValue:      decimal.Zero,
	}
	for _, p := range products {
		item := toInsightProduct(p)
		out.TotalInventoryValue = out.TotalInventoryValue.Add(p.TotalCapitalValue)
		if p.DaysInStock > SlowMovingDays {
			out.SlowMovingItems = append(out.SlowMovingItems, item)
		}
		if p.DaysInStock > DeadStockDays {
			out.DeadStockItems = append(out.DeadStockItems, item)
			out.DeadStockValue = out.DeadStockValue.Add(p.TotalCapitalValue)
		}
		if p.IsBelowMinimum() {
			out.LowStockItems = append(out.LowStockItems, item)
		}
	}
	out.SlowMovingProducts = len(out.SlowMovingItems)
	out.DeadStock = len(out.DeadStockItems)
	out.LowStockAlerts = len(out.LowStockItems)
	out.TotalInventoryValue = out.TotalInventoryValue.Round(2)
	out.DeadStockValue = out.DeadStockValue.Round(2)
	out.Recommendations = []string{
		fmt.Sprintf("You have %d dead stock items blocking %s in capital", out.DeadStock, money.Format(out.DeadStockValue)),
		fmt.Sprintf("%d products are slow-moving. Consider promotional offers", out.SlowMovingProducts),
		fmt.Sprintf("%d products are below their minimum stock level. Reorder soon", out.LowStockAlerts),
		"Focus on improving inventory turnover",
	}
	return out
}

func toInsightProduct(p *entity.Product) dto.InsightProductDTO {
	return dto.InsightProductDTO{
		ID:                    p.ID,
		Name:                  p.Name,
		SKU:                   p.SKU,
		CurrentQuantity:       p.CurrentQuantity,
		DaysInStock:           p.DaysInStock,
		MinimumStockThreshold: p.MinimumStockThreshold,
		TotalCapitalValue:     p.TotalCapitalValue,
	}
}

// InsightsUseCase aplica BuildInsights al catálogo completo de la empresa.
type InsightsUseCase struct {
	productRepo repository.ProductRepository
}

// NewInsightsUseCase construye el caso de uso.
func NewInsightsUseCase(productRepo repository.ProductRepository) *InsightsUseCase {
	return &InsightsUseCase{productRepo: productRepo}
}

// Generate lee todos los productos de la empresa y devuelve el análisis.
func (uc *InsightsUseCase) Generate(ctx context.Context, companyID string) (*dto.InsightsDTO, error) {
	products, err := uc.productRepo.ListByCompany(ctx, companyID, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("insights: listar productos: %w", err)
	}
	return BuildInsights(products), nil
}
