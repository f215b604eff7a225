package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/validation"
)

// ProductUseCase casos de uso del catálogo. Cantidad y capital se manejan vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	supplierRepo repository.SupplierRepository
	ids          ids.Provider
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, supplierRepo repository.SupplierRepository, idp ids.Provider) *ProductUseCase {
	return &ProductUseCase{repo: repo, supplierRepo: supplierRepo, ids: idp}
}

// Create crea un producto con cantidad 0. El stock inicial se registra como movimiento.
// SKU repetido en la empresa → domain.ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	nonNegative(verr, "purchase_cost", in.PurchaseCost)
	nonNegative(verr, "selling_price", in.SellingPrice)
	nonNegative(verr, "minimum_stock_threshold", in.MinimumStockThreshold)
	if len(in.Dimensions) > 0 && !json.Valid(in.Dimensions) {
		verr.Add("dimensions: JSON inválido")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	if in.SupplierID != "" {
		s, err := uc.supplierRepo.GetByID(ctx, companyID, in.SupplierID)
		if err != nil {
			return nil, err
		}
		if s == nil {
			return nil, fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, in.SupplierID)
		}
	}

	now := uc.ids.Now()
	product := &entity.Product{
		ID:                    uc.ids.NewID(),
		CompanyID:             companyID,
		Name:                  strings.TrimSpace(in.Name),
		Category:              in.Category,
		SKU:                   strings.TrimSpace(in.SKU),
		PurchaseCost:          in.PurchaseCost,
		SellingPrice:          in.SellingPrice,
		UnitType:              in.UnitType,
		Dimensions:            in.Dimensions,
		SupplierID:            in.SupplierID,
		CurrentQuantity:       decimal.Zero,
		MinimumStockThreshold: in.MinimumStockThreshold,
		TotalCapitalValue:     decimal.Zero,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return ToProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// ToProductResponse fila de producto tal como la expone la API.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	var supplierID *string
	if p.SupplierID != "" {
		s := p.SupplierID
		supplierID = &s
	}
	return &dto.ProductResponse{
		ID:                    p.ID,
		CompanyID:             p.CompanyID,
		Name:                  p.Name,
		Category:              p.Category,
		SKU:                   p.SKU,
		PurchaseCost:          p.PurchaseCost,
		SellingPrice:          p.SellingPrice,
		UnitType:              p.UnitType,
		Dimensions:            p.Dimensions,
		SupplierID:            supplierID,
		CurrentQuantity:       p.CurrentQuantity,
		DaysInStock:           p.DaysInStock,
		MinimumStockThreshold: p.MinimumStockThreshold,
		TotalCapitalValue:     p.TotalCapitalValue,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func nonNegative(verr *domain.ValidationError, field string, v decimal.Decimal) {
	if v.IsNegative() {
		verr.Add(field + ": no puede ser negativo")
	}
}
