package repository

import (
	"context"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia de compras e ítems.
type PurchaseRepository interface {
	// Create devuelve domain.ErrConflict si el número de factura ya existe en la empresa.
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateItem(ctx context.Context, item *entity.PurchaseItem) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Purchase, error)
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Purchase, error)
	ListItems(ctx context.Context, purchaseID string) ([]*entity.PurchaseItem, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Purchase, error)
	UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error
}
