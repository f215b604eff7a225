package repository

import (
	"context"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// SaleRepository puerto de persistencia de ventas e ítems.
type SaleRepository interface {
	// Create devuelve domain.ErrConflict si el número de factura ya existe en la empresa.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Sale, error)
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error)
	UpdateStatus(ctx context.Context, companyID, id, status string, at time.Time) error
	// NextInvoiceNumber reserva el siguiente consecutivo de la empresa para el año (sin huecos dentro de la tx).
	NextInvoiceNumber(ctx context.Context, companyID string, year int) (int64, error)
}
