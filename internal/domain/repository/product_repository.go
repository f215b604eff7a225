package repository

import (
	"context"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// ProductRepository puerto de persistencia de productos. Todas las lecturas filtran por empresa:
// un producto de otra empresa se comporta como inexistente (nil, nil).
type ProductRepository interface {
	// Create devuelve domain.ErrDuplicate si el SKU ya existe en la empresa.
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error)
	// UpdateStock persiste las proyecciones del ledger: cantidad, costo y capital.
	UpdateStock(ctx context.Context, product *entity.Product) error
	// ListByCompany con limit <= 0 devuelve todos los productos.
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Product, error)
	// RefreshDaysInStock recalcula days_in_stock de todas las empresas y devuelve las filas afectadas.
	RefreshDaysInStock(ctx context.Context, now time.Time) (int64, error)
}
