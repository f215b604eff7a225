package repository

import (
	"context"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// CompanyRepository puerto de persistencia de empresas (tenants).
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id string) (*entity.Company, error)
}
