package usecase

import (
	"context"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

// CompanyUseCase consulta de la empresa del usuario autenticado.
// Las empresas se crean únicamente en el registro (auth.Register).
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// GetCurrent obtiene la empresa del token.
func (uc *CompanyUseCase) GetCurrent(ctx context.Context, companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.CompanyResponse{ID: company.ID, Name: company.Name, CreatedAt: company.CreatedAt}, nil
}
