package usecase

import (
	"context"
	"strings"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/validation"
)

// CustomerUseCase alta y consulta de clientes.
type CustomerUseCase struct {
	repo repository.CustomerRepository
	ids  ids.Provider
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, idp ids.Provider) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, ids: idp}
}

// Create registra un cliente. outstanding_balance inicial es opcional (saldo migrado de otro sistema).
func (uc *CustomerUseCase) Create(ctx context.Context, companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	nonNegative(verr, "credit_limit", in.CreditLimit)
	nonNegative(verr, "outstanding_balance", in.OutstandingBalance)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	now := uc.ids.Now()
	c := &entity.Customer{
		ID:                 uc.ids.NewID(),
		CompanyID:          companyID,
		Name:               strings.TrimSpace(in.Name),
		Email:              in.Email,
		Phone:              in.Phone,
		Address:            in.Address,
		CreditLimit:        in.CreditLimit,
		OutstandingBalance: in.OutstandingBalance,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCustomerResponse(c), nil
}

// List clientes de la empresa.
func (uc *CustomerUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                 c.ID,
		CompanyID:          c.CompanyID,
		Name:               c.Name,
		Email:              c.Email,
		Phone:              c.Phone,
		Address:            c.Address,
		CreditLimit:        c.CreditLimit,
		OutstandingBalance: c.OutstandingBalance,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

// SupplierUseCase alta y consulta de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	ids  ids.Provider
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, idp ids.Provider) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, ids: idp}
}

// Create registra un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := uc.ids.Now()
	s := &entity.Supplier{
		ID:          uc.ids.NewID(),
		CompanyID:   companyID,
		Name:        strings.TrimSpace(in.Name),
		ContactName: in.ContactName,
		Email:       in.Email,
		Phone:       in.Phone,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// List proveedores de la empresa.
func (uc *SupplierUseCase) List(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.SupplierResponse, error) {
	page.Normalize()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSupplierResponse(s))
	}
	return out, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		CompanyID:   s.CompanyID,
		Name:        s.Name,
		ContactName: s.ContactName,
		Email:       s.Email,
		Phone:       s.Phone,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
