package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/memory"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
)

const (
	companyA = "c-acme"
	companyB = "c-globex"
)

func setup(t *testing.T) (repository.Repositories, ids.Provider) {
	t.Helper()
	repos := memory.NewStore().Repositories()
	ctx := context.Background()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: companyA, Name: "Acme"}))
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: companyB, Name: "Globex"}))
	return repos, ids.NewFixed(time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC))
}

func TestProductUseCase_Create(t *testing.T) {
	repos, idp := setup(t)
	ctx := context.Background()
	suppliers := NewSupplierUseCase(repos.Suppliers, idp)
	uc := NewProductUseCase(repos.Products, repos.Suppliers, idp)

	sup, err := suppliers.Create(ctx, companyA, dto.CreateSupplierRequest{Name: "Maderas SA"})
	require.NoError(t, err)

	p, err := uc.Create(ctx, companyA, dto.CreateProductRequest{
		Name:                  " Pallet ",
		SKU:                   "PAL-120",
		PurchaseCost:          decimal.NewFromInt(12),
		SellingPrice:          decimal.NewFromInt(20),
		Dimensions:            json.RawMessage(`{"w":120,"h":80}`),
		SupplierID:            sup.ID,
		MinimumStockThreshold: decimal.NewFromInt(5),
	})
	require.NoError(t, err)
	assert.Equal(t, "Pallet", p.Name)
	assert.True(t, p.CurrentQuantity.IsZero())
	assert.True(t, p.TotalCapitalValue.IsZero())
	require.NotNil(t, p.SupplierID)
	assert.Equal(t, sup.ID, *p.SupplierID)

	_, err = uc.Create(ctx, companyA, dto.CreateProductRequest{Name: "Otro", SKU: "PAL-120"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	// mismo SKU en otra empresa es válido
	_, err = uc.Create(ctx, companyB, dto.CreateProductRequest{Name: "Pallet", SKU: "PAL-120"})
	require.NoError(t, err)

	got, err := uc.GetByID(ctx, companyA, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "PAL-120", got.SKU)
	_, err = uc.GetByID(ctx, companyB, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, companyA, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProductUseCase_CreateValidacion(t *testing.T) {
	repos, idp := setup(t)
	uc := NewProductUseCase(repos.Products, repos.Suppliers, idp)
	ctx := context.Background()

	cases := []struct {
		name string
		in   dto.CreateProductRequest
	}{
		{"sin nombre", dto.CreateProductRequest{}},
		{"costo negativo", dto.CreateProductRequest{Name: "X", PurchaseCost: decimal.NewFromInt(-1)}},
		{"umbral negativo", dto.CreateProductRequest{Name: "X", MinimumStockThreshold: decimal.NewFromInt(-1)}},
		{"dimensiones mal formadas", dto.CreateProductRequest{Name: "X", Dimensions: json.RawMessage(`{"w":`)}},
		{"proveedor sin uuid", dto.CreateProductRequest{Name: "X", SupplierID: "42"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Create(ctx, companyA, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	_, err := uc.Create(ctx, companyA, dto.CreateProductRequest{Name: "X", SupplierID: "55555555-5555-4555-8555-555555555555"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerUseCase(t *testing.T) {
	repos, idp := setup(t)
	uc := NewCustomerUseCase(repos.Customers, idp)
	ctx := context.Background()

	c, err := uc.Create(ctx, companyA, dto.CreateCustomerRequest{
		Name: "Ferretería Central", Email: "compras@central.io", CreditLimit: decimal.NewFromInt(1000), OutstandingBalance: decimal.NewFromInt(250),
	})
	require.NoError(t, err)
	assert.Equal(t, companyA, c.CompanyID)

	_, err = uc.Create(ctx, companyA, dto.CreateCustomerRequest{Name: "X", Email: "no-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, companyA, dto.CreateCustomerRequest{Name: "X", CreditLimit: decimal.NewFromInt(-5)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, companyB, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = uc.List(ctx, companyA, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestUserUseCase(t *testing.T) {
	repos, idp := setup(t)
	uc := NewUserUseCase(repos.Users, idp).WithHashCost(bcrypt.MinCost)
	ctx := context.Background()

	u, err := uc.Create(ctx, companyA, dto.CreateUserRequest{Email: "Staff@Acme.io", Password: "12345678", FullName: "Staff", Role: entity.RoleStaff})
	require.NoError(t, err)
	assert.Equal(t, "staff@acme.io", u.Email)
	assert.True(t, u.IsActive)

	stored, err := repos.Users.GetByID(ctx, companyA, u.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("12345678")))

	_, err = uc.Create(ctx, companyB, dto.CreateUserRequest{Email: "staff@acme.io", Password: "12345678", FullName: "Otro", Role: entity.RoleManager})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.Create(ctx, companyA, dto.CreateUserRequest{Email: "x@acme.io", Password: "12345678", FullName: "X", Role: "ROOT"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, companyA, dto.CreateUserRequest{Email: "y@acme.io", Password: strings.Repeat("x", 73), FullName: "Y", Role: entity.RoleStaff})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, companyA, dto.CreateUserRequest{Email: "z@acme.io", Password: strings.Repeat("ñ", 40), FullName: "Z", Role: entity.RoleStaff})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, companyA)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCompanyUseCase_GetCurrent(t *testing.T) {
	repos, _ := setup(t)
	uc := NewCompanyUseCase(repos.Companies)
	c, err := uc.GetCurrent(context.Background(), companyA)
	require.NoError(t, err)
	assert.Equal(t, "Acme", c.Name)
	_, err = uc.GetCurrent(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
