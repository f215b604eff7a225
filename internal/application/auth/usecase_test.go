package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/infrastructure/memory"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/jwt"
)

const secret = "test-secret"

func newAuth(t *testing.T) (*AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	idp := ids.NewFixed(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC))
	uc := NewAuthUseCase(store, store.Repositories().Users, JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "dockside"}, idp).
		WithHashCost(bcrypt.MinCost)
	return uc, store
}

func TestRegister_CreaEmpresaYAdmin(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	res, err := uc.Register(ctx, dto.RegisterRequest{
		Email: " Owner@Acme.io ", Password: "supersecret", FullName: "Ana Owner", CompanyName: "Acme",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	claims, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.UserID, claims.UserID)
	assert.Equal(t, res.CompanyID, claims.CompanyID)
	assert.Equal(t, entity.RoleCompanyAdmin, claims.Role)
	assert.Equal(t, "owner@acme.io", claims.Email)

	company, err := store.Repositories().Companies.GetByID(ctx, res.CompanyID)
	require.NoError(t, err)
	require.NotNil(t, company)
	assert.Equal(t, "Acme", company.Name)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	in := dto.RegisterRequest{Email: "a@b.io", Password: "supersecret", FullName: "A", CompanyName: "Uno"}
	_, err := uc.Register(ctx, in)
	require.NoError(t, err)

	in.CompanyName = "Dos"
	in.Email = "A@B.io"
	_, err = uc.Register(ctx, in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	// la segunda empresa no debe quedar huérfana
	users, err := store.Repositories().Users.GetByEmail(ctx, "a@b.io")
	require.NoError(t, err)
	company, err := store.Repositories().Companies.GetByID(ctx, users.CompanyID)
	require.NoError(t, err)
	assert.Equal(t, "Uno", company.Name)
}

func TestRegister_Validacion(t *testing.T) {
	uc, _ := newAuth(t)
	_, err := uc.Register(context.Background(), dto.RegisterRequest{Email: "no-es-email", Password: "corta"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.GreaterOrEqual(t, len(ve.Details), 3)
}

func TestLogin(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	reg, err := uc.Register(ctx, dto.RegisterRequest{Email: "ops@acme.io", Password: "supersecret", FullName: "Ops", CompanyName: "Acme"})
	require.NoError(t, err)

	t.Run("credenciales válidas", func(t *testing.T) {
		res, err := uc.Login(ctx, dto.LoginRequest{Email: "OPS@acme.io", Password: "supersecret"})
		require.NoError(t, err)
		assert.Equal(t, reg.UserID, res.UserID)
		assert.Equal(t, reg.CompanyID, res.CompanyID)
		assert.Equal(t, entity.RoleCompanyAdmin, res.Role)

		u, err := store.Repositories().Users.GetByID(ctx, reg.CompanyID, reg.UserID)
		require.NoError(t, err)
		require.NotNil(t, u.LastLoginAt)
	})

	t.Run("password incorrecto", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "ops@acme.io", Password: "otra-cosa"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("usuario inexistente", func(t *testing.T) {
		_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@acme.io", Password: "supersecret"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestLogin_UsuarioInactivo(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	repos := store.Repositories()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Acme"}))
	hash, err := HashPassword("supersecret", bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repos.Users.Create(ctx, &entity.User{
		ID: "u1", CompanyID: "c1", Email: "off@acme.io", PasswordHash: hash, Role: entity.RoleStaff, IsActive: false,
	}))

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "off@acme.io", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRegister_PasswordDemasiadoLargo(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	cases := map[string]string{
		"73 bytes ascii":           strings.Repeat("a", 73),
		"40 caracteres multibyte": strings.Repeat("ñ", 40),
	}
	for name, password := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Register(ctx, dto.RegisterRequest{
				Email: "largo@acme.io", Password: password, FullName: "Largo", CompanyName: "Acme",
			})
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
