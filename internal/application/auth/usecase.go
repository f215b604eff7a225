package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/jwt"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/validation"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	txRunner ports.TxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	ids      ids.Provider
	cost     int
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(txRunner ports.TxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig, idp ids.Provider) *AuthUseCase {
	return &AuthUseCase{txRunner: txRunner, userRepo: userRepo, jwtCfg: jwtCfg, ids: idp, cost: bcrypt.DefaultCost}
}

// WithHashCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithHashCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// Register crea la empresa y su primer usuario (COMPANY_ADMIN) en una sola transacción
// y devuelve un token ya firmado. Email repetido → domain.ErrEmailAlreadyExists.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	hash, err := HashPassword(in.Password, uc.cost)
	if err != nil {
		return nil, err
	}
	now := uc.ids.Now()
	company := &entity.Company{ID: uc.ids.NewID(), Name: strings.TrimSpace(in.CompanyName), CreatedAt: now}
	user := &entity.User{
		ID:           uc.ids.NewID(),
		CompanyID:    company.ID,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         entity.RoleCompanyAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		existing, err := repos.Users.GetByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrEmailAlreadyExists
		}
		if err := repos.Companies.Create(ctx, company); err != nil {
			return err
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	token, err := uc.sign(user)
	if err != nil {
		return nil, err
	}
	log.Info().Str("company_id", company.ID).Str("user_id", user.ID).Msg("empresa registrada")
	return &dto.RegisterResponse{Token: token, CompanyID: company.ID, UserID: user.ID}, nil
}

// Login verifica email/password y genera el JWT. Usuario inexistente y password
// incorrecto devuelven el mismo domain.ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, uc.ids.Now()); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar last_login_at")
	}
	token, err := uc.sign(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		CompanyID: user.CompanyID,
		UserID:    user.ID,
		Role:      user.Role,
		Email:     user.Email,
	}, nil
}

// HashPassword genera el hash bcrypt. bcrypt sólo admite 72 bytes: un password más largo
// (p. ej. 40 caracteres multibyte que pasan max=72) es un error de entrada, no de servidor.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", domain.NewValidationError("password excede 72 bytes")
	}
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (uc *AuthUseCase) sign(u *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID:    u.ID,
		CompanyID: u.CompanyID,
		Role:      u.Role,
		Email:     u.Email,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
