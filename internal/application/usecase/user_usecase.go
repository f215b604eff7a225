package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/auth"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/validation"
)

// UserUseCase gestión de usuarios dentro de una empresa.
type UserUseCase struct {
	repo repository.UserRepository
	ids  ids.Provider
	cost int
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, idp ids.Provider) *UserUseCase {
	return &UserUseCase{repo: repo, ids: idp, cost: bcrypt.DefaultCost}
}

// WithHashCost cambia el costo de bcrypt.
func (uc *UserUseCase) WithHashCost(cost int) *UserUseCase {
	uc.cost = cost
	return uc
}

// Create da de alta un usuario en la empresa del administrador. El email es único global.
func (uc *UserUseCase) Create(ctx context.Context, companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(in.Password, uc.cost)
	if err != nil {
		return nil, err
	}
	now := uc.ids.Now()
	user := &entity.User{
		ID:           uc.ids.NewID(),
		CompanyID:    companyID,
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
		Role:         in.Role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Info().Str("company_id", companyID).Str("user_id", user.ID).Str("role", user.Role).Msg("usuario creado")
	return toUserResponse(user), nil
}

// List usuarios de la empresa.
func (uc *UserUseCase) List(ctx context.Context, companyID string) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, *toUserResponse(u))
	}
	return out, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Email:       u.Email,
		FullName:    u.FullName,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}
