package repository

import (
	"context"
	"time"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	// Create devuelve domain.ErrEmailAlreadyExists si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, companyID, id string) (*entity.User, error)
	// GetByEmail busca sin filtrar por empresa (el email es único global).
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}
