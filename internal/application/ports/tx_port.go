package ports

import (
	"context"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una unidad atómica, pasando repositorios atados a ella.
// Si fn devuelve error (o entra en pánico) nada de lo escrito persiste y el error de fn
// se devuelve sin modificar.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}
