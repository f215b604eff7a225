package inventory

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/inventory"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/validation"
)

// Policy reglas configurables del ledger.
type Policy struct {
	// AllowNegativeStock permite que una salida deje la cantidad bajo cero.
	AllowNegativeStock bool
}

// MovementInput entrada para registrar un movimiento en el ledger.
type MovementInput struct {
	CompanyID     string
	ActorID       string
	ProductID     string
	Type          string
	Quantity      decimal.Decimal
	UnitCost      *decimal.Decimal // sólo entradas: actualiza el costo promedio
	ReferenceType string
	ReferenceID   string
	WarehouseZone string
	Notes         string
}

// StockLedger registra movimientos inmutables y mantiene current_quantity como su proyección.
// Cada registro bloquea la fila del producto (SELECT FOR UPDATE) dentro de la unidad atómica.
type StockLedger struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	ids      ids.Provider
	policy   Policy
}

// NewStockLedger construye el ledger. repos se usa para lecturas fuera de transacción.
func NewStockLedger(txRunner ports.TxRunner, repos repository.Repositories, idp ids.Provider, policy Policy) *StockLedger {
	return &StockLedger{txRunner: txRunner, repos: repos, ids: idp, policy: policy}
}

// RecordMovement registra un movimiento en su propia unidad atómica.
func (l *StockLedger) RecordMovement(ctx context.Context, in MovementInput) (*entity.StockMovement, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	var out *entity.StockMovement
	err := l.txRunner.Run(ctx, func(repos repository.Repositories) error {
		m, err := l.RecordMovementInTx(ctx, repos, in)
		out = m
		return err
	})
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("company_id", in.CompanyID).
		Str("product_id", in.ProductID).
		Str("movement_type", in.Type).
		Str("quantity", in.Quantity.String()).
		Msg("movimiento de stock registrado")
	return out, nil
}

// CreateMovement registra un movimiento manual recibido por la API.
func (l *StockLedger) CreateMovement(ctx context.Context, companyID, actorID string, in dto.CreateMovementRequest) (*dto.CreateMovementResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	m, err := l.RecordMovement(ctx, MovementInput{
		CompanyID:     companyID,
		ActorID:       actorID,
		ProductID:     in.ProductID,
		Type:          in.MovementType,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		WarehouseZone: in.WarehouseZone,
		Notes:         in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return &dto.CreateMovementResponse{MovementID: m.ID, Success: true}, nil
}

// LockProducts bloquea las filas de los productos en orden de ID, sin repetir. Los documentos
// la llaman antes de recorrer sus líneas para que dos transacciones con los mismos productos
// en distinto orden no se bloqueen mutuamente.
func (l *StockLedger) LockProducts(ctx context.Context, repos repository.Repositories, companyID string, productIDs []string) error {
	sorted := slices.Clone(productIDs)
	slices.Sort(sorted)
	for _, id := range slices.Compact(sorted) {
		product, err := repos.Products.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
		}
	}
	return nil
}

// RecordMovementInTx aplica el movimiento con los repositorios de la transacción del caller.
// Bloquea el producto, agrega la entrada al ledger y actualiza cantidad, costo y capital.
func (l *StockLedger) RecordMovementInTx(ctx context.Context, repos repository.Repositories, in MovementInput) (*entity.StockMovement, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}
	product, err := repos.Products.GetForUpdate(ctx, in.CompanyID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, in.ProductID)
	}

	next, err := inventory.ApplyMovement(product.CurrentQuantity, in.Type, in.Quantity, l.policy.AllowNegativeStock)
	if err != nil {
		return nil, fmt.Errorf("producto %s: %w", product.ID, err)
	}

	now := l.ids.Now()
	if in.UnitCost != nil && entity.MovementSign(in.Type) > 0 {
		product.PurchaseCost = inventory.CostCalculator(product.CurrentQuantity, product.PurchaseCost, in.Quantity, *in.UnitCost)
	}
	product.CurrentQuantity = next
	product.TotalCapitalValue = inventory.CapitalValue(next, product.PurchaseCost)
	product.UpdatedAt = now

	mov := &entity.StockMovement{
		ID:            l.ids.NewID(),
		CompanyID:     in.CompanyID,
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		WarehouseZone: in.WarehouseZone,
		Notes:         in.Notes,
		CreatedBy:     in.ActorID,
		CreatedAt:     now,
	}
	if mov.ReferenceType == "" {
		mov.ReferenceType = entity.ReferenceManual
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	if err := repos.Products.UpdateStock(ctx, product); err != nil {
		return nil, err
	}
	return mov, nil
}

// CurrentQuantity lee la proyección de un producto.
func (l *StockLedger) CurrentQuantity(ctx context.Context, companyID, productID string) (decimal.Decimal, error) {
	p, err := l.repos.Products.GetByID(ctx, companyID, productID)
	if err != nil {
		return decimal.Zero, err
	}
	if p == nil {
		return decimal.Zero, domain.ErrNotFound
	}
	return p.CurrentQuantity, nil
}

// Reconcile compara la proyección con la suma firmada del ledger.
func (l *StockLedger) Reconcile(ctx context.Context, companyID, productID string) (*dto.LedgerCheckResponse, error) {
	p, err := l.repos.Products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	sum, err := l.repos.Movements.SignedSum(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	consistent := sum.Equal(p.CurrentQuantity)
	if !consistent {
		log.Warn().
			Str("company_id", companyID).
			Str("product_id", productID).
			Str("projection", p.CurrentQuantity.String()).
			Str("ledger", sum.String()).
			Msg("proyección de stock inconsistente con el ledger")
	}
	return &dto.LedgerCheckResponse{
		ProductID:       productID,
		CurrentQuantity: p.CurrentQuantity,
		LedgerQuantity:  sum,
		Consistent:      consistent,
	}, nil
}

// ListMovements lista el ledger de la empresa con filtros opcionales.
func (l *StockLedger) ListMovements(ctx context.Context, companyID string, in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	in.Normalize()
	list, err := l.repos.Movements.ListByCompany(ctx, companyID, repository.MovementFilter{
		ProductID:     in.ProductID,
		Type:          in.MovementType,
		ReferenceType: in.ReferenceType,
		ReferenceID:   in.ReferenceID,
		Limit:         in.Limit,
		Offset:        in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// ToMovementResponse mapea la entidad a su fila de salida.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		CompanyID:     m.CompanyID,
		ProductID:     m.ProductID,
		MovementType:  m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		WarehouseZone: m.WarehouseZone,
		Notes:         m.Notes,
		CreatedBy:     m.CreatedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func validateMovement(in MovementInput) error {
	verr := domain.NewValidationError()
	if in.CompanyID == "" {
		verr.Add("company_id es requerido")
	}
	if in.ProductID == "" {
		verr.Add("productId es requerido")
	}
	if !entity.IsValidMovementType(in.Type) {
		verr.Add(fmt.Sprintf("movementType inválido: %q", in.Type))
	}
	if !in.Quantity.IsPositive() {
		verr.Add("quantity debe ser mayor que cero")
	} else if !entity.FitsScale(in.Quantity, entity.QuantityScale) {
		verr.Add(fmt.Sprintf("quantity admite hasta %d decimales", entity.QuantityScale))
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			verr.Add("unitCost no puede ser negativo")
		} else if !entity.FitsScale(*in.UnitCost, entity.UnitPriceScale) {
			verr.Add(fmt.Sprintf("unitCost admite hasta %d decimales", entity.UnitPriceScale))
		}
	}
	if in.ReferenceType != "" && !entity.IsValidReferenceType(in.ReferenceType) {
		verr.Add(fmt.Sprintf("referenceType inválido: %q", in.ReferenceType))
	}
	return verr.OrNil()
}
