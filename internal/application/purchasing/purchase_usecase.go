// Package purchasing implementa el documento de compra: cabecera, líneas y entradas de stock
// registradas en una sola unidad atómica.
package purchasing

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/documents"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/inventory"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/ports"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/repository"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/ids"
	"github.com/chauhanravicr7-netizen/dockside-backend/pkg/validation"
)

// PurchaseUseCase casos de uso de compras.
type PurchaseUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	ledger   *inventory.StockLedger
	ids      ids.Provider
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(txRunner ports.TxRunner, repos repository.Repositories, ledger *inventory.StockLedger, idp ids.Provider) *PurchaseUseCase {
	return &PurchaseUseCase{txRunner: txRunner, repos: repos, ledger: ledger, ids: idp}
}

// CreatePurchase valida fuera de la transacción y luego, atómicamente: cabecera (pending),
// una línea por ítem y un movimiento INBOUND por línea. Cualquier fallo deshace todo.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, companyID, actorID string, in dto.CreatePurchaseRequest) (*dto.CreatePurchaseResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	lines, total, err := documents.BuildLines(in.Items, in.TaxAmount)
	if err != nil {
		return nil, err
	}
	now := uc.ids.Now()
	purchaseDate, err := documents.ParseDate("purchaseDate", in.PurchaseDate, now)
	if err != nil {
		return nil, err
	}
	expected, err := documents.ParseOptionalDate("expectedDeliveryDate", in.ExpectedDeliveryDate)
	if err != nil {
		return nil, err
	}

	purchase := &entity.Purchase{
		ID:                   uc.ids.NewID(),
		CompanyID:            companyID,
		SupplierID:           in.SupplierID,
		PurchaseDate:         purchaseDate,
		ExpectedDeliveryDate: expected,
		Status:               entity.PurchaseStatusPending,
		TotalAmount:          total,
		TaxAmount:            in.TaxAmount,
		InvoiceNumber:        in.InvoiceNumber,
		Notes:                in.Notes,
		CreatedBy:            actorID,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if purchase.SupplierID != "" {
			supplier, err := repos.Suppliers.GetByID(ctx, companyID, purchase.SupplierID)
			if err != nil {
				return err
			}
			if supplier == nil {
				return fmt.Errorf("%w: proveedor %s", domain.ErrNotFound, purchase.SupplierID)
			}
		}
		if err := uc.ledger.LockProducts(ctx, repos, companyID, documents.ProductIDs(lines)); err != nil {
			return err
		}
		if err := repos.Purchases.Create(ctx, purchase); err != nil {
			return err
		}
		for _, line := range lines {
			item := &entity.PurchaseItem{
				ID:         uc.ids.NewID(),
				PurchaseID: purchase.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
			}
			if err := repos.Purchases.CreateItem(ctx, item); err != nil {
				return err
			}
			unitCost := line.UnitPrice
			if _, err := uc.ledger.RecordMovementInTx(ctx, repos, inventory.MovementInput{
				CompanyID:     companyID,
				ActorID:       actorID,
				ProductID:     line.ProductID,
				Type:          entity.MovementTypeInbound,
				Quantity:      line.Quantity,
				UnitCost:      &unitCost,
				ReferenceType: entity.ReferencePurchase,
				ReferenceID:   purchase.ID,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("company_id", companyID).
		Str("purchase_id", purchase.ID).
		Int("items", len(lines)).
		Str("total", total.String()).
		Msg("compra registrada")

	return &dto.CreatePurchaseResponse{PurchaseID: purchase.ID, Success: true, Total: total}, nil
}

// GetPurchase devuelve la compra con sus líneas.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, companyID, id string) (*dto.PurchaseResponse, error) {
	p, err := uc.repos.Purchases.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Purchases.ListItems(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := toPurchaseResponse(p)
	out.Items = make([]dto.DocumentItemResponse, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, documents.ItemResponse(it.ID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice))
	}
	return &out, nil
}

// ListPurchases lista las compras de la empresa, más recientes primero.
func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.PurchaseResponse, error) {
	page.Normalize()
	list, err := uc.repos.Purchases.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPurchaseResponse(p))
	}
	return out, nil
}

// UpdateStatus aplica pending→completed o pending→cancelled. La cancelación agrega
// movimientos OUTBOUND compensatorios en la misma unidad atómica; el ledger nunca se edita.
func (uc *PurchaseUseCase) UpdateStatus(ctx context.Context, companyID, actorID, id, status string) (*dto.PurchaseResponse, error) {
	switch status {
	case entity.PurchaseStatusPending, entity.PurchaseStatusCompleted, entity.PurchaseStatusCancelled:
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("status inválido: %q", status))
	}
	var updated *entity.Purchase
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		p, err := repos.Purchases.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransitionPurchase(p.Status, status) {
			return fmt.Errorf("%w: compra en estado %s no puede pasar a %q", domain.ErrConflict, p.Status, status)
		}
		if status == entity.PurchaseStatusCancelled {
			items, err := repos.Purchases.ListItems(ctx, p.ID)
			if err != nil {
				return err
			}
			productIDs := make([]string, 0, len(items))
			for _, it := range items {
				productIDs = append(productIDs, it.ProductID)
			}
			if err := uc.ledger.LockProducts(ctx, repos, companyID, productIDs); err != nil {
				return err
			}
			for _, it := range items {
				if _, err := uc.ledger.RecordMovementInTx(ctx, repos, inventory.MovementInput{
					CompanyID:     companyID,
					ActorID:       actorID,
					ProductID:     it.ProductID,
					Type:          entity.MovementTypeOutbound,
					Quantity:      it.Quantity,
					ReferenceType: entity.ReferencePurchaseCancellation,
					ReferenceID:   p.ID,
				}); err != nil {
					return err
				}
			}
		}
		now := uc.ids.Now()
		if err := repos.Purchases.UpdateStatus(ctx, companyID, p.ID, status, now); err != nil {
			return err
		}
		p.Status = status
		p.UpdatedAt = now
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toPurchaseResponse(updated)
	return &out, nil
}

func toPurchaseResponse(p *entity.Purchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:                   p.ID,
		CompanyID:            p.CompanyID,
		SupplierID:           documents.OptionalID(p.SupplierID),
		PurchaseDate:         p.PurchaseDate,
		ExpectedDeliveryDate: p.ExpectedDeliveryDate,
		Status:               p.Status,
		TotalAmount:          p.TotalAmount,
		TaxAmount:            p.TaxAmount,
		InvoiceNumber:        p.InvoiceNumber,
		Notes:                p.Notes,
		CreatedBy:            p.CreatedBy,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
