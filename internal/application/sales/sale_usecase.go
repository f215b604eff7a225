// Package sales implementa el documento de venta: número de factura, líneas y salidas de stock
// registradas en una sola unidad atómica.
package sales

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

// InvoicePrefix prefijo de los números de factura de venta.
const InvoicePrefix = "INV"

// FormatInvoiceNumber construye INV-<año>-<consecutivo de 6 dígitos>.
func FormatInvoiceNumber(year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%06d", InvoicePrefix, year, seq)
}

// SaleUseCase casos de uso de ventas.
type SaleUseCase struct {
	txRunner ports.TxRunner
	repos    repository.Repositories
	ledger   *inventory.StockLedger
	ids      ids.Provider
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(txRunner ports.TxRunner, repos repository.Repositories, ledger *inventory.StockLedger, idp ids.Provider) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, repos: repos, ledger: ledger, ids: idp}
}

// CreateSale valida fuera de la transacción y luego, atómicamente: reserva el consecutivo,
// inserta la cabecera (confirmed), una línea por ítem y un movimiento OUTBOUND por línea.
func (uc *SaleUseCase) CreateSale(ctx context.Context, companyID, actorID string, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	lines, total, err := documents.BuildLines(in.Items, in.TaxAmount)
	if err != nil {
		return nil, err
	}
	now := uc.ids.Now()
	saleDate, err := documents.ParseDate("saleDate", in.SaleDate, now)
	if err != nil {
		return nil, err
	}
	dueDate, err := documents.ParseOptionalDate("dueDate", in.DueDate)
	if err != nil {
		return nil, err
	}

	sale := &entity.Sale{
		ID:           uc.ids.NewID(),
		CompanyID:    companyID,
		CustomerID:   in.CustomerID,
		SaleDate:     saleDate,
		DueDate:      dueDate,
		Status:       entity.SaleStatusConfirmed,
		TotalAmount:  total,
		TaxAmount:    in.TaxAmount,
		PaymentTerms: in.PaymentTerms,
		Notes:        in.Notes,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		if sale.CustomerID != "" {
			customer, err := repos.Customers.GetByID(ctx, companyID, sale.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return fmt.Errorf("%w: cliente %s", domain.ErrNotFound, sale.CustomerID)
			}
		}
		year := saleDate.Year()
		seq, err := repos.Sales.NextInvoiceNumber(ctx, companyID, year)
		if err != nil {
			return err
		}
		sale.InvoiceNumber = FormatInvoiceNumber(year, seq)
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}
		if err := uc.ledger.LockProducts(ctx, repos, companyID, documents.ProductIDs(lines)); err != nil {
			return err
		}
		for _, line := range lines {
			item := &entity.SaleItem{
				ID:         uc.ids.NewID(),
				SaleID:     sale.ID,
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				UnitPrice:  line.UnitPrice,
				TotalPrice: line.TotalPrice,
			}
			if err := repos.Sales.CreateItem(ctx, item); err != nil {
				return err
			}
			if _, err := uc.ledger.RecordMovementInTx(ctx, repos, inventory.MovementInput{
				CompanyID:     companyID,
				ActorID:       actorID,
				ProductID:     line.ProductID,
				Type:          entity.MovementTypeOutbound,
				Quantity:      line.Quantity,
				ReferenceType: entity.ReferenceSale,
				ReferenceID:   sale.ID,
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
		Str("sale_id", sale.ID).
		Str("invoice_number", sale.InvoiceNumber).
		Str("total", total.String()).
		Msg("venta registrada")

	return &dto.CreateSaleResponse{
		SaleID:        sale.ID,
		InvoiceNumber: sale.InvoiceNumber,
		Success:       true,
		Total:         total,
	}, nil
}

// GetSale devuelve la venta con sus líneas.
func (uc *SaleUseCase) GetSale(ctx context.Context, companyID, id string) (*dto.SaleResponse, error) {
	s, err := uc.repos.Sales.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.repos.Sales.ListItems(ctx, s.ID)
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(s)
	out.Items = make([]dto.DocumentItemResponse, 0, len(items))
	for _, it := range items {
		out.Items = append(out.Items, documents.ItemResponse(it.ID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice))
	}
	return &out, nil
}

// ListSales lista las ventas de la empresa, más recientes primero.
func (uc *SaleUseCase) ListSales(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.Normalize()
	list, err := uc.repos.Sales.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// UpdateStatus aplica confirmed→delivered o confirmed→cancelled. La cancelación devuelve el
// stock con movimientos INBOUND compensatorios en la misma unidad atómica.
func (uc *SaleUseCase) UpdateStatus(ctx context.Context, companyID, actorID, id, status string) (*dto.SaleResponse, error) {
	switch status {
	case entity.SaleStatusConfirmed, entity.SaleStatusDelivered, entity.SaleStatusCancelled:
	default:
		return nil, domain.NewValidationError(fmt.Sprintf("status inválido: %q", status))
	}
	var updated *entity.Sale
	err := uc.txRunner.Run(ctx, func(repos repository.Repositories) error {
		s, err := repos.Sales.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if !entity.CanTransitionSale(s.Status, status) {
			return fmt.Errorf("%w: venta en estado %s no puede pasar a %q", domain.ErrConflict, s.Status, status)
		}
		if status == entity.SaleStatusCancelled {
			items, err := repos.Sales.ListItems(ctx, s.ID)
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
					Type:          entity.MovementTypeInbound,
					Quantity:      it.Quantity,
					ReferenceType: entity.ReferenceSaleCancellation,
					ReferenceID:   s.ID,
				}); err != nil {
					return err
				}
			}
		}
		now := uc.ids.Now()
		if err := repos.Sales.UpdateStatus(ctx, companyID, s.ID, status, now); err != nil {
			return err
		}
		s.Status = status
		s.UpdatedAt = now
		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toSaleResponse(updated)
	return &out, nil
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		CustomerID:    documents.OptionalID(s.CustomerID),
		SaleDate:      s.SaleDate,
		DueDate:       s.DueDate,
		Status:        s.Status,
		TotalAmount:   s.TotalAmount,
		TaxAmount:     s.TaxAmount,
		InvoiceNumber: s.InvoiceNumber,
		PaymentTerms:  s.PaymentTerms,
		Notes:         s.Notes,
		CreatedBy:     s.CreatedBy,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
