// Package documents reúne las reglas comunes a compras y ventas: líneas, totales y fechas.
package documents

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain/entity"
)

// Line línea validada de un documento.
type Line struct {
	ProductID  string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}

// BuildLines valida las líneas y calcula total = Σ totalPrice + tax.
// totalPrice se deriva como quantity × unitPrice redondeado a 2 decimales; si el cliente
// lo envía debe coincidir.
func BuildLines(items []dto.DocumentItemRequest, tax decimal.Decimal) ([]Line, decimal.Decimal, error) {
	verr := domain.NewValidationError()
	if len(items) == 0 {
		verr.Add("items debe tener al menos una línea")
	}
	if tax.IsNegative() {
		verr.Add("taxAmount no puede ser negativo")
	} else if !entity.FitsScale(tax, entity.AmountScale) {
		verr.Add(fmt.Sprintf("taxAmount admite hasta %d decimales", entity.AmountScale))
	}
	lines := make([]Line, 0, len(items))
	total := decimal.Zero
	for i, it := range items {
		if it.ProductID == "" {
			verr.Add(fmt.Sprintf("items[%d].productId es requerido", i))
		}
		if !it.Quantity.IsPositive() {
			verr.Add(fmt.Sprintf("items[%d].quantity debe ser mayor que cero", i))
		} else if !entity.FitsScale(it.Quantity, entity.QuantityScale) {
			verr.Add(fmt.Sprintf("items[%d].quantity admite hasta %d decimales", i, entity.QuantityScale))
		}
		if it.UnitPrice.IsNegative() {
			verr.Add(fmt.Sprintf("items[%d].unitPrice no puede ser negativo", i))
		} else if !entity.FitsScale(it.UnitPrice, entity.UnitPriceScale) {
			verr.Add(fmt.Sprintf("items[%d].unitPrice admite hasta %d decimales", i, entity.UnitPriceScale))
		}
		// Se redondea como lo guarda la columna para que el total sea la suma de lo persistido.
		lineTotal := it.Quantity.Mul(it.UnitPrice).Round(entity.AmountScale)
		if it.TotalPrice != nil {
			if it.TotalPrice.IsNegative() {
				verr.Add(fmt.Sprintf("items[%d].totalPrice no puede ser negativo", i))
			} else if !it.TotalPrice.Equal(lineTotal) {
				verr.Add(fmt.Sprintf("items[%d].totalPrice (%s) no coincide con quantity × unitPrice (%s)",
					i, it.TotalPrice.String(), lineTotal.String()))
			}
		}
		lines = append(lines, Line{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			UnitPrice:  it.UnitPrice,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	if err := verr.OrNil(); err != nil {
		return nil, decimal.Zero, err
	}
	return lines, total.Add(tax), nil
}

// ProductIDs devuelve los productos de las líneas en el orden recibido.
func ProductIDs(lines []Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ProductID)
	}
	return out
}

var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate interpreta s (YYYY-MM-DD o RFC3339); vacío devuelve def.
func ParseDate(field, s string, def time.Time) (time.Time, error) {
	if s == "" {
		return def, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, domain.NewValidationError(fmt.Sprintf("%s debe tener formato YYYY-MM-DD o RFC3339", field))
}

// ParseOptionalDate como ParseDate pero devuelve nil si s está vacío.
func ParseOptionalDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := ParseDate(field, s, time.Time{})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ItemResponse mapea una línea persistida a su salida.
func ItemResponse(id, productID string, qty, unit, total decimal.Decimal) dto.DocumentItemResponse {
	return dto.DocumentItemResponse{ID: id, ProductID: productID, Quantity: qty, UnitPrice: unit, TotalPrice: total}
}

// OptionalID devuelve nil para IDs vacíos (columnas NULL).
func OptionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
