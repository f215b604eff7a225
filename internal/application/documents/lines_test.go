package documents

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chauhanravicr7-netizen/dockside-backend/internal/application/dto"
	"github.com/chauhanravicr7-netizen/dockside-backend/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestBuildLines_TotalConImpuesto(t *testing.T) {
	lines, total, err := BuildLines([]dto.DocumentItemRequest{
		{ProductID: "p1", Quantity: dec("10"), UnitPrice: dec("5"), TotalPrice: ptr(dec("50"))},
	}, dec("5"))
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, dec("55").Equal(total))
	assert.True(t, dec("50").Equal(lines[0].TotalPrice))
}

func TestBuildLines_DerivaTotalPrice(t *testing.T) {
	lines, total, err := BuildLines([]dto.DocumentItemRequest{
		{ProductID: "p1", Quantity: dec("2.5"), UnitPrice: dec("4")},
		{ProductID: "p2", Quantity: dec("1"), UnitPrice: dec("0")},
	}, decimal.Zero)
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(lines[0].TotalPrice))
	assert.True(t, dec("10").Equal(total))
}

func TestBuildLines_TotalEsSumaDeLineasRedondeadas(t *testing.T) {
	lines, total, err := BuildLines([]dto.DocumentItemRequest{
		{ProductID: "p1", Quantity: dec("1"), UnitPrice: dec("0.005")},
		{ProductID: "p2", Quantity: dec("1"), UnitPrice: dec("0.005")},
		{ProductID: "p3", Quantity: dec("1.500"), UnitPrice: dec("2.5000")},
	}, dec("0.10"))
	require.NoError(t, err)
	assert.True(t, dec("0.01").Equal(lines[0].TotalPrice))
	assert.True(t, dec("0.01").Equal(lines[1].TotalPrice))
	assert.True(t, dec("3.75").Equal(lines[2].TotalPrice))

	sum := decimal.Zero
	for _, l := range lines {
		assert.True(t, l.TotalPrice.Equal(l.TotalPrice.Round(2)))
		sum = sum.Add(l.TotalPrice)
	}
	assert.True(t, dec("3.87").Equal(total))
	assert.True(t, sum.Add(dec("0.10")).Equal(total))
}

func TestBuildLines_Rechazos(t *testing.T) {
	tests := []struct {
		name  string
		items []dto.DocumentItemRequest
		tax   decimal.Decimal
		want  string
	}{
		{"sin items", nil, decimal.Zero, "items debe tener al menos una línea"},
		{"cantidad cero", []dto.DocumentItemRequest{{ProductID: "p", Quantity: dec("0"), UnitPrice: dec("1")}}, decimal.Zero, "items[0].quantity"},
		{"precio negativo", []dto.DocumentItemRequest{{ProductID: "p", Quantity: dec("1"), UnitPrice: dec("-1")}}, decimal.Zero, "items[0].unitPrice"},
		{"total inconsistente", []dto.DocumentItemRequest{{ProductID: "p", Quantity: dec("2"), UnitPrice: dec("3"), TotalPrice: ptr(dec("7"))}}, decimal.Zero, "no coincide"},
		{"cantidad con 4 decimales", []dto.DocumentItemRequest{{ProductID: "p", Quantity: dec("0.0004"), UnitPrice: dec("1")}}, decimal.Zero, "items[0].quantity admite hasta 3 decimales"},
		{"precio con 5 decimales", []dto.DocumentItemRequest{{ProductID: "p", Quantity: dec("1"), UnitPrice: dec("0.00001")}}, decimal.Zero, "items[0].unitPrice admite hasta 4 decimales"},
		{"impuesto con 3 decimales", []dto.DocumentItemRequest{{ProductID: "p", Quantity: dec("1"), UnitPrice: dec("1")}}, dec("0.001"), "taxAmount admite hasta 2 decimales"},
		{"impuesto negativo", []dto.DocumentItemRequest{{ProductID: "p", Quantity: dec("1"), UnitPrice: dec("1")}}, dec("-1"), "taxAmount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := BuildLines(tt.items, tt.tax)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseDate(t *testing.T) {
	def := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := ParseDate("purchaseDate", "", def)
	require.NoError(t, err)
	assert.Equal(t, def, got)

	got, err = ParseDate("purchaseDate", "2026-10-01", def)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseDate("purchaseDate", "01/10/2026", def)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	opt, err := ParseOptionalDate("dueDate", "")
	require.NoError(t, err)
	assert.Nil(t, opt)
}
