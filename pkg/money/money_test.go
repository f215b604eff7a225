package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "0.00", Format(decimal.Zero))
	assert.Equal(t, "55.00", Format(decimal.NewFromInt(55)))
	assert.Equal(t, "1,234.57", Format(decimal.RequireFromString("1234.566")))
}
