// Package money formatea importes con separadores de miles según el idioma.
package money

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Format devuelve el importe con dos decimales y agrupación de miles en inglés (1,234.50).
func Format(amount decimal.Decimal) string {
	return FormatIn(language.English, amount)
}

// FormatIn como Format pero para el idioma indicado.
func FormatIn(tag language.Tag, amount decimal.Decimal) string {
	p := message.NewPrinter(tag)
	f, _ := amount.Round(2).Float64()
	return p.Sprintf("%.2f", f)
}
