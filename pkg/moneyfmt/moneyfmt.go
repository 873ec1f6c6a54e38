// Package moneyfmt formatea montos en pesos con separador de miles es-AR
// ($12.345), el formato que la tienda usa en todos los mensajes al usuario.
package moneyfmt

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.MustParse("es-AR"))

// Pesos formatea un monto como "$49.999". Los precios de la tienda son
// enteros; los decimales se redondean al peso.
func Pesos(d decimal.Decimal) string {
	n := d.Round(0).IntPart()
	return printer.Sprintf("$%v", number.Decimal(n))
}
