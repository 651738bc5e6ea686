package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Límites de una cantidad plausible. Un exponente fuera de rango obligaría a reescalar
// el coeficiente a millones de dígitos al sumar.
const (
	MaxQuantityDigits   = 28
	MaxQuantityExponent = 20
)

// PlausibleQuantity indica si d cabe en los límites de un saldo de stock.
func PlausibleQuantity(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxQuantityExponent || exp < -MaxQuantityExponent {
		return false
	}
	return d.NumDigits() <= MaxQuantityDigits
}

// Quantity es una celda numérica tal como se leyó del archivo.
// Si el texto no es un número válido se conserva en Raw y Numeric queda en false,
// de modo que se reescribe sin cambios hasta que se sanee la columna.
type Quantity struct {
	Value   decimal.Decimal
	Raw     string
	Numeric bool
}

// NewQuantity construye una cantidad numérica.
func NewQuantity(v decimal.Decimal) Quantity {
	return Quantity{Value: v, Numeric: true}
}

// ParseQuantity interpreta el texto de una celda. Nunca falla: el texto no numérico
// o fuera de los límites de PlausibleQuantity queda guardado tal cual.
func ParseQuantity(s string) Quantity {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Quantity{Raw: s}
	}
	v, err := decimal.NewFromString(trimmed)
	if err != nil || !PlausibleQuantity(v) {
		return Quantity{Raw: s}
	}
	return Quantity{Value: v, Numeric: true}
}

// Decimal devuelve el valor numérico, cero si la celda no es numérica.
func (q Quantity) Decimal() decimal.Decimal {
	if !q.Numeric {
		return decimal.Zero
	}
	return q.Value
}

// String serializa la celda para el archivo.
func (q Quantity) String() string {
	if !q.Numeric {
		return q.Raw
	}
	return q.Value.String()
}
