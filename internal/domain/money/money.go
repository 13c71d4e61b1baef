// Package money concentra el redondeo monetario y el cálculo de IVA.
// Todo valor monetario que se persiste debe pasar por Round2: ningún
// intermedio sin redondear llega a la base.
package money

import "github.com/shopspring/decimal"

// IVARateDefault es la tasa de IVA por defecto (Ecuador, 15%).
var IVARateDefault = decimal.RequireFromString("0.15")

// Round2 redondea a 2 decimales, mitad lejos de cero. Es idempotente:
// Round2(Round2(x)) == Round2(x).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FromFloat convierte un float64 a decimal recuperando su representación
// decimal más corta, de modo que 1.005 es 1.005 y no 1.00499999....
func FromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}

// Desglose es el resultado de aplicar IVA a un subtotal.
type Desglose struct {
	Subtotal decimal.Decimal
	IVA      decimal.Decimal
	Total    decimal.Decimal
}

// ApplyIVA calcula el desglose de un subtotal con la tasa dada. El orden de
// redondeo es contractual: primero se redondea el subtotal, luego el IVA
// calculado sobre ese subtotal ya redondeado, y el total es la suma de ambos
// redondeada. Otro orden produce centavos distintos en los bordes.
func ApplyIVA(subtotal, rate decimal.Decimal) Desglose {
	sub := Round2(subtotal)
	iva := Round2(sub.Mul(rate))
	return Desglose{
		Subtotal: sub,
		IVA:      iva,
		Total:    Round2(sub.Add(iva)),
	}
}

// Linea calcula el subtotal de una línea: cantidad × precio × (1 − desc/100),
// redondeado. descuento es un porcentaje entre 0 y 100.
func Linea(cantidad int64, precioUnitario, descuento decimal.Decimal) decimal.Decimal {
	cien := decimal.NewFromInt(100)
	factor := cien.Sub(descuento).Div(cien)
	return Round2(decimal.NewFromInt(cantidad).Mul(precioUnitario).Mul(factor))
}
