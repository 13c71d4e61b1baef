package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jvivanco/micromercado-api/internal/domain/money"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestRound2_MitadLejosDeCero(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{"-1.005", "-1.01"},
		{"2.675", "2.68"},
		{"0", "0"},
		{"10.10", "10.1"},
	}
	for _, c := range cases {
		got := money.Round2(dec(c.in))
		assert.True(t, got.Equal(dec(c.want)), "Round2(%s) = %s, esperado %s", c.in, got, c.want)
	}
}

func TestRound2_Idempotente(t *testing.T) {
	for _, s := range []string{"1.005", "99.999", "-3.14159", "0.001", "1234.56"} {
		una := money.Round2(dec(s))
		dos := money.Round2(una)
		assert.True(t, una.Equal(dos), "Round2 debe ser idempotente para %s", s)
	}
}

func TestFromFloat_RepresentacionCorta(t *testing.T) {
	// 1.005 no es representable en binario; NewFromFloat recupera "1.005".
	got := money.FromFloat(1.005)
	assert.Equal(t, "1.005", got.String())
	assert.True(t, money.Round2(got).Equal(dec("1.01")))
}

func TestApplyIVA_OrdenDeRedondeo(t *testing.T) {
	// El subtotal se redondea ANTES de calcular el IVA, y el IVA ANTES de
	// sumarse al total. 10.004 -> 10.00; IVA = 1.50; total = 11.50.
	d := money.ApplyIVA(dec("10.004"), money.IVARateDefault)
	assert.True(t, d.Subtotal.Equal(dec("10.00")), "subtotal: %s", d.Subtotal)
	assert.True(t, d.IVA.Equal(dec("1.50")), "iva: %s", d.IVA)
	assert.True(t, d.Total.Equal(dec("11.50")), "total: %s", d.Total)
}

func TestApplyIVA_TotalEsSubtotalMasIVA(t *testing.T) {
	// total == subtotal + iva exactamente, para cualquier subtotal.
	for _, s := range []string{"0", "0.01", "1.005", "9.99", "123.456", "10000.37"} {
		d := money.ApplyIVA(dec(s), money.IVARateDefault)
		require.True(t, d.Total.Equal(d.Subtotal.Add(d.IVA)),
			"subtotal %s: total %s != %s + %s", s, d.Total, d.Subtotal, d.IVA)
	}
}

func TestApplyIVA_BordeDeCentavo(t *testing.T) {
	// 0.35 * 0.15 = 0.0525 -> IVA 0.05 (no 0.0525 ni 0.06 por suma global).
	d := money.ApplyIVA(dec("0.35"), money.IVARateDefault)
	assert.True(t, d.IVA.Equal(dec("0.05")))
	assert.True(t, d.Total.Equal(dec("0.40")))
}

func TestLinea_ConDescuento(t *testing.T) {
	// 3 × 2.50 con 10% = 6.75
	got := money.Linea(3, dec("2.50"), dec("10"))
	assert.True(t, got.Equal(dec("6.75")), "got %s", got)

	// Sin descuento
	got = money.Linea(4, dec("1.99"), decimal.Zero)
	assert.True(t, got.Equal(dec("7.96")))

	// Redondeo del subtotal de línea: 7 × 0.333 = 2.331 -> 2.33
	got = money.Linea(7, dec("0.333"), decimal.Zero)
	assert.True(t, got.Equal(dec("2.33")))
}
