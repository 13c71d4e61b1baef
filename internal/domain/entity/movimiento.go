package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovimientoEntrada = "ENTRADA"
	MovimientoSalida  = "SALIDA"
	MovimientoAjuste  = "AJUSTE"
)

// Direcciones de un movimiento sobre el stock. Para ENTRADA y SALIDA coincide
// con el tipo; para AJUSTE se deriva del signo de la diferencia contada y solo
// sirve para reportes y kardex, nunca para IVA ni lotes.
const (
	DireccionEntrada = "ENTRADA"
	DireccionSalida  = "SALIDA"
)

// Movimiento es un registro inmutable del libro de inventario. Una vez
// confirmado no se edita ni se borra: el historial es append-only.
type Movimiento struct {
	ID               string
	Numero           string // solo AJUSTE (AJU-000001); entradas y salidas numeran su encabezado
	ProductoID       string
	Tipo             string // ENTRADA | SALIDA | AJUSTE
	Direccion        string // ENTRADA | SALIDA (efecto sobre el stock)
	Cantidad         int64  // siempre positiva; la dirección da el signo
	PrecioUnitario   decimal.Decimal
	CostoUnitario    decimal.Decimal // costo de valoración (SALIDA); cero en AJUSTE
	Subtotal         decimal.Decimal
	IVA              decimal.Decimal
	Total            decimal.Decimal
	MetodoValoracion string // solo SALIDA
	DescuentoID      string
	UsuarioID        string
	Observacion      string
	Fecha            time.Time
}

// KardexItem es una fila del kardex: el movimiento más el saldo acumulado
// después de aplicarlo.
type KardexItem struct {
	Movimiento
	SaldoAcumulado int64
}
