package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entrada es el encabezado de una recepción de mercadería (compra). Agrupa uno
// o más detalles; sus totales son la suma de los totales ya redondeados de cada
// línea, redondeada una vez más.
type Entrada struct {
	ID            string
	Numero        string // ENT-000001, secuencia propia del libro
	ProveedorID   string
	UsuarioID     string
	Subtotal      decimal.Decimal
	IVA           decimal.Decimal
	Total         decimal.Decimal
	Observaciones string
	Fecha         time.Time

	Detalles []EntradaDetalle
}

// EntradaDetalle es una línea de entrada: un producto, cantidad y costo de
// compra. Cada detalle genera un Lote y un Movimiento ENTRADA.
type EntradaDetalle struct {
	ID           string
	EntradaID    string
	ProductoID   string
	Cantidad     int64
	PrecioCompra decimal.Decimal
	Subtotal     decimal.Decimal
}
