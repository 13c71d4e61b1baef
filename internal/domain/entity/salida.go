package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Salida es el encabezado de una venta o egreso de mercadería. El método de
// valoración del encabezado aplica a todas sus líneas.
type Salida struct {
	ID               string
	Numero           string // SAL-000001
	UsuarioID        string
	MetodoValoracion string
	Subtotal         decimal.Decimal
	IVA              decimal.Decimal
	Total            decimal.Decimal
	Observaciones    string
	Fecha            time.Time

	Detalles []SalidaDetalle
}

// SalidaDetalle es una línea de salida. PrecioVenta es lo que paga el cliente;
// CostoUnitario es lo que el motor de costeo determinó para valoración: son
// deliberadamente distintos.
type SalidaDetalle struct {
	ID            string
	SalidaID      string
	ProductoID    string
	DescuentoID   string
	Cantidad      int64
	PrecioVenta   decimal.Decimal
	CostoUnitario decimal.Decimal
	Descuento     decimal.Decimal // porcentaje aplicado (0 si no hubo)
	Subtotal      decimal.Decimal
	IVA           decimal.Decimal
	Total         decimal.Decimal
}
