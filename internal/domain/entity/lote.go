package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lote es una partida de mercadería recibida con su propio costo de compra.
// Lo crea cada línea de ENTRADA; solo el consumo FIFO/LIFO decrementa
// CantidadDisponible. Nunca se borra: un lote agotado queda como historial.
type Lote struct {
	ID                 string
	ProductoID         string
	EntradaDetalleID   string
	PrecioCompra       decimal.Decimal
	CantidadInicial    int64
	CantidadDisponible int64 // 0 <= disponible <= inicial
	FechaIngreso       time.Time
}

// Agotado indica que el lote ya no participa en la selección de costeo.
func (l *Lote) Agotado() bool { return l.CantidadDisponible <= 0 }
