package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto representa un producto del micromercado.
// Stock es el neto de todos los movimientos confirmados (o desde el último
// ajuste); solo el motor de movimientos lo modifica.
type Producto struct {
	ID               string
	CategoriaID      string
	ProveedorID      string
	Codigo           string
	Nombre           string
	Descripcion      string
	PrecioCompra     decimal.Decimal // último costo de compra registrado
	PrecioVenta      decimal.Decimal
	Stock            int64
	StockMinimo      int64
	FechaVencimiento *time.Time
	Activo           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
