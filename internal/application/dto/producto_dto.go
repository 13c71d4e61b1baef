package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest entrada para crear un producto. El stock no se recibe:
// inicia en cero y solo lo mueven entradas, salidas y ajustes.
type CreateProductoRequest struct {
	CategoriaID      string          `json:"categoria_id"`
	ProveedorID      string          `json:"proveedor_id"`
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Descripcion      string          `json:"descripcion"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	StockMinimo      int64           `json:"stock_minimo"`
	FechaVencimiento *time.Time      `json:"fecha_vencimiento,omitempty"`
}

// UpdateProductoRequest campos opcionales a modificar. Stock y precio de
// compra no se tocan por aquí: se manejan vía movimientos.
type UpdateProductoRequest struct {
	CategoriaID      *string          `json:"categoria_id,omitempty"`
	ProveedorID      *string          `json:"proveedor_id,omitempty"`
	Nombre           *string          `json:"nombre,omitempty"`
	Descripcion      *string          `json:"descripcion,omitempty"`
	PrecioVenta      *decimal.Decimal `json:"precio_venta,omitempty"`
	StockMinimo      *int64           `json:"stock_minimo,omitempty"`
	FechaVencimiento *time.Time       `json:"fecha_vencimiento,omitempty"`
	Activo           *bool            `json:"activo,omitempty"`
}

// ProductoResponse salida de un producto.
type ProductoResponse struct {
	ID               string          `json:"id"`
	CategoriaID      string          `json:"categoria_id"`
	ProveedorID      string          `json:"proveedor_id"`
	Codigo           string          `json:"codigo"`
	Nombre           string          `json:"nombre"`
	Descripcion      string          `json:"descripcion"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	Stock            int64           `json:"stock"`
	StockMinimo      int64           `json:"stock_minimo"`
	FechaVencimiento *time.Time      `json:"fecha_vencimiento,omitempty"`
	Activo           bool            `json:"activo"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
