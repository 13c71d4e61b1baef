package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// ResumenInventario agrega las cifras del tablero principal.
type ResumenInventario struct {
	TotalProductos  int64
	ValorInventario decimal.Decimal // Σ stock × precio de venta
	StockBajo       int64
	PorVencer       int64 // vencen dentro de 30 días
}

// DashboardRepository define las consultas agregadas del tablero.
type DashboardRepository interface {
	Resumen() (*ResumenInventario, error)
	TopStockBajo(limit int) ([]*entity.Producto, error)
	TopPorVencer(dias, limit int) ([]*entity.Producto, error)
}
