package dto

import "github.com/shopspring/decimal"

// DashboardResponse respuesta de GET /api/dashboard.
// Resumen del inventario más las listas de alerta del tablero principal.
type DashboardResponse struct {
	TotalProductos  int64           `json:"total_productos"`
	ValorInventario decimal.Decimal `json:"valor_inventario"` // Σ stock × precio de venta
	StockBajo       int64           `json:"stock_bajo"`
	PorVencer       int64           `json:"por_vencer"`

	// Alertas: productos en o bajo su mínimo y próximos a vencer.
	ProductosStockBajo []ProductoResponse `json:"productos_stock_bajo"`
	ProductosPorVencer []ProductoResponse `json:"productos_por_vencer"`

	// Últimos movimientos del libro para el widget de actividad.
	MovimientosRecientes []MovimientoItemResponse `json:"movimientos_recientes"`
}
