package postgres

import (
	"context"
	"fmt"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas read-only del tablero.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador. Pasar pool (no necesita tx).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// Resumen calcula las cifras del tablero en una sola consulta.
func (r *DashboardRepo) Resumen() (*repository.ResumenInventario, error) {
	var res repository.ResumenInventario
	err := r.q.QueryRow(context.Background(), `
		SELECT
			count(*),
			COALESCE(sum(stock * precio_venta), 0),
			count(*) FILTER (WHERE stock <= stock_minimo),
			count(*) FILTER (WHERE fecha_vencimiento IS NOT NULL
				AND fecha_vencimiento <= now() + interval '30 days')
		FROM productos
		WHERE activo`).Scan(
		&res.TotalProductos, &res.ValorInventario, &res.StockBajo, &res.PorVencer,
	)
	if err != nil {
		return nil, fmt.Errorf("resumen dashboard: %w", err)
	}
	return &res, nil
}

// TopStockBajo los productos más urgentes de reponer.
func (r *DashboardRepo) TopStockBajo(limit int) ([]*entity.Producto, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+productoColumns+`
		FROM productos
		WHERE activo AND stock <= stock_minimo
		ORDER BY stock - stock_minimo, nombre
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("top stock bajo: %w", err)
	}
	defer rows.Close()
	return collectProductos(rows)
}

// TopPorVencer los productos que vencen más pronto dentro de la ventana.
func (r *DashboardRepo) TopPorVencer(dias, limit int) ([]*entity.Producto, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+productoColumns+`
		FROM productos
		WHERE activo AND fecha_vencimiento IS NOT NULL
			AND fecha_vencimiento <= now() + ($1 || ' days')::interval
		ORDER BY fecha_vencimiento
		LIMIT $2`, dias, limit)
	if err != nil {
		return nil, fmt.Errorf("top por vencer: %w", err)
	}
	defer rows.Close()
	return collectProductos(rows)
}
