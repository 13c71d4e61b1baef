package repository

import (
	"time"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// MovimientoRepository define el puerto del libro de movimientos.
// El libro es append-only: no hay Update ni Delete.
type MovimientoRepository interface {
	Create(m *entity.Movimiento) error
	// ListByProductoAsc devuelve todo el historial de un producto ordenado por
	// fecha ascendente (insumo del kardex).
	ListByProductoAsc(productoID string) ([]entity.Movimiento, error)
	ListRecientes(limit int) ([]entity.Movimiento, error)
	// Reporte filtra por rango de fechas y tipo (vacío = todos).
	Reporte(desde, hasta *time.Time, tipo string) ([]entity.Movimiento, error)
}
