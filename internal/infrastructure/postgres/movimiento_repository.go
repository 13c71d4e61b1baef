package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

var _ repository.MovimientoRepository = (*MovimientoRepo)(nil)

const movimientoColumns = `id, numero, producto_id, tipo, direccion, cantidad,
		precio_unitario, costo_unitario, subtotal, iva, total,
		metodo_valoracion, descuento_id, usuario_id, observacion, fecha`

// MovimientoRepo implementación de MovimientoRepository sobre PostgreSQL.
// El libro de movimientos es append-only: no hay Update ni Delete.
type MovimientoRepo struct {
	q Querier
}

// NewMovimientoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovimientoRepository(q Querier) *MovimientoRepo {
	return &MovimientoRepo{q: q}
}

// Create anota un movimiento en el libro.
func (r *MovimientoRepo) Create(m *entity.Movimiento) error {
	query := `
		INSERT INTO movimientos (id, numero, producto_id, tipo, direccion, cantidad,
			precio_unitario, costo_unitario, subtotal, iva, total,
			metodo_valoracion, descuento_id, usuario_id, observacion, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, nullIfEmpty(m.Numero), m.ProductoID, m.Tipo, m.Direccion, m.Cantidad,
		m.PrecioUnitario, m.CostoUnitario, m.Subtotal, m.IVA, m.Total,
		nullIfEmpty(m.MetodoValoracion), nullIfEmpty(m.DescuentoID), m.UsuarioID, m.Observacion, m.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert movimiento: %w", err)
	}
	return nil
}

// ListByProductoAsc lista el historial completo de un producto en orden
// cronológico ascendente (insumo del kardex).
func (r *MovimientoRepo) ListByProductoAsc(productoID string) ([]entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos
		WHERE producto_id = $1
		ORDER BY fecha, id`
	rows, err := r.q.Query(context.Background(), query, productoID)
	if err != nil {
		return nil, fmt.Errorf("list movimientos: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

// ListRecientes devuelve los últimos movimientos del libro, más recientes primero.
func (r *MovimientoRepo) ListRecientes(limit int) ([]entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos
		ORDER BY fecha DESC, id DESC
		LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("list movimientos recientes: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

// Reporte filtra movimientos por rango de fechas y tipo (vacío = todos).
func (r *MovimientoRepo) Reporte(desde, hasta *time.Time, tipo string) ([]entity.Movimiento, error) {
	query := `
		SELECT ` + movimientoColumns + `
		FROM movimientos
		WHERE ($1::timestamptz IS NULL OR fecha >= $1)
			AND ($2::timestamptz IS NULL OR fecha <= $2)
			AND ($3 = '' OR tipo = $3)
		ORDER BY fecha, id`
	rows, err := r.q.Query(context.Background(), query, desde, hasta, tipo)
	if err != nil {
		return nil, fmt.Errorf("reporte movimientos: %w", err)
	}
	defer rows.Close()
	return collectMovimientos(rows)
}

func collectMovimientos(rows pgx.Rows) ([]entity.Movimiento, error) {
	var list []entity.Movimiento
	for rows.Next() {
		var m entity.Movimiento
		var numero, metodo, descuentoID *string
		err := rows.Scan(
			&m.ID, &numero, &m.ProductoID, &m.Tipo, &m.Direccion, &m.Cantidad,
			&m.PrecioUnitario, &m.CostoUnitario, &m.Subtotal, &m.IVA, &m.Total,
			&metodo, &descuentoID, &m.UsuarioID, &m.Observacion, &m.Fecha,
		)
		if err != nil {
			return nil, fmt.Errorf("scan movimiento: %w", err)
		}
		m.Numero = deref(numero)
		m.MetodoValoracion = deref(metodo)
		m.DescuentoID = deref(descuentoID)
		list = append(list, m)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
