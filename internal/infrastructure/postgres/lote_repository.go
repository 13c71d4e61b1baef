package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

var _ repository.LoteRepository = (*LoteRepo)(nil)

const loteColumns = `id, producto_id, entrada_detalle_id, precio_compra,
		cantidad_inicial, cantidad_disponible, fecha_ingreso`

// LoteRepo implementación de LoteRepository sobre PostgreSQL (usable con pool o tx).
type LoteRepo struct {
	q Querier
}

// NewLoteRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLoteRepository(q Querier) *LoteRepo {
	return &LoteRepo{q: q}
}

// Create persiste un lote nuevo (una línea de entrada = un lote).
func (r *LoteRepo) Create(l *entity.Lote) error {
	query := `
		INSERT INTO lotes (id, producto_id, entrada_detalle_id, precio_compra,
			cantidad_inicial, cantidad_disponible, fecha_ingreso)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ProductoID, l.EntradaDetalleID, l.PrecioCompra,
		l.CantidadInicial, l.CantidadDisponible, l.FechaIngreso,
	)
	if err != nil {
		return fmt.Errorf("insert lote: %w", err)
	}
	return nil
}

// ListDisponibles lista los lotes con existencia de un producto, ordenados por
// fecha de ingreso ascendente (empates por orden de creación). Es el insumo
// del motor de costeo.
func (r *LoteRepo) ListDisponibles(productoID string) ([]entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM lotes
		WHERE producto_id = $1 AND cantidad_disponible > 0
		ORDER BY fecha_ingreso, id`
	return r.list(query, productoID)
}

// ListByProducto lista todos los lotes de un producto, agotados incluidos.
func (r *LoteRepo) ListByProducto(productoID string) ([]entity.Lote, error) {
	query := `
		SELECT ` + loteColumns + `
		FROM lotes
		WHERE producto_id = $1
		ORDER BY fecha_ingreso, id`
	return r.list(query, productoID)
}

// Consumir descuenta cantidad de un lote. El guard de la cláusula WHERE impide
// dejar un lote en negativo aunque el plan de consumo venga desfasado.
func (r *LoteRepo) Consumir(loteID string, cantidad int64) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE lotes SET cantidad_disponible = cantidad_disponible - $2
		WHERE id = $1 AND cantidad_disponible >= $2`,
		loteID, cantidad,
	)
	if err != nil {
		return fmt.Errorf("consumir lote: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrLotesInsuficientes
	}
	return nil
}

func (r *LoteRepo) list(query string, args ...any) ([]entity.Lote, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lotes: %w", err)
	}
	defer rows.Close()

	var list []entity.Lote
	for rows.Next() {
		var l entity.Lote
		if err := scanLote(rows, &l); err != nil {
			return nil, fmt.Errorf("scan lote: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func scanLote(row pgx.Row, l *entity.Lote) error {
	return row.Scan(
		&l.ID, &l.ProductoID, &l.EntradaDetalleID, &l.PrecioCompra,
		&l.CantidadInicial, &l.CantidadDisponible, &l.FechaIngreso,
	)
}
