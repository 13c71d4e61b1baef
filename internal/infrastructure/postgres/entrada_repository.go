package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

var _ repository.EntradaRepository = (*EntradaRepo)(nil)

// EntradaRepo implementación de EntradaRepository sobre PostgreSQL (usable con pool o tx).
type EntradaRepo struct {
	q Querier
}

// NewEntradaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntradaRepository(q Querier) *EntradaRepo {
	return &EntradaRepo{q: q}
}

// Create persiste el encabezado. Los totales van en cero; UpdateTotales los
// fija cuando todas las líneas están procesadas.
func (r *EntradaRepo) Create(e *entity.Entrada) error {
	query := `
		INSERT INTO entradas (id, numero, proveedor_id, usuario_id, subtotal, iva, total, observaciones, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.Numero, e.ProveedorID, e.UsuarioID, e.Subtotal, e.IVA, e.Total, e.Observaciones, e.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert entrada: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea de entrada.
func (r *EntradaRepo) CreateDetalle(d *entity.EntradaDetalle) error {
	query := `
		INSERT INTO entrada_detalles (id, entrada_id, producto_id, cantidad, precio_compra, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.EntradaID, d.ProductoID, d.Cantidad, d.PrecioCompra, d.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert entrada detalle: %w", err)
	}
	return nil
}

// UpdateTotales fija los totales del encabezado.
func (r *EntradaRepo) UpdateTotales(id string, subtotal, iva, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE entradas SET subtotal = $2, iva = $3, total = $4 WHERE id = $1`,
		id, subtotal, iva, total,
	)
	if err != nil {
		return fmt.Errorf("update totales entrada: %w", err)
	}
	return nil
}

// GetByID obtiene un encabezado de entrada (sin detalles).
func (r *EntradaRepo) GetByID(id string) (*entity.Entrada, error) {
	var e entity.Entrada
	err := r.q.QueryRow(context.Background(), `
		SELECT id, numero, proveedor_id, usuario_id, subtotal, iva, total, observaciones, fecha
		FROM entradas WHERE id = $1`, id).Scan(
		&e.ID, &e.Numero, &e.ProveedorID, &e.UsuarioID, &e.Subtotal, &e.IVA, &e.Total, &e.Observaciones, &e.Fecha,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get entrada: %w", err)
	}
	return &e, nil
}

// ListDetalles lista las líneas de una entrada.
func (r *EntradaRepo) ListDetalles(entradaID string) ([]entity.EntradaDetalle, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, entrada_id, producto_id, cantidad, precio_compra, subtotal
		FROM entrada_detalles WHERE entrada_id = $1`, entradaID)
	if err != nil {
		return nil, fmt.Errorf("list entrada detalles: %w", err)
	}
	defer rows.Close()

	var list []entity.EntradaDetalle
	for rows.Next() {
		var d entity.EntradaDetalle
		if err := rows.Scan(&d.ID, &d.EntradaID, &d.ProductoID, &d.Cantidad, &d.PrecioCompra, &d.Subtotal); err != nil {
			return nil, fmt.Errorf("scan entrada detalle: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// List lista encabezados de entrada, más recientes primero.
func (r *EntradaRepo) List(limit, offset int) ([]*entity.Entrada, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, numero, proveedor_id, usuario_id, subtotal, iva, total, observaciones, fecha
		FROM entradas ORDER BY fecha DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list entradas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Entrada
	for rows.Next() {
		var e entity.Entrada
		err := rows.Scan(&e.ID, &e.Numero, &e.ProveedorID, &e.UsuarioID, &e.Subtotal, &e.IVA, &e.Total, &e.Observaciones, &e.Fecha)
		if err != nil {
			return nil, fmt.Errorf("scan entrada: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
