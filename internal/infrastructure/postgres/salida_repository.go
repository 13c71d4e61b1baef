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

var _ repository.SalidaRepository = (*SalidaRepo)(nil)

// SalidaRepo implementación de SalidaRepository sobre PostgreSQL (usable con pool o tx).
type SalidaRepo struct {
	q Querier
}

// NewSalidaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalidaRepository(q Querier) *SalidaRepo {
	return &SalidaRepo{q: q}
}

// Create persiste el encabezado de salida con totales en cero.
func (r *SalidaRepo) Create(s *entity.Salida) error {
	query := `
		INSERT INTO salidas (id, numero, usuario_id, metodo_valoracion, subtotal, iva, total, observaciones, fecha)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.Numero, s.UsuarioID, s.MetodoValoracion, s.Subtotal, s.IVA, s.Total, s.Observaciones, s.Fecha,
	)
	if err != nil {
		return fmt.Errorf("insert salida: %w", err)
	}
	return nil
}

// CreateDetalle persiste una línea de salida. Guarda por separado el precio
// cobrado y el costo de valoración.
func (r *SalidaRepo) CreateDetalle(d *entity.SalidaDetalle) error {
	query := `
		INSERT INTO salida_detalles (id, salida_id, producto_id, descuento_id, cantidad,
			precio_venta, costo_unitario, descuento, subtotal, iva, total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.SalidaID, d.ProductoID, nullIfEmpty(d.DescuentoID), d.Cantidad,
		d.PrecioVenta, d.CostoUnitario, d.Descuento, d.Subtotal, d.IVA, d.Total,
	)
	if err != nil {
		return fmt.Errorf("insert salida detalle: %w", err)
	}
	return nil
}

// UpdateTotales fija los totales del encabezado.
func (r *SalidaRepo) UpdateTotales(id string, subtotal, iva, total decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE salidas SET subtotal = $2, iva = $3, total = $4 WHERE id = $1`,
		id, subtotal, iva, total,
	)
	if err != nil {
		return fmt.Errorf("update totales salida: %w", err)
	}
	return nil
}

// GetByID obtiene un encabezado de salida (sin detalles).
func (r *SalidaRepo) GetByID(id string) (*entity.Salida, error) {
	var s entity.Salida
	err := r.q.QueryRow(context.Background(), `
		SELECT id, numero, usuario_id, metodo_valoracion, subtotal, iva, total, observaciones, fecha
		FROM salidas WHERE id = $1`, id).Scan(
		&s.ID, &s.Numero, &s.UsuarioID, &s.MetodoValoracion, &s.Subtotal, &s.IVA, &s.Total, &s.Observaciones, &s.Fecha,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get salida: %w", err)
	}
	return &s, nil
}

// ListDetalles lista las líneas de una salida.
func (r *SalidaRepo) ListDetalles(salidaID string) ([]entity.SalidaDetalle, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, salida_id, producto_id, descuento_id, cantidad,
			precio_venta, costo_unitario, descuento, subtotal, iva, total
		FROM salida_detalles WHERE salida_id = $1`, salidaID)
	if err != nil {
		return nil, fmt.Errorf("list salida detalles: %w", err)
	}
	defer rows.Close()

	var list []entity.SalidaDetalle
	for rows.Next() {
		var d entity.SalidaDetalle
		var descuentoID *string
		err := rows.Scan(&d.ID, &d.SalidaID, &d.ProductoID, &descuentoID, &d.Cantidad,
			&d.PrecioVenta, &d.CostoUnitario, &d.Descuento, &d.Subtotal, &d.IVA, &d.Total)
		if err != nil {
			return nil, fmt.Errorf("scan salida detalle: %w", err)
		}
		d.DescuentoID = deref(descuentoID)
		list = append(list, d)
	}
	return list, rows.Err()
}

// List lista encabezados de salida, más recientes primero.
func (r *SalidaRepo) List(limit, offset int) ([]*entity.Salida, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, numero, usuario_id, metodo_valoracion, subtotal, iva, total, observaciones, fecha
		FROM salidas ORDER BY fecha DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list salidas: %w", err)
	}
	defer rows.Close()

	var list []*entity.Salida
	for rows.Next() {
		var s entity.Salida
		err := rows.Scan(&s.ID, &s.Numero, &s.UsuarioID, &s.MetodoValoracion, &s.Subtotal, &s.IVA, &s.Total, &s.Observaciones, &s.Fecha)
		if err != nil {
			return nil, fmt.Errorf("scan salida: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
