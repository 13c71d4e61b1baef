package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

var _ repository.DescuentoRepository = (*DescuentoRepo)(nil)

const descuentoColumns = `id, nombre, porcentaje, COALESCE(producto_id, ''), COALESCE(categoria_id, ''),
		vigente_desde, vigente_hasta, activo`

// DescuentoRepo implementación de DescuentoRepository sobre PostgreSQL.
type DescuentoRepo struct {
	q Querier
}

// NewDescuentoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDescuentoRepository(q Querier) *DescuentoRepo {
	return &DescuentoRepo{q: q}
}

// GetByID obtiene un descuento por ID, vigente o no.
func (r *DescuentoRepo) GetByID(id string) (*entity.Descuento, error) {
	return r.get(`SELECT `+descuentoColumns+` FROM descuentos WHERE id = $1`, id)
}

// GetActivo obtiene un descuento solo si está activo y vigente en el instante
// dado. Ausencia no es error: la línea se vende a precio pleno.
func (r *DescuentoRepo) GetActivo(id string, at time.Time) (*entity.Descuento, error) {
	return r.get(`
		SELECT `+descuentoColumns+`
		FROM descuentos
		WHERE id = $1 AND activo AND vigente_desde <= $2 AND vigente_hasta >= $2`, id, at)
}

func (r *DescuentoRepo) get(query string, args ...any) (*entity.Descuento, error) {
	var d entity.Descuento
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&d.ID, &d.Nombre, &d.Porcentaje, &d.ProductoID, &d.CategoriaID,
		&d.VigenteDesde, &d.VigenteHasta, &d.Activo,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get descuento: %w", err)
	}
	return &d, nil
}
