package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

var _ repository.ProveedorRepository = (*ProveedorRepo)(nil)

// ProveedorRepo implementación de ProveedorRepository sobre PostgreSQL.
type ProveedorRepo struct {
	q Querier
}

// NewProveedorRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProveedorRepository(q Querier) *ProveedorRepo {
	return &ProveedorRepo{q: q}
}

// Create persiste un proveedor.
func (r *ProveedorRepo) Create(p *entity.Proveedor) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO proveedores (id, ruc, nombre, telefono, email, direccion, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.RUC, p.Nombre, p.Telefono, p.Email, p.Direccion, p.Activo, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert proveedor: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *ProveedorRepo) GetByID(id string) (*entity.Proveedor, error) {
	var p entity.Proveedor
	err := r.q.QueryRow(context.Background(), `
		SELECT id, ruc, nombre, telefono, email, direccion, activo, created_at
		FROM proveedores WHERE id = $1`, id).Scan(
		&p.ID, &p.RUC, &p.Nombre, &p.Telefono, &p.Email, &p.Direccion, &p.Activo, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get proveedor: %w", err)
	}
	return &p, nil
}

// List lista proveedores; con soloActivos filtra los desactivados.
func (r *ProveedorRepo) List(soloActivos bool) ([]*entity.Proveedor, error) {
	query := `SELECT id, ruc, nombre, telefono, email, direccion, activo, created_at FROM proveedores`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list proveedores: %w", err)
	}
	defer rows.Close()

	var list []*entity.Proveedor
	for rows.Next() {
		var p entity.Proveedor
		if err := rows.Scan(&p.ID, &p.RUC, &p.Nombre, &p.Telefono, &p.Email, &p.Direccion, &p.Activo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan proveedor: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los datos de contacto.
func (r *ProveedorRepo) Update(p *entity.Proveedor) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE proveedores SET ruc = $2, nombre = $3, telefono = $4, email = $5, direccion = $6, activo = $7
		WHERE id = $1`,
		p.ID, p.RUC, p.Nombre, p.Telefono, p.Email, p.Direccion, p.Activo,
	)
	if err != nil {
		return fmt.Errorf("update proveedor: %w", err)
	}
	return nil
}

// Delete desactiva un proveedor (soft-delete).
func (r *ProveedorRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE proveedores SET activo = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete proveedor: %w", err)
	}
	return nil
}
