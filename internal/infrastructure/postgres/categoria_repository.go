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

var _ repository.CategoriaRepository = (*CategoriaRepo)(nil)

// CategoriaRepo implementación de CategoriaRepository sobre PostgreSQL.
type CategoriaRepo struct {
	q Querier
}

// NewCategoriaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoriaRepository(q Querier) *CategoriaRepo {
	return &CategoriaRepo{q: q}
}

// Create persiste una categoría.
func (r *CategoriaRepo) Create(c *entity.Categoria) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO categorias (id, nombre, descripcion, activo, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.Nombre, c.Descripcion, c.Activo, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoriaRepo) GetByID(id string) (*entity.Categoria, error) {
	var c entity.Categoria
	err := r.q.QueryRow(context.Background(), `
		SELECT id, nombre, descripcion, activo, created_at
		FROM categorias WHERE id = $1`, id).Scan(
		&c.ID, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	return &c, nil
}

// List lista categorías; con soloActivas filtra las desactivadas.
func (r *CategoriaRepo) List(soloActivas bool) ([]*entity.Categoria, error) {
	query := `SELECT id, nombre, descripcion, activo, created_at FROM categorias`
	if soloActivas {
		query += ` WHERE activo`
	}
	query += ` ORDER BY nombre`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()

	var list []*entity.Categoria
	for rows.Next() {
		var c entity.Categoria
		if err := rows.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza nombre, descripción y estado.
func (r *CategoriaRepo) Update(c *entity.Categoria) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categorias SET nombre = $2, descripcion = $3, activo = $4 WHERE id = $1`,
		c.ID, c.Nombre, c.Descripcion, c.Activo,
	)
	if err != nil {
		return fmt.Errorf("update categoria: %w", err)
	}
	return nil
}

// Delete desactiva una categoría (soft-delete).
func (r *CategoriaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categorias SET activo = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete categoria: %w", err)
	}
	return nil
}
