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

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

const usuarioColumns = `id, rol, nombres, apellidos, email, usuario, password_hash, activo, created_at`

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Rol, &u.Nombres, &u.Apellidos, &u.Email, &u.Usuario,
		&u.PasswordHash, &u.Activo, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario.
func (r *UsuarioRepo) Create(u *entity.Usuario) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO usuarios (id, rol, nombres, apellidos, email, usuario, password_hash, activo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		u.ID, u.Rol, u.Nombres, u.Apellidos, u.Email, u.Usuario, u.PasswordHash, u.Activo, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UsuarioRepo) GetByID(id string) (*entity.Usuario, error) {
	return r.get(`SELECT `+usuarioColumns+` FROM usuarios WHERE id = $1`, id)
}

// GetByUsuario obtiene un usuario por su nombre de usuario (login).
func (r *UsuarioRepo) GetByUsuario(usuario string) (*entity.Usuario, error) {
	return r.get(`SELECT `+usuarioColumns+` FROM usuarios WHERE usuario = $1`, usuario)
}

// GetByEmail obtiene un usuario por email.
func (r *UsuarioRepo) GetByEmail(email string) (*entity.Usuario, error) {
	return r.get(`SELECT `+usuarioColumns+` FROM usuarios WHERE email = $1`, email)
}

func (r *UsuarioRepo) get(query string, args ...any) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(context.Background(), query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// List lista usuarios; con soloActivos filtra los desactivados.
func (r *UsuarioRepo) List(soloActivos bool) ([]*entity.Usuario, error) {
	query := `SELECT ` + usuarioColumns + ` FROM usuarios`
	if soloActivos {
		query += ` WHERE activo`
	}
	query += ` ORDER BY usuario`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var list []*entity.Usuario
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza los datos del usuario, hash incluido.
func (r *UsuarioRepo) Update(u *entity.Usuario) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE usuarios SET rol = $2, nombres = $3, apellidos = $4, email = $5, password_hash = $6, activo = $7
		WHERE id = $1`,
		u.ID, u.Rol, u.Nombres, u.Apellidos, u.Email, u.PasswordHash, u.Activo,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// Delete desactiva un usuario (soft-delete).
func (r *UsuarioRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE usuarios SET activo = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	return nil
}
