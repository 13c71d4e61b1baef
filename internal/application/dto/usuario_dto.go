package dto

import "time"

// CreateUsuarioRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUsuarioRequest struct {
	Rol       string `json:"rol"` // ADMIN | VENDEDOR
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Usuario   string `json:"usuario"`
	Password  string `json:"password"`
}

// UpdateUsuarioRequest campos opcionales a modificar.
type UpdateUsuarioRequest struct {
	Rol       *string `json:"rol,omitempty"`
	Nombres   *string `json:"nombres,omitempty"`
	Apellidos *string `json:"apellidos,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"`
	Activo    *bool   `json:"activo,omitempty"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	ID        string    `json:"id"`
	Rol       string    `json:"rol"`
	Nombres   string    `json:"nombres"`
	Apellidos string    `json:"apellidos"`
	Email     string    `json:"email"`
	Usuario   string    `json:"usuario"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login con nombre de usuario y clave.
type LoginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y el usuario autenticado.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}
