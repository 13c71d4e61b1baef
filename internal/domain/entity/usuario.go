package entity

import "time"

// Roles de usuario.
const (
	RolAdmin    = "ADMIN"
	RolVendedor = "VENDEDOR"
)

// Usuario del sistema. PasswordHash guarda bcrypt, nunca la clave en claro.
type Usuario struct {
	ID           string
	Rol          string
	Nombres      string
	Apellidos    string
	Email        string
	Usuario      string
	PasswordHash string
	Activo       bool
	CreatedAt    time.Time
}
