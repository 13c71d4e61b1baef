package dto

import "time"

// CreateCategoriaRequest entrada para crear una categoría.
type CreateCategoriaRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// CategoriaResponse salida de una categoría.
type CategoriaResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	Descripcion string    `json:"descripcion"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateProveedorRequest entrada para crear un proveedor.
type CreateProveedorRequest struct {
	RUC       string `json:"ruc"`
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
}

// UpdateProveedorRequest campos opcionales a modificar.
type UpdateProveedorRequest struct {
	RUC       *string `json:"ruc,omitempty"`
	Nombre    *string `json:"nombre,omitempty"`
	Telefono  *string `json:"telefono,omitempty"`
	Email     *string `json:"email,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Activo    *bool   `json:"activo,omitempty"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID        string    `json:"id"`
	RUC       string    `json:"ruc"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono"`
	Email     string    `json:"email"`
	Direccion string    `json:"direccion"`
	Activo    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
}
