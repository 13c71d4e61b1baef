package entity

import "time"

// Categoria agrupa productos del catálogo.
type Categoria struct {
	ID          string
	Nombre      string
	Descripcion string
	Activo      bool
	CreatedAt   time.Time
}
