package entity

import "time"

// Proveedor es quien abastece mercadería; referenciado por las entradas.
type Proveedor struct {
	ID        string
	RUC       string
	Nombre    string
	Telefono  string
	Email     string
	Direccion string
	Activo    bool
	CreatedAt time.Time
}
