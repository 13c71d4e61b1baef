package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Descuento es un porcentaje con ventana de vigencia. El libro de inventario
// solo lo lee al procesar una línea de salida; su ciclo de vida pertenece al
// catálogo.
type Descuento struct {
	ID           string
	Nombre       string
	Porcentaje   decimal.Decimal // 0..100
	ProductoID   string          // alcance: producto o categoría (uno de los dos)
	CategoriaID  string
	VigenteDesde time.Time
	VigenteHasta time.Time
	Activo       bool
}

// VigenteEn indica si el descuento aplica en el instante dado.
func (d *Descuento) VigenteEn(t time.Time) bool {
	return d.Activo && !t.Before(d.VigenteDesde) && !t.After(d.VigenteHasta)
}
