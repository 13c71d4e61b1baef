package repository

import (
	"time"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// DescuentoRepository es el puerto de solo lectura que el libro de movimientos
// usa para resolver descuentos al procesar una línea de salida.
type DescuentoRepository interface {
	GetByID(id string) (*entity.Descuento, error)
	// GetActivo devuelve el descuento solo si está activo y vigente en el
	// instante dado; si no existe, venció o está inactivo devuelve nil sin
	// error (un descuento caducado degrada a precio pleno, no es un fallo).
	GetActivo(id string, at time.Time) (*entity.Descuento, error)
}
