package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// SalidaRepository define el puerto de persistencia para salidas (ventas).
// El encabezado se inserta con totales en cero y se completa con
// UpdateTotales al cerrar la transacción, como hacía el sistema original.
type SalidaRepository interface {
	Create(s *entity.Salida) error
	CreateDetalle(d *entity.SalidaDetalle) error
	UpdateTotales(id string, subtotal, iva, total decimal.Decimal) error
	GetByID(id string) (*entity.Salida, error)
	ListDetalles(salidaID string) ([]entity.SalidaDetalle, error)
	List(limit, offset int) ([]*entity.Salida, error)
}
