package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// EntradaRepository define el puerto de persistencia para entradas (compras).
// El encabezado se inserta con totales en cero y se completa con
// UpdateTotales al cerrar la transacción, como hacía el sistema original.
type EntradaRepository interface {
	Create(e *entity.Entrada) error
	CreateDetalle(d *entity.EntradaDetalle) error
	UpdateTotales(id string, subtotal, iva, total decimal.Decimal) error
	GetByID(id string) (*entity.Entrada, error)
	ListDetalles(entradaID string) ([]entity.EntradaDetalle, error)
	List(limit, offset int) ([]*entity.Entrada, error)
}
