package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jvivanco/micromercado-api/internal/domain/entity"
)

// ProductoRepository define el puerto de persistencia para Producto.
type ProductoRepository interface {
	Create(p *entity.Producto) error
	GetByID(id string) (*entity.Producto, error)
	GetByCodigo(codigo string) (*entity.Producto, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Es la
	// frontera de serialización por producto del motor de movimientos: toda
	// validación y mutación de stock ocurre bajo este bloqueo.
	GetForUpdate(id string) (*entity.Producto, error)
	Update(p *entity.Producto) error
	UpdateStock(id string, stock int64) error
	UpdatePrecioCompra(id string, precio decimal.Decimal) error
	List(soloActivos bool) ([]*entity.Producto, error)
	Buscar(termino string) ([]*entity.Producto, error)
	ListStockBajo() ([]*entity.Producto, error)
	ListPorVencer(dias int) ([]*entity.Producto, error)
	Delete(id string) error // soft-delete: activo = false
}
