package repository

import "github.com/jvivanco/micromercado-api/internal/domain/entity"

// ProveedorRepository define el puerto de persistencia para Proveedor.
type ProveedorRepository interface {
	Create(p *entity.Proveedor) error
	GetByID(id string) (*entity.Proveedor, error)
	List(soloActivos bool) ([]*entity.Proveedor, error)
	Update(p *entity.Proveedor) error
	Delete(id string) error
}
