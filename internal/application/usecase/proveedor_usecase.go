package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// ProveedorUseCase casos de uso CRUD para proveedores.
type ProveedorUseCase struct {
	repo repository.ProveedorRepository
}

// NewProveedorUseCase construye el caso de uso.
func NewProveedorUseCase(repo repository.ProveedorRepository) *ProveedorUseCase {
	return &ProveedorUseCase{repo: repo}
}

// Create crea un proveedor.
func (uc *ProveedorUseCase) Create(in dto.CreateProveedorRequest) (*dto.ProveedorResponse, error) {
	if in.Nombre == "" {
		return nil, domain.ErrInvalidInput
	}
	proveedor := &entity.Proveedor{
		ID:        uuid.New().String(),
		RUC:       in.RUC,
		Nombre:    in.Nombre,
		Telefono:  in.Telefono,
		Email:     in.Email,
		Direccion: in.Direccion,
		Activo:    true,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.Create(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *ProveedorUseCase) GetByID(id string) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}
	return toProveedorResponse(proveedor), nil
}

// List lista proveedores activos.
func (uc *ProveedorUseCase) List() ([]dto.ProveedorResponse, error) {
	list, err := uc.repo.List(true)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProveedorResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProveedorResponse(p))
	}
	return items, nil
}

// Update modifica los datos de contacto de un proveedor.
func (uc *ProveedorUseCase) Update(id string, in dto.UpdateProveedorRequest) (*dto.ProveedorResponse, error) {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if proveedor == nil {
		return nil, domain.ErrNotFound
	}
	if in.RUC != nil {
		proveedor.RUC = *in.RUC
	}
	if in.Nombre != nil {
		proveedor.Nombre = *in.Nombre
	}
	if in.Telefono != nil {
		proveedor.Telefono = *in.Telefono
	}
	if in.Email != nil {
		proveedor.Email = *in.Email
	}
	if in.Direccion != nil {
		proveedor.Direccion = *in.Direccion
	}
	if in.Activo != nil {
		proveedor.Activo = *in.Activo
	}
	if err := uc.repo.Update(proveedor); err != nil {
		return nil, err
	}
	return toProveedorResponse(proveedor), nil
}

// Delete desactiva un proveedor. Las entradas históricas lo siguen
// referenciando.
func (uc *ProveedorUseCase) Delete(id string) error {
	proveedor, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if proveedor == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(id)
}

func toProveedorResponse(p *entity.Proveedor) *dto.ProveedorResponse {
	return &dto.ProveedorResponse{
		ID:        p.ID,
		RUC:       p.RUC,
		Nombre:    p.Nombre,
		Telefono:  p.Telefono,
		Email:     p.Email,
		Direccion: p.Direccion,
		Activo:    p.Activo,
		CreatedAt: p.CreatedAt,
	}
}
