package usecase

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/entity"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
)

// UsuarioUseCase administración de usuarios (solo ADMIN vía middleware).
type UsuarioUseCase struct {
	repo repository.UsuarioRepository
}

// NewUsuarioUseCase construye el caso de uso.
func NewUsuarioUseCase(repo repository.UsuarioRepository) *UsuarioUseCase {
	return &UsuarioUseCase{repo: repo}
}

// Create crea un usuario: hashea la clave con bcrypt y persiste.
func (uc *UsuarioUseCase) Create(in dto.CreateUsuarioRequest) (*dto.UsuarioResponse, error) {
	if in.Usuario == "" || in.Password == "" || in.Nombres == "" {
		return nil, domain.ErrInvalidInput
	}
	rol := in.Rol
	if rol == "" {
		rol = entity.RolVendedor
	}
	if rol != entity.RolAdmin && rol != entity.RolVendedor {
		return nil, domain.ErrInvalidInput
	}
	if existing, _ := uc.repo.GetByUsuario(in.Usuario); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Email != "" {
		if existing, _ := uc.repo.GetByEmail(in.Email); existing != nil {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	usuario := &entity.Usuario{
		ID:           uuid.New().String(),
		Rol:          rol,
		Nombres:      in.Nombres,
		Apellidos:    in.Apellidos,
		Email:        in.Email,
		Usuario:      in.Usuario,
		PasswordHash: string(hash),
		Activo:       true,
		CreatedAt:    time.Now(),
	}
	if err := uc.repo.Create(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// GetByID obtiene un usuario por ID.
func (uc *UsuarioUseCase) GetByID(id string) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUsuarioResponse(usuario), nil
}

// List lista usuarios activos.
func (uc *UsuarioUseCase) List() ([]dto.UsuarioResponse, error) {
	list, err := uc.repo.List(true)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UsuarioResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUsuarioResponse(u))
	}
	return items, nil
}

// Update modifica datos del usuario; si llega password se re-hashea.
func (uc *UsuarioUseCase) Update(id string, in dto.UpdateUsuarioRequest) (*dto.UsuarioResponse, error) {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Rol != nil {
		if *in.Rol != entity.RolAdmin && *in.Rol != entity.RolVendedor {
			return nil, domain.ErrInvalidInput
		}
		usuario.Rol = *in.Rol
	}
	if in.Nombres != nil {
		usuario.Nombres = *in.Nombres
	}
	if in.Apellidos != nil {
		usuario.Apellidos = *in.Apellidos
	}
	if in.Email != nil {
		usuario.Email = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		usuario.PasswordHash = string(hash)
	}
	if in.Activo != nil {
		usuario.Activo = *in.Activo
	}
	if err := uc.repo.Update(usuario); err != nil {
		return nil, err
	}
	return toUsuarioResponse(usuario), nil
}

// Delete desactiva un usuario; sus movimientos registrados lo siguen
// referenciando.
func (uc *UsuarioUseCase) Delete(id string) error {
	usuario, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if usuario == nil {
		return domain.ErrUserNotFound
	}
	return uc.repo.Delete(id)
}

func toUsuarioResponse(u *entity.Usuario) *dto.UsuarioResponse {
	return &dto.UsuarioResponse{
		ID:        u.ID,
		Rol:       u.Rol,
		Nombres:   u.Nombres,
		Apellidos: u.Apellidos,
		Email:     u.Email,
		Usuario:   u.Usuario,
		Activo:    u.Activo,
		CreatedAt: u.CreatedAt,
	}
}
