package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/jvivanco/micromercado-api/internal/application/dto"
	"github.com/jvivanco/micromercado-api/internal/domain"
	"github.com/jvivanco/micromercado-api/internal/domain/repository"
	"github.com/jvivanco/micromercado-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login con usuario y clave.
// El alta de usuarios es administración (UsuarioUseCase), no registro abierto.
type AuthUseCase struct {
	usuarioRepo repository.UsuarioRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(usuarioRepo repository.UsuarioRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{usuarioRepo: usuarioRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/clave, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Usuario == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	usuario, err := uc.usuarioRepo.GetByUsuario(in.Usuario)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(usuario.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !usuario.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, usuario.ID, usuario.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		Usuario: dto.UsuarioResponse{
			ID:        usuario.ID,
			Rol:       usuario.Rol,
			Nombres:   usuario.Nombres,
			Apellidos: usuario.Apellidos,
			Email:     usuario.Email,
			Usuario:   usuario.Usuario,
			Activo:    usuario.Activo,
			CreatedAt: usuario.CreatedAt,
		},
	}, nil
}
